package core

type Services struct {
	Partner *PartnerService
}

func NewServices(db DB) *Services {
	return &Services{
		Partner: NewPartnerService(db),
	}
}
