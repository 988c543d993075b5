package request

import (
	"encoding/json"

	"github.com/edvin/partners/internal/model"
)

// CreatePartner holds the request body for creating a partner. The id is
// optional; one is assigned when absent. The GeoJSON fields are validated
// by the service, not here.
type CreatePartner struct {
	ID           model.PartnerID `json:"id"`
	TradingName  string          `json:"tradingName" validate:"required"`
	OwnerName    string          `json:"ownerName" validate:"required"`
	Document     string          `json:"document" validate:"required"`
	CoverageArea json.RawMessage `json:"coverageArea" validate:"required"`
	Address      json.RawMessage `json:"address" validate:"required"`
}
