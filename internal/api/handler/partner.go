package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/partners/internal/api/request"
	"github.com/edvin/partners/internal/api/response"
	"github.com/edvin/partners/internal/core"
	"github.com/edvin/partners/internal/geo"
	"github.com/edvin/partners/internal/model"
)

type Partner struct {
	svc *core.PartnerService
}

func NewPartner(svc *core.PartnerService) *Partner {
	return &Partner{svc: svc}
}

func (h *Partner) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePartner
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	partner := &model.Partner{
		ID:           req.ID,
		TradingName:  req.TradingName,
		OwnerName:    req.OwnerName,
		Document:     req.Document,
		CoverageArea: req.CoverageArea,
		Address:      req.Address,
	}

	if err := h.svc.Create(r.Context(), partner); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateID),
			errors.Is(err, core.ErrDuplicateDocument),
			errors.Is(err, core.ErrInvalidGeometry):
			response.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			response.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.WriteCreated(w, partner.ID)
}

func (h *Partner) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	partner, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, partner)
}

func (h *Partner) Nearest(w http.ResponseWriter, r *http.Request) {
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if errLng != nil || errLat != nil {
		response.WriteError(w, http.StatusBadRequest, "lng and lat query parameters are required and must be numbers")
		return
	}

	partner, err := h.svc.Nearest(r.Context(), lng, lat)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNoCoverage):
			response.WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, geo.ErrBadCoordinates):
			response.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			response.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.WriteJSON(w, http.StatusOK, partner)
}
