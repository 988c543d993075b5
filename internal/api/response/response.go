package response

import (
	"encoding/json"
	"net/http"

	"github.com/edvin/partners/internal/model"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// Created is the body returned after a successful partner creation. The id
// keeps its PartnerID type so number ids render unquoted, as they arrived.
type Created struct {
	Status string          `json:"status"`
	ID     model.PartnerID `json:"id"`
}

// WriteCreated writes the 201 creation confirmation.
func WriteCreated(w http.ResponseWriter, id model.PartnerID) {
	WriteJSON(w, http.StatusCreated, Created{Status: "created", ID: id})
}
