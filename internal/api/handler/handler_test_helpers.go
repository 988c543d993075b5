package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// validPartnerBody is a well-formed creation payload for tests.
func validPartnerBody(id string) map[string]any {
	return map[string]any{
		"id":          id,
		"tradingName": "Adega do Zé",
		"ownerName":   "Zé da Silva",
		"document":    "04.666.182/0001-51",
		"coverageArea": map[string]any{
			"type":        "MultiPolygon",
			"coordinates": [][][][]float64{{{{-46.58, -23.56}, {-46.56, -23.56}, {-46.56, -23.54}, {-46.58, -23.54}, {-46.58, -23.56}}}},
		},
		"address": map[string]any{
			"type":        "Point",
			"coordinates": []float64{-46.57, -23.55},
		},
	}
}
