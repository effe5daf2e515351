package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/apperrors"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondServiceError maps a service error to its HTTP status. Validation maps
// to 400 and missing entities to 404 with the service message; anything else is
// a persistence failure and surfaces as an opaque 500.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes the request body into dst, responding 400 on malformed input
func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// idParam parses the {id} URL parameter, responding 400 when missing or non-numeric
func (h *BaseHandler) idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return 0, false
	}
	return id, true
}
