package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/security"
)

type errorResponse struct {
	Error string `json:"error"`
}

// pagedResponse is the standard envelope for list endpoints.
type pagedResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
	Limit int32 `json:"limit"`
	Skip  int32 `json:"skip"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps the failure taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, security.ErrExpiredToken), errors.Is(err, security.ErrInvalidToken):
		status = http.StatusUnauthorized
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validation("invalid request body")
	}
	return nil
}

// pathID extracts a positive int32 path variable.
func pathID(vars map[string]string, name string) (int32, error) {
	raw, ok := vars[name]
	if !ok {
		return 0, domain.Validationf("missing %s", name)
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid %s", name)
	}
	return int32(id), nil
}

// pagination parses limit/skip query parameters with a default page size of
// 20 and a hard cap of 100.
func pagination(r *http.Request) (limit, skip int32) {
	limit = 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			limit = int32(n)
		}
	}
	if limit > 100 {
		limit = 100
	}
	if raw := r.URL.Query().Get("skip"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n >= 0 {
			skip = int32(n)
		}
	}
	return limit, skip
}
