package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/mlebedz/pairline/backend/internal/transport/http/errors"
)

const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeValidation(w http.ResponseWriter, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
		Code:    "UNAUTHORIZED",
		Message: "authentication required",
	})
}

func writeForbidden(w http.ResponseWriter, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{
		Code:    "FORBIDDEN",
		Message: message,
	})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{
		Code:    code,
		Message: message,
	})
}

func writeInternal(w http.ResponseWriter) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
