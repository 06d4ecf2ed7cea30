package errors

import (
	"encoding/json"
	"net/http"
)

// APIError is the JSON error envelope every failing response carries.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RateLimitError extends the envelope with the seconds the client should
// wait before retrying.
type RateLimitError struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	RetryAfterSec int64  `json:"retry_after_sec"`
}

func Write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
