package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
)

// includeErrorStack controls whether error envelopes carry a stack trace.
// Set once at startup from config; never enabled in production.
var includeErrorStack bool

func SetIncludeErrorStack(v bool) {
	includeErrorStack = v
}

// Every /api response uses the same envelope. Data is always present on
// success, even when null (an empty campaign report is data: null, not an
// error).
type successBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorBody struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successBody{Success: true, Data: data}); err != nil {
		log.Printf("handler: failed to write response: %v", err)
	}
}

// writeError maps a failure to the error envelope. Only *domain.Error
// carries a caller-facing status and message; anything else is an opaque
// 500 so internal details never leak.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	if appErr, ok := err.(*domain.Error); ok {
		status = appErr.Status
		message = appErr.Message
	} else {
		log.Printf("handler: internal error: %v", err)
	}

	detail := errorDetail{Message: message}
	if includeErrorStack {
		detail.Stack = string(debug.Stack())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(errorBody{Error: detail}); encodeErr != nil {
		log.Printf("handler: failed to write error response: %v", encodeErr)
	}
}
