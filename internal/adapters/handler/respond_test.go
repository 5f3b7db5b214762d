package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
)

func TestWriteErrorStackOutsideProduction(t *testing.T) {
	SetIncludeErrorStack(true)
	defer SetIncludeErrorStack(false)

	rec := httptest.NewRecorder()
	writeError(rec, domain.NewError("Donation not found", http.StatusNotFound))

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
			Stack   string `json:"stack"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Message != "Donation not found" {
		t.Errorf("message = %q, want Donation not found", body.Error.Message)
	}
	if body.Error.Stack == "" {
		t.Error("development error envelopes should carry a stack trace")
	}
}

func TestWriteErrorNoStackInProduction(t *testing.T) {
	SetIncludeErrorStack(false)

	rec := httptest.NewRecorder()
	writeError(rec, domain.NewError("Donation not found", http.StatusNotFound))

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var errField map[string]json.RawMessage
	if err := json.Unmarshal(raw["error"], &errField); err != nil {
		t.Fatalf("decode error field: %v", err)
	}
	if _, present := errField["stack"]; present {
		t.Error("production error envelopes must omit the stack field")
	}
}
