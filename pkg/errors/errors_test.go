package errors

import (
	"fmt"
	"testing"
)

func TestRejectedErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewRejectedError("already requested", 400))

	if !IsRejected(err) {
		t.Fatalf("expected rejected error to match ErrRequestRejected")
	}

	var apiErr *APIError
	if !As(err, &apiErr) {
		t.Fatalf("expected wrapped *APIError")
	}
	if apiErr.Code != CodeRejected || apiErr.StatusCode != 400 {
		t.Fatalf("unexpected api error fields: %+v", apiErr.BotError)
	}
}

func TestAPIErrorIsNotRejected(t *testing.T) {
	err := NewAPIError("request failed", 502, nil).WithCause(fmt.Errorf("connection reset"))

	if IsRejected(err) {
		t.Fatalf("transport error must not be reported as rejection")
	}
	if err.Error() != "request failed: connection reset" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestServiceErrorUnwrap(t *testing.T) {
	err := NewServiceError("upstream unavailable", "tmdb", "search", ErrCircuitOpen)

	if !Is(err, ErrCircuitOpen) {
		t.Fatalf("expected service error to unwrap to ErrCircuitOpen")
	}
	if err.Context["service"] != "tmdb" {
		t.Fatalf("unexpected context: %v", err.Context)
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := NewValidationError("amount must be between 1 and 15", "amount", 16)

	if err.Code != CodeValidation || err.StatusCode != 400 {
		t.Fatalf("unexpected fields: %+v", err.BotError)
	}
	if err.Field != "amount" || err.Value != 16 || err.Context["field"] != "amount" {
		t.Fatalf("unexpected field data: %+v", err)
	}
	if err.Error() != "amount must be between 1 and 15" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if IsRejected(err) {
		t.Fatalf("validation error must not be reported as rejection")
	}
}
