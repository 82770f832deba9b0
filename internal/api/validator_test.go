package api

import (
	"errors"
	"testing"
)

type sampleRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Name   string  `json:"name" validate:"required,min=2"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func TestValidator_CollectsAllViolations(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{Email: "not-an-email", Amount: -1})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 violations, got %d: %+v", len(ve.Fields), ve.Fields)
	}

	byPath := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		byPath[f.Path] = f.Message
	}
	if byPath["email"] != "must be a valid email address" {
		t.Errorf("email message: %q", byPath["email"])
	}
	if byPath["name"] != "is required" {
		t.Errorf("name message: %q", byPath["name"])
	}
	if byPath["amount"] == "" {
		t.Errorf("amount violation missing")
	}
}

func TestValidator_PassesValidInput(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&sampleRequest{Email: "a@example.com", Name: "Al", Amount: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
