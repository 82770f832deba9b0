package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

func invoke(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrAccountInactive, http.StatusForbidden},
		{domain.ErrRoleRequestPending, http.StatusBadRequest},
		{domain.ErrInvalidTransition, http.StatusBadRequest},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrNoRoleRequest, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrDonationNotFound, http.StatusNotFound},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrBlogNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		rec, body := invoke(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: code %d, want %d", tc.err, rec.Code, tc.code)
		}
		if body["error"] == "" {
			t.Errorf("%v: empty error message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("update donation status"), domain.ErrInvalidTransition)
	rec, _ := invoke(t, wrapped)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrapped transition error: code %d, want 400", rec.Code)
	}
}

func TestErrorHandler_ValidationErrorRendersFields(t *testing.T) {
	err := &ValidationError{Fields: []FieldViolation{
		{Path: "email", Message: "must be a valid email address"},
		{Path: "name", Message: "is required"},
	}}

	rec, body := invoke(t, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code %d, want 400", rec.Code)
	}
	if body["error"] != "validation failed" {
		t.Fatalf("error = %v", body["error"])
	}
	fields, ok := body["fields"].([]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("fields missing: %v", body["fields"])
	}
}

func TestErrorHandler_UnknownErrorIsOpaque500(t *testing.T) {
	rec, body := invoke(t, errors.New("mongo: socket closed"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code %d, want 500", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail leaked: %v", body["error"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := invoke(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code %d, want 401", rec.Code)
	}
	if body["error"] != "missing authorization header" {
		t.Fatalf("message = %v", body["error"])
	}
}
