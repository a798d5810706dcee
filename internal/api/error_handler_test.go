package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quotable/quotes-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrEmptyText, http.StatusBadRequest},
		{domain.ErrInvalidPagination, http.StatusBadRequest},
		{domain.ErrInvalidFilter, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrQuoteNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
	}
	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if msg == "" {
			t.Fatalf("%v: error body must carry a message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedDomainErrors(t *testing.T) {
	code, _ := renderError(t, fmt.Errorf("loading quote: %w", domain.ErrQuoteNotFound))
	if code != http.StatusNotFound {
		t.Fatalf("wrapped sentinel must still map, got %d", code)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != "limit must be an integer" {
		t.Fatalf("message lost: %q", msg)
	}
}

func TestErrorHandler_UnknownErrorsAreOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("disk on fire"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details must not leak: %q", msg)
	}
}

func TestErrorHandler_ForbiddenAndNotFoundStayDistinct(t *testing.T) {
	forbidden, _ := renderError(t, domain.ErrForbidden)
	missing, _ := renderError(t, domain.ErrQuoteNotFound)
	if forbidden == missing {
		t.Fatalf("403 and 404 must remain distinguishable")
	}
}
