package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avoronova/announcements-service/internal/service"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_argument", service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"invalid_token", service.ErrInvalidToken, http.StatusBadRequest, "invalid_token"},
		{"not_found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"already_exists", service.ErrConflict, http.StatusConflict, "already_exists"},
		{"unavailable", service.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"internal", service.ErrInternal, http.StatusInternalServerError, "internal"},
		{"unknown error", fmt.Errorf("whatever"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

// Обёрнутые ошибки ("op: %w") должны распознаваться через errors.Is.
func TestToHTTP_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("service/listing/ListAnnouncements: %w", service.ErrInvalidToken)

	gotStatus, resp := ToHTTP(wrapped)
	require.Equal(t, http.StatusBadRequest, gotStatus)
	require.Equal(t, "invalid_token", resp.Error.Code)
}

// FieldError несёт имя поля в message и маппится в invalid_argument.
func TestToHTTP_FieldError(t *testing.T) {
	err := fmt.Errorf("op: %w", &service.FieldError{Field: "title", Reason: "must not be empty"})

	gotStatus, resp := ToHTTP(err)
	require.Equal(t, http.StatusBadRequest, gotStatus)
	require.Equal(t, "invalid_argument", resp.Error.Code)
	require.Contains(t, resp.Error.Message, "title")
	require.Contains(t, resp.Error.Message, "must not be empty")
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

// WriteError пишет JSON-тело с request_id из заголовка.
func TestWriteError_RequestIDPropagation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/announcements", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	rec := httptest.NewRecorder()

	WriteError(rec, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "not_found", resp.Error.Code)
	require.Equal(t, "rid-123", resp.Error.RequestID)
}
