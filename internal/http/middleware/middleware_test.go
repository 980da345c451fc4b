package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apierrors "github.com/avoronova/announcements-service/internal/errors"
)

// --- RequestID ---

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var gotCtxID, gotHeaderID string

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCtxID = RequestIDFrom(r.Context())
		gotHeaderID = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, gotCtxID, 32)
	require.Equal(t, gotCtxID, gotHeaderID)
	require.Equal(t, gotCtxID, rec.Header().Get("X-Request-Id"))
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	var gotCtxID string

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCtxID = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "upstream-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "upstream-id", gotCtxID)
	require.Equal(t, "upstream-id", rec.Header().Get("X-Request-Id"))
}

// --- Recover ---

func TestRecover_PanicBecomes500(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "internal", resp.Error.Code)
	// Детали паники не должны утекать на клиент.
	require.NotContains(t, rec.Body.String(), "boom")
}

func TestRecover_NoPanicPassesThrough(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
}

// --- Timeout ---

func TestTimeout_SetsDeadline(t *testing.T) {
	var hadDeadline bool

	h := Timeout(2 * time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, hadDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, hadDeadline)
}

func TestTimeout_ZeroIsNoop(t *testing.T) {
	var hadDeadline bool

	h := Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, hadDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, hadDeadline)
}

// --- Logging / statusWriter ---

func TestLogging_CapturesStatusAndBytes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/announcements", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, `{"ok":true}`, rec.Body.String())
}

func TestStatusWriter_DefaultsTo200OnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStatusWriter(rec)

	_, err := sw.Write([]byte("hi"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 2, sw.count)
}
