package http

// Тесты HTTP-слоя через собранный роутер (router.go + handlers/*).
//
// Сервис поднимается с моком хранилища: проверяем маршрутизацию, разбор
// параметров, коды ответов и сквозной контракт ошибок/absence-as-null.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/avoronova/announcements-service/internal/config"
	"github.com/avoronova/announcements-service/internal/models"
	"github.com/avoronova/announcements-service/internal/service"
	"github.com/avoronova/announcements-service/internal/storage"
	"github.com/avoronova/announcements-service/mocks"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	svc := service.New(ms, config.Config{
		Limits: config.LimitsConfig{Default: 20, Max: 100},
	})

	h := NewRouter(svc, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return h, ms, ctrl
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleAnnouncement() models.Announcement {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return models.Announcement{
		ID:              uuid.NewString(),
		Title:           "hello",
		Content:         "world",
		Categories:      []string{"news"},
		Status:          models.StatusPublished,
		PublicationDate: now,
		LastUpdate:      now,
	}
}

// GET /announcements: параметры запроса доезжают до хранилища, ответ — страница.
func TestRouter_ListAnnouncements_OK(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	a := sampleAnnouncement()

	ms.EXPECT().
		ScanAnnouncements(gomock.Any(), int64(2), "", gomock.Not(gomock.Nil())).
		Return(&models.ScanResult{
			Items:   []models.Announcement{a},
			LastKey: a.ID,
		}, nil)

	rec := doJSON(t, h, http.MethodGet, "/announcements?limit=2&categories=news&status=PUBLISHED", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items         []json.RawMessage `json:"items"`
		NextPageToken string            `json:"next_page_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	require.NotEmpty(t, resp.NextPageToken)
}

// Битый page_token -> 400 invalid_token.
func TestRouter_ListAnnouncements_InvalidToken(t *testing.T) {
	h, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	rec := doJSON(t, h, http.MethodGet, "/announcements?page_token=%25%25garbage", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "invalid_token", resp.Error.Code)
}

// Нечисловой limit -> 400 invalid_argument ещё до сервиса.
func TestRouter_ListAnnouncements_BadLimit(t *testing.T) {
	h, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	rec := doJSON(t, h, http.MethodGet, "/announcements?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// POST /announcements: 201 и тело созданной записи.
func TestRouter_CreateAnnouncement_Created(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	ms.EXPECT().
		CreateAnnouncement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a models.Announcement) (*models.Announcement, error) {
			return &a, nil
		})

	rec := doJSON(t, h, http.MethodPost, "/announcements", map[string]any{
		"title":      "hello",
		"content":    "world",
		"categories": []string{"news"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got struct {
		ID         string   `json:"id"`
		Title      string   `json:"title"`
		Status     string   `json:"status"`
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got.ID)
	require.Equal(t, "hello", got.Title)
	require.Equal(t, "PUBLISHED", got.Status)
	require.Equal(t, []string{"news"}, got.Categories)
}

// Валидация: пустой title -> 400 с именем поля в message; записи в хранилище нет.
func TestRouter_CreateAnnouncement_ValidationError(t *testing.T) {
	h, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	rec := doJSON(t, h, http.MethodPost, "/announcements", map[string]any{
		"title":      "   ",
		"categories": []string{"news"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "title")
}

// Неизвестное поле в теле -> 400 (строгий декодер).
func TestRouter_CreateAnnouncement_UnknownField(t *testing.T) {
	h, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	rec := doJSON(t, h, http.MethodPost, "/announcements", map[string]any{
		"title":      "x",
		"categories": []string{"news"},
		"surprise":   true,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// GET /announcements/{id}: найденная запись.
func TestRouter_GetAnnouncement_OK(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	a := sampleAnnouncement()
	ms.EXPECT().AnnouncementByID(gomock.Any(), a.ID).Return(&a, nil)

	rec := doJSON(t, h, http.MethodGet, "/announcements/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), a.ID)
}

// Отсутствие записи — 200 и JSON null, не 404.
func TestRouter_GetAnnouncement_AbsenceAsNull(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	ms.EXPECT().AnnouncementByID(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	rec := doJSON(t, h, http.MethodGet, "/announcements/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "null", string(bytes.TrimSpace(rec.Body.Bytes())))
}

// PATCH /announcements/{id}: happy-path и 404 на отсутствующей записи.
func TestRouter_UpdateAnnouncement(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	a := sampleAnnouncement()

	ms.EXPECT().
		UpdateAnnouncement(gomock.Any(), a.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p models.AnnouncementPatch) (*models.Announcement, error) {
			require.NotNil(t, p.Title)
			out := a
			out.Title = *p.Title
			return &out, nil
		})

	rec := doJSON(t, h, http.MethodPatch, "/announcements/"+a.ID, map[string]any{
		"title": "renamed",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "renamed")

	ms.EXPECT().
		UpdateAnnouncement(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrNotFound)

	rec = doJSON(t, h, http.MethodPatch, "/announcements/"+uuid.NewString(), map[string]any{
		"title": "x",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// DELETE /announcements/{id}: снимок удалённой записи; повторно — null.
func TestRouter_DeleteAnnouncement(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	a := sampleAnnouncement()

	gomock.InOrder(
		ms.EXPECT().AnnouncementByID(gomock.Any(), a.ID).Return(&a, nil),
		ms.EXPECT().DeleteAnnouncement(gomock.Any(), a.ID).Return(nil),
		ms.EXPECT().AnnouncementByID(gomock.Any(), a.ID).Return(nil, storage.ErrNotFound),
	)

	rec := doJSON(t, h, http.MethodDelete, "/announcements/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), a.ID)

	rec = doJSON(t, h, http.MethodDelete, "/announcements/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "null", string(bytes.TrimSpace(rec.Body.Bytes())))
}

// Категории: список и создание.
func TestRouter_Categories(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	ms.EXPECT().ListCategories(gomock.Any()).Return([]models.Category{
		{ID: uuid.NewString(), Name: "News", Slug: "news"},
	}, nil)

	rec := doJSON(t, h, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "news")

	ms.EXPECT().
		CreateCategory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Category) (*models.Category, error) {
			return &c, nil
		})

	rec = doJSON(t, h, http.MethodPost, "/categories", map[string]any{
		"name": "Tech",
		"slug": "TECH",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"tech"`)
}

// Отказ хранилища -> 503 unavailable, без утечки деталей.
func TestRouter_StorageUnavailable(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	ms.EXPECT().
		ScanAnnouncements(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("mongo: connection refused"))

	rec := doJSON(t, h, http.MethodGet, "/announcements", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
}

// X-Request-Id генерируется и возвращается клиенту.
func TestRouter_RequestIDHeader(t *testing.T) {
	h, ms, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	ms.EXPECT().ListCategories(gomock.Any()).Return(nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
