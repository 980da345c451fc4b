package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/avoronova/announcements-service/internal/errors"
	"github.com/avoronova/announcements-service/internal/models"
	"github.com/avoronova/announcements-service/internal/service"
)

// ListAnnouncements — GET /announcements.
// Параметры: limit, page_token, categories (повторяемый), status.
// Токен валиден только в пределах фильтра, с которым был выдан; при смене
// фильтра клиент обязан начать с пустого токена.
func (h *Handlers) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	var opts models.ListOptions

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			badRequest(w, r)
			return
		}

		opts.Limit = int32(n)
	}

	opts.PageToken = r.URL.Query().Get("page_token")
	opts.Filter = models.ListFilter{
		Categories: r.URL.Query()["categories"],
		Status:     models.Status(r.URL.Query().Get("status")),
	}

	page, err := h.Service.ListAnnouncements(r.Context(), opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp := AnnouncementListResponse{
		Items:         make([]Announcement, 0, len(page.Items)),
		NextPageToken: page.NextPageToken,
	}
	for i := range page.Items {
		resp.Items = append(resp.Items, toAnnouncementDTO(page.Items[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateAnnouncement — POST /announcements.
func (h *Handlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, r)
		return
	}

	res, err := h.Service.CreateAnnouncement(r.Context(), service.CreateAnnouncementInput{
		Title:           req.Title,
		Content:         req.Content,
		Categories:      req.Categories,
		Status:          models.Status(req.Status),
		PublicationDate: req.PublicationDate,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAnnouncementDTO(*res))
}

// GetAnnouncement — GET /announcements/{id}.
// Отсутствие записи — не ошибка: в ответе JSON null (контракт absence-as-null).
func (h *Handlers) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.Service.AnnouncementByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if res == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, toAnnouncementDTO(*res))
}

// UpdateAnnouncement — PATCH /announcements/{id}.
func (h *Handlers) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateAnnouncementRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, r)
		return
	}

	in := service.UpdateAnnouncementInput{
		ID:         id,
		Title:      req.Title,
		Content:    req.Content,
		Categories: req.Categories,
	}
	if req.Status != nil {
		st := models.Status(*req.Status)
		in.Status = &st
	}

	res, err := h.Service.UpdateAnnouncement(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnnouncementDTO(*res))
}

// DeleteAnnouncement — DELETE /announcements/{id}.
// Возвращает снимок удалённой записи; отсутствие — JSON null, не ошибка.
func (h *Handlers) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.Service.DeleteAnnouncement(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if res == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, toAnnouncementDTO(*res))
}
