package handlers

import (
	"net/http"

	apierrors "github.com/avoronova/announcements-service/internal/errors"
	"github.com/avoronova/announcements-service/internal/service"
)

// ListCategories — GET /categories. Все категории по имени.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.ListCategories(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]Category, 0, len(res))
	for i := range res {
		out = append(out, toCategoryDTO(res[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// CreateCategory — POST /categories.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, r)
		return
	}

	res, err := h.Service.CreateCategory(r.Context(), service.CreateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryDTO(*res))
}
