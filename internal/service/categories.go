package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronova/announcements-service/internal/models"
	"github.com/avoronova/announcements-service/pkg/log"
)

// CreateCategoryInput — создание категории.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// CreateCategory — бизнес-операция создания категории.
//
// Валидация:
//   - Name непустое после TrimSpace;
//   - Slug непустой после TrimSpace; нормализуется в нижний регистр.
//
// Уникальность slug в текущем дизайне рекомендательная: запись безусловная,
// одновременное создание одинаковых slug может дать дубликаты.
func (s *Service) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	const op = "service/categories/CreateCategory"

	lg := log.From(ctx).With("op", op)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		lg.Warn("invalid argument: empty name")
		return nil, invalidField(op, "name", "must not be empty")
	}

	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if slug == "" {
		lg.Warn("invalid argument: empty slug")
		return nil, invalidField(op, "slug", "must not be empty")
	}

	cat := models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		Description: in.Description,
	}

	result, err := s.storage.CreateCategory(ctx, cat)
	if err != nil {
		lg.Error("storage error on CreateCategory", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	return result, nil
}

// ListCategories — все категории, отсортированные по имени.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "service/categories/ListCategories"

	lg := log.From(ctx).With("op", op)

	result, err := s.storage.ListCategories(ctx)
	if err != nil {
		lg.Error("storage error on ListCategories", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	return result, nil
}
