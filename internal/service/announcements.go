package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avoronova/announcements-service/internal/models"
	"github.com/avoronova/announcements-service/internal/storage"
	"github.com/avoronova/announcements-service/pkg/log"
)

// Входные структуры сервисного слоя.

// CreateAnnouncementInput — создание объявления.
// Правила:
//   - Title обязателен (непустой после TrimSpace);
//   - Categories обязательны (минимум одно непустое имя);
//   - Status опционален, по умолчанию PUBLISHED;
//   - PublicationDate опциональна: nil -> время создания.
type CreateAnnouncementInput struct {
	Title           string
	Content         string
	Categories      []string
	Status          models.Status
	PublicationDate *time.Time
}

// UpdateAnnouncementInput — частичное обновление объявления.
// nil-поле не изменяется; Categories применяются только если переданы
// (непустой срез). PublicationDate через обновление не меняется.
type UpdateAnnouncementInput struct {
	ID         string
	Title      *string
	Content    *string
	Categories []string
	Status     *models.Status
}

// CreateAnnouncement — бизнес-операция создания объявления.
//
// Валидация:
//   - Title нормализуется (TrimSpace) и не должен быть пустым;
//   - Categories — непустой список, каждое имя непустое после TrimSpace;
//   - Status, если задан, должен быть известным значением.
//
// Поведение/ошибки:
//   - новый UUID назначается сервисом; PublicationDate — из входа либо «сейчас»;
//     LastUpdate — всегда «сейчас»;
//   - запись условная: при коллизии идентификатора — ErrConflict (свежая
//     генерация UUID делает её практически невозможной, но обработка обязательна);
//   - ErrUnavailable — отказ хранилища. Ошибки валидации не пишут в хранилище.
func (s *Service) CreateAnnouncement(ctx context.Context, in CreateAnnouncementInput) (*models.Announcement, error) {
	const op = "service/announcements/CreateAnnouncement"

	lg := log.From(ctx).With("op", op)

	title := strings.TrimSpace(in.Title)
	if title == "" {
		lg.Warn("invalid argument: empty title")
		return nil, invalidField(op, "title", "must not be empty")
	}

	categories, err := normalizeCategories(op, in.Categories)
	if err != nil {
		lg.Warn("invalid argument: bad categories")
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusPublished
	}
	if !status.Valid() {
		lg.Warn("invalid argument: unknown status", "status", string(in.Status))
		return nil, invalidField(op, "status", "unknown value")
	}

	now := time.Now().UTC()

	publicationDate := now
	if in.PublicationDate != nil && !in.PublicationDate.IsZero() {
		publicationDate = in.PublicationDate.UTC()
	}

	ann := models.Announcement{
		ID:              uuid.NewString(),
		Title:           title,
		Content:         in.Content,
		Categories:      categories,
		Status:          status,
		PublicationDate: publicationDate,
		LastUpdate:      now,
	}

	result, err := s.storage.CreateAnnouncement(ctx, ann)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("id conflict on create", "id", ann.ID)
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("storage error on CreateAnnouncement", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		}
	}

	return result, nil
}

// UpdateAnnouncement — частичное обновление объявления.
//
// Валидация:
//   - ID обязателен;
//   - Title, если задан, непустой после TrimSpace;
//   - Categories, если заданы, непустые (каждое имя непустое);
//   - Status, если задан, известное значение.
//
// Поведение/ошибки:
//   - меняются только переданные поля; LastUpdate обновляется всегда,
//     PublicationDate не трогается;
//   - ErrNotFound — записи с таким ID нет;
//   - ErrUnavailable — отказ хранилища.
//
// Возвращает запись целиком после обновления.
func (s *Service) UpdateAnnouncement(ctx context.Context, in UpdateAnnouncementInput) (*models.Announcement, error) {
	const op = "service/announcements/UpdateAnnouncement"

	id := strings.TrimSpace(in.ID)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, invalidField(op, "id", "must not be empty")
	}

	patch := models.AnnouncementPatch{Content: in.Content}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			lg.Warn("invalid argument: empty title")
			return nil, invalidField(op, "title", "must not be empty")
		}

		patch.Title = &title
	}

	if in.Categories != nil {
		categories, err := normalizeCategories(op, in.Categories)
		if err != nil {
			lg.Warn("invalid argument: bad categories")
			return nil, err
		}

		patch.Categories = categories
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			lg.Warn("invalid argument: unknown status", "status", string(*in.Status))
			return nil, invalidField(op, "status", "unknown value")
		}

		patch.Status = in.Status
	}

	result, err := s.storage.UpdateAnnouncement(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("announcement not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdateAnnouncement", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		}
	}

	return result, nil
}

// AnnouncementByID — объявление по идентификатору.
// Отсутствие записи — НЕ ошибка: возвращается (nil, nil).
func (s *Service) AnnouncementByID(ctx context.Context, id string) (*models.Announcement, error) {
	const op = "service/announcements/AnnouncementByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, invalidField(op, "id", "must not be empty")
	}

	result, err := s.storage.AnnouncementByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, nil
		default:
			lg.Error("storage error on AnnouncementByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		}
	}

	return result, nil
}

// DeleteAnnouncement — удаление с возвратом снимка удалённой записи.
//
// Двухшаговое читай-потом-удаляй НЕ атомарно относительно параллельных
// удалений: если между чтением и удалением запись исчезла, это трактуется
// как отсутствие, а не как ошибка. Отсутствие записи — (nil, nil).
func (s *Service) DeleteAnnouncement(ctx context.Context, id string) (*models.Announcement, error) {
	const op = "service/announcements/DeleteAnnouncement"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, invalidField(op, "id", "must not be empty")
	}

	snapshot, err := s.storage.AnnouncementByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, nil
		default:
			lg.Error("storage error on AnnouncementByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		}
	}

	if err := s.storage.DeleteAnnouncement(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Гонка с параллельным удалением: запись уже исчезла.
			lg.Warn("announcement vanished between read and delete")
			return nil, nil
		default:
			lg.Error("storage error on DeleteAnnouncement", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		}
	}

	return snapshot, nil
}

// normalizeCategories — TrimSpace каждого имени; список и имена непустые.
func normalizeCategories(op string, categories []string) ([]string, error) {
	if len(categories) == 0 {
		return nil, invalidField(op, "categories", "at least one category is required")
	}

	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, invalidField(op, "categories", "category name must not be empty")
		}

		out = append(out, c)
	}

	return out, nil
}
