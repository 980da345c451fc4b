// storage определяет контракты доступа к БД для announcements-service.
package storage

import (
	"context"
	"errors"

	"github.com/avoronova/announcements-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности первичного ключа (условная запись не прошла).
	ErrConflict = errors.New("conflict")
)

// AnnouncementStorage описывает операции над сущностью models.Announcement.
//
// Каждая операция — один вызов в хранилище; межвызовой атомарности
// контракт не требует (см. читай-потом-удаляй на уровне сервиса).
type AnnouncementStorage interface {
	// AnnouncementByID возвращает объявление по идентификатору.
	// Если запись не найдена — ErrNotFound.
	AnnouncementByID(ctx context.Context, id string) (*models.Announcement, error)

	// CreateAnnouncement сохраняет новое объявление условной записью:
	// вставка проходит только если ключа ещё нет. При нарушении — ErrConflict.
	// Молчаливая перезапись существующей записи недопустима.
	CreateAnnouncement(ctx context.Context, a models.Announcement) (*models.Announcement, error)

	// UpdateAnnouncement применяет частичное обновление по ключу и возвращает
	// запись целиком после изменения. LastUpdate обновляется всегда,
	// независимо от состава патча. Если записи нет — ErrNotFound.
	UpdateAnnouncement(ctx context.Context, id string, patch models.AnnouncementPatch) (*models.Announcement, error)

	// DeleteAnnouncement удаляет запись по ключу.
	// Если записи нет — ErrNotFound.
	DeleteAnnouncement(ctx context.Context, id string) error

	// ScanAnnouncements читает до limit СЫРЫХ записей в порядке первичного
	// ключа, начиная с позиции startKey (пустая — с начала таблицы), и
	// применяет predicate к уже прочитанному окну. Из-за этого страница
	// может оказаться короче лимита при наличии дальнейших совпадений.
	// LastKey результата непустой, если сырой скан упёрся в лимит.
	ScanAnnouncements(ctx context.Context, limit int64, startKey string, predicate models.ScanPredicate) (*models.ScanResult, error)
}

// CategoryStorage описывает операции над сущностью models.Category.
type CategoryStorage interface {
	// CreateCategory сохраняет категорию безусловной записью.
	// Атомарной защиты уникальности slug в текущем дизайне нет.
	CreateCategory(ctx context.Context, c models.Category) (*models.Category, error)

	// ListCategories возвращает все категории, отсортированные по имени.
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Storage задаёт контракт доступа к хранилищу для announcements-сервиса.
type Storage interface {
	AnnouncementStorage
	CategoryStorage
	Close(ctx context.Context) error
}
