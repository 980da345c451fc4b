// service содержит бизнес-логику announcements-сервиса.
package service

import (
	"errors"
	"fmt"

	"github.com/avoronova/announcements-service/internal/config"
	"github.com/avoronova/announcements-service/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	// Транспорт: 404 not_found.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности идентификатора при создании.
	// Транспорт: 409 already_exists.
	ErrConflict = errors.New("conflict")
	// ErrInvalidToken — битый/чужой page_token. Пагинацию нужно начинать заново.
	// Транспорт: 400 invalid_token.
	ErrInvalidToken = errors.New("invalid page token")
	// ErrInvalidArgument — некорректные входные аргументы.
	// Транспорт: 400 invalid_argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable — хранилище недоступно/отказало. Ретраев внутри сервиса нет.
	// Транспорт: 503 unavailable.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrInternal — внутренняя ошибка.
	// Транспорт: 500 internal.
	ErrInternal = errors.New("internal")
)

// FieldError указывает поле, не прошедшее валидацию.
// Разворачивается в ErrInvalidArgument, чтобы работали обе проверки:
// errors.Is(err, ErrInvalidArgument) и errors.As(&FieldError{}).
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidArgument }

// invalidField — ошибка валидации конкретного поля.
func invalidField(op, field, reason string) error {
	return fmt.Errorf("%s: %w", op, &FieldError{Field: field, Reason: reason})
}

// Service — описывает бизнес-логику announcements-service.
type Service struct {
	storage storage.Storage
	cfg     config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func (s *Service) limitOrDefault(limit int32) int64 {
	lim := limit
	if lim <= 0 {
		lim = s.cfg.Limits.Default
	}

	if s.cfg.Limits.Max > 0 && lim > s.cfg.Limits.Max {
		lim = s.cfg.Limits.Max
	}

	return int64(lim)
}
