// models содержит доменные сущности announcements-service.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"
)

// Status — статус публикации объявления.
type Status string

const (
	// StatusPublished — объявление видно читателям.
	StatusPublished Status = "PUBLISHED"
	// StatusDraft — черновик.
	StatusDraft Status = "DRAFT"
)

// Valid сообщает, относится ли значение к известным статусам.
func (s Status) Valid() bool {
	switch s {
	case StatusPublished, StatusDraft:
		return true
	default:
		return false
	}
}

// Announcement — доменная сущность объявления.
//
// Особенности:
//   - ID — UUIDv4 в строковом виде, назначается при создании и неизменяем;
//   - Categories — непустой список имён категорий в порядке, заданном автором;
//   - PublicationDate задаётся клиентом при создании (иначе — время создания)
//     и НЕ меняется при обновлении;
//   - LastUpdate пересчитывается при каждой успешной мутации;
//   - временные метки — в UTC.
type Announcement struct {
	// ID — уникальный идентификатор объявления.
	ID string
	// Title — заголовок, непустой после TrimSpace.
	Title string
	// Content — текст объявления, по умолчанию пустой.
	Content string
	// Categories — имена категорий (минимум одна).
	Categories []string
	// Status — статус публикации, по умолчанию PUBLISHED.
	Status Status
	// PublicationDate — дата публикации.
	PublicationDate time.Time
	// LastUpdate — время последней мутации.
	LastUpdate time.Time
}

// AnnouncementPatch — частичное обновление объявления.
// nil-поле означает «не трогать». Categories применяются только
// если срез непустой. PublicationDate патчем не изменяется.
type AnnouncementPatch struct {
	Title      *string
	Content    *string
	Categories []string
	Status     *Status
}

// ListFilter — пользовательский фильтр листинга.
// Пустое поле — отсутствие ограничения. Предикат собирается как AND
// по заданным полям; из Categories участвует только первая (достаточно
// проверки вхождения одной категории, AND по нескольким — non-goal).
type ListFilter struct {
	Categories []string
	Status     Status
}

// Empty сообщает, что фильтр не накладывает ограничений.
func (f ListFilter) Empty() bool {
	return len(f.Categories) == 0 && f.Status == ""
}

// ListOptions — параметры постраничной выдачи объявлений.
//
// Особенности:
//   - при Limit == 0 применяется серверный default (config.LimitsConfig.Default);
//   - PageToken == "" — первая страница; токен валиден только в пределах
//     того фильтра, с которым был выдан.
type ListOptions struct {
	Limit     int32
	PageToken string
	Filter    ListFilter
}

// Page — страница результатов со ссылкой на продолжение.
// NextPageToken == "" означает конец данных. Страница может быть короче
// лимита (и даже пустой) при непустом NextPageToken: предикат применяется
// ПОСЛЕ лимита сырого скана.
type Page struct {
	Items         []Announcement
	NextPageToken string
}

// ScanPredicate — предикат, применяемый хранилищем к записям ПОСЛЕ
// отсечки лимита сырого скана. nil — пропускать всё.
type ScanPredicate func(Announcement) bool

// ScanResult — результат одного прохода сырого скана.
// LastKey непустой, если скан упёрся в лимит и дальше могут быть данные;
// это позиция возобновления на уровне первичного ключа.
type ScanResult struct {
	Items   []Announcement
	LastKey string
}
