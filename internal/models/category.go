package models

// Category — категория объявлений.
//
// Slug нормализуется при создании: TrimSpace + нижний регистр.
// Уникальность slug в текущем дизайне не гарантируется атомарно
// (гонка одновременного создания допускается осознанно).
type Category struct {
	// ID — уникальный идентификатор категории (UUIDv4).
	ID string
	// Name — отображаемое имя, непустое.
	Name string
	// Slug — машинное имя, непустое, в нижнем регистре.
	Slug string
	// Description — произвольное описание, опционально.
	Description string
}
