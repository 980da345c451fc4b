package service

import (
	"github.com/avoronova/announcements-service/internal/models"
)

// compileFilter собирает предикат хранилища из пользовательского фильтра.
//
// Политика:
//   - непустой Categories — проходит запись, чей список категорий содержит
//     ПЕРВУЮ категорию фильтра (проверки вхождения одной категории достаточно,
//     AND-семантика по нескольким — non-goal);
//   - непустой Status — точное совпадение статуса;
//   - отсутствующее поле не ограничивает выдачу;
//   - заданные поля соединяются логическим AND.
//
// Для пустого фильтра возвращается nil — хранилище пропускает всё.
func compileFilter(f models.ListFilter) models.ScanPredicate {
	if f.Empty() {
		return nil
	}

	var category string
	if len(f.Categories) > 0 {
		category = f.Categories[0]
	}

	status := f.Status

	return func(a models.Announcement) bool {
		if category != "" && !containsCategory(a.Categories, category) {
			return false
		}

		if status != "" && a.Status != status {
			return false
		}

		return true
	}
}

func containsCategory(haystack []string, needle string) bool {
	for _, c := range haystack {
		if c == needle {
			return true
		}
	}

	return false
}
