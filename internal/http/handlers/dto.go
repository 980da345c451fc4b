package handlers

import (
	"time"

	"github.com/avoronova/announcements-service/internal/models"
)

// DTO HTTP-слоя. Временные метки ходят по проводу как RFC3339.

// Announcement — объявление в ответах API.
type Announcement struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Categories      []string  `json:"categories"`
	Status          string    `json:"status"`
	PublicationDate time.Time `json:"publication_date"`
	LastUpdate      time.Time `json:"last_update"`
}

// Category — категория в ответах API.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// AnnouncementListResponse — страница объявлений.
// NextPageToken отсутствует в ответе, когда данных больше нет.
type AnnouncementListResponse struct {
	Items         []Announcement `json:"items"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// createAnnouncementRequest — тело POST /announcements.
type createAnnouncementRequest struct {
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Categories      []string   `json:"categories"`
	Status          string     `json:"status"`
	PublicationDate *time.Time `json:"publication_date"`
}

// updateAnnouncementRequest — тело PATCH /announcements/{id}.
// nil-поле — «не трогать».
type updateAnnouncementRequest struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	Categories []string `json:"categories"`
	Status     *string  `json:"status"`
}

// createCategoryRequest — тело POST /categories.
type createCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func toAnnouncementDTO(a models.Announcement) Announcement {
	return Announcement{
		ID:              a.ID,
		Title:           a.Title,
		Content:         a.Content,
		Categories:      a.Categories,
		Status:          string(a.Status),
		PublicationDate: a.PublicationDate.UTC(),
		LastUpdate:      a.LastUpdate.UTC(),
	}
}

func toCategoryDTO(c models.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}
