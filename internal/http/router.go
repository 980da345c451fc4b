package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avoronova/announcements-service/internal/http/handlers"
	"github.com/avoronova/announcements-service/internal/http/middleware"
	"github.com/avoronova/announcements-service/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// announcements
	r.Get("/announcements", h.ListAnnouncements)
	r.Post("/announcements", h.CreateAnnouncement)
	r.Get("/announcements/{id}", h.GetAnnouncement)
	r.Patch("/announcements/{id}", h.UpdateAnnouncement)
	r.Delete("/announcements/{id}", h.DeleteAnnouncement)

	// categories
	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
}
