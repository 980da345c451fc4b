package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/avoronova/announcements-service/internal/errors"
	"github.com/avoronova/announcements-service/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя (сервис бизнес-логики).
type Handlers struct {
	Service *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{Service: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// badRequest — локальная ошибка парсинга запроса -> invalid_argument.
func badRequest(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteError(w, r, service.ErrInvalidArgument)
}
