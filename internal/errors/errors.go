// errors стандартизирует ответы об ошибках HTTP-слоя announcements-service.
// На вход — ошибка сервисного слоя (sentinel-ошибки service), на выход:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей хранилища.
//
// Валидационные ошибки — исключение из правила «без деталей»: клиент должен
// узнать, какое именно поле не прошло проверку (service.FieldError).
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avoronova/announcements-service/internal/service"
)

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированное тело ответа.
//
// Маппинг:
//   - ErrInvalidArgument -> 400 invalid_argument (с именем поля при FieldError);
//   - ErrInvalidToken    -> 400 invalid_token (клиент начинает пагинацию заново);
//   - ErrNotFound        -> 404 not_found;
//   - ErrConflict        -> 409 already_exists;
//   - ErrUnavailable     -> 503 unavailable;
//   - прочее (в т.ч. nil) -> 500 internal, чтобы не маскировать баг вызова.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, response("internal", "internal error")
	}

	var fe *service.FieldError

	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest, response("invalid_argument", "invalid "+fe.Field+": "+fe.Reason)
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusBadRequest, response("invalid_token", "invalid page token, restart pagination")
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, response("invalid_argument", "invalid argument")
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, response("not_found", "not found")
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, response("already_exists", "already exists")
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, response("unavailable", "storage unavailable")
	default:
		return http.StatusInternalServerError, response("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func response(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}
