// log — вспомогательный пакет логирования announcements-service:
// конструктор slog-логгера по окружению и прокидывание логгера через контекст.
package log

import (
	"log/slog"
	"os"
)

// Окружения сервиса.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// New создает slog-логгер под окружение:
//   - local — текстовый вывод, debug;
//   - dev   — JSON, debug;
//   - prod  — JSON, info.
//
// Неизвестное окружение трактуется как local.
func New(env string) *slog.Logger {
	switch env {
	case EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case EnvProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
