// Package logger собирает slog-логгер сервиса и хелперы для атрибутов.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New создаёт JSON-логгер с уровнем из конфигурации. Неизвестный уровень трактуется как info.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel переводит строковое имя уровня в slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard возвращает логгер, который ничего не пишет; удобно для тестов.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Error — атрибут ошибки; для nil возвращает пустой Attr, который slog пропускает.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Filename — атрибут имени загружаемого файла.
func Filename(name string) slog.Attr {
	return slog.String("filename", name)
}

// Endpoint — атрибут варианта загрузки (stream, completed, bytes).
func Endpoint(name string) slog.Attr {
	return slog.String("endpoint", name)
}
