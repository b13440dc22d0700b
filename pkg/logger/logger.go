package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Logger обёртка над slog с printf-style API
// Пишет в файл (JSON) или в консоль (цветной вывод через tint)
type Logger struct {
	sl   *slog.Logger
	file *os.File
}

// New создает новый логгер
// Если path пустой или "stdout" - пишем цветные логи в консоль,
// иначе - JSON в указанный файл
func New(path, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	l := &Logger{}

	var w io.Writer
	if path == "" || path == "stdout" {
		w = os.Stdout
		l.sl = slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.RFC3339,
		}))
		return l, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: failed to open log file %s: %w", path, err)
	}
	l.file = f
	l.sl = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))
	return l, nil
}

// parseLevel конвертирует строковый уровень в slog.Level
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logger: unknown log level %q", level)
	}
}

// Debug логирует отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.sl.Debug(fmt.Sprintf(format, v...))
}

// Info логирует информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.sl.Info(fmt.Sprintf(format, v...))
}

// Warn логирует предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.sl.Warn(fmt.Sprintf(format, v...))
}

// Error логирует ошибку
func (l *Logger) Error(format string, v ...interface{}) {
	l.sl.Error(fmt.Sprintf(format, v...))
}

// Fatal логирует критическую ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.sl.Error(fmt.Sprintf(format, v...))
	l.Close()
	os.Exit(1)
}

// Close закрывает файл логов (no-op для консоли)
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
