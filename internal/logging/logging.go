package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Init configures the default slog logger for the given service.
// Format comes from LOG_FORMAT ("text" or "json", default json) and level
// from LOG_LEVEL ("debug", "info", "warn", "error", default info).
func Init(service string, w io.Writer) *slog.Logger {
	return New(service, w, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"), true)
}

// New builds a logger with explicit format and level. When setDefault is true
// the logger becomes slog default and stdlib log output is redirected to it.
func New(service string, w io.Writer, format, level string, setDefault bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	if service != "" {
		logger = logger.With(slog.String("service", service))
	}
	if setDefault {
		slog.SetDefault(logger)
		log.SetFlags(0)
		log.SetOutput(&slogWriter{logger: logger})
	}
	return logger
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel maps level name to slog.Level, unknown names map to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// slogWriter adapts slog.Logger to io.Writer for stdlib log redirection.
type slogWriter struct {
	logger *slog.Logger
}

func (w *slogWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	w.logger.Info(msg, slog.String("source", "stdlib"))
	return len(p), nil
}
