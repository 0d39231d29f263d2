package logging

import (
	"context"
	"log/slog"
)

// SlogLogger backs the text and json log formats. Store events, storage
// warnings and HTTP access lines all pass through it unless zerolog output
// is selected.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l. New picks the handler from the configured format.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

// With tags a component's lines, as the websocket hub does with its module
// name.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
