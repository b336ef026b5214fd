package director

import (
	"context"
	"log/slog"
	"time"
)

// Logger provides logging hooks around effect execution. Plain creation and
// reduction are pure, hot-path calls and are deliberately not logged.
type Logger interface {
	EffectStarted(ctx context.Context, director, transition string)
	EffectCompleted(ctx context.Context, director, transition string, duration time.Duration, err error)
}

// DefaultLogger implements Logger using slog.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger backed by slog.Default.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		logger: slog.Default(),
	}
}

// NewSlogLogger creates a Logger backed by the given slog.Logger.
func NewSlogLogger(logger *slog.Logger) *DefaultLogger {
	if logger == nil {
		return NewDefaultLogger()
	}

	return &DefaultLogger{logger: logger}
}

func (l *DefaultLogger) EffectStarted(ctx context.Context, director, transition string) {
	l.logger.DebugContext(ctx, "Effect started",
		"director", director,
		"transition", transition,
	)
}

func (l *DefaultLogger) EffectCompleted(
	ctx context.Context,
	director, transition string,
	duration time.Duration,
	err error,
) {
	if err != nil {
		l.logger.ErrorContext(ctx, "Effect completed with error",
			"director", director,
			"transition", transition,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
	} else {
		l.logger.DebugContext(ctx, "Effect completed",
			"director", director,
			"transition", transition,
			"duration_ms", duration.Milliseconds(),
		)
	}
}
