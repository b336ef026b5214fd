package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/duxkit/duxkit/action"
)

// DispatchFunc is one stage of the dispatch pipeline.
type DispatchFunc func(ctx context.Context, act action.Action) error

// Middleware wraps a dispatch stage. Middleware sees every action before
// the reducer does and may short-circuit by not calling next.
type Middleware func(next DispatchFunc) DispatchFunc

// chain composes middleware around the base handler so the first middleware
// given is the outermost.
func chain(base DispatchFunc, middleware []Middleware) DispatchFunc {
	dispatch := base

	for i := len(middleware) - 1; i >= 0; i-- {
		dispatch = middleware[i](dispatch)
	}

	return dispatch
}

// WithLogger adds the Logging middleware as the outermost dispatch stage.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.middleware = append([]Middleware{Logging(logger)}, c.middleware...)
	}
}

// Logging returns middleware that logs each dispatch with its action type,
// duration and outcome.
func Logging(logger *slog.Logger) Middleware {
	return func(next DispatchFunc) DispatchFunc {
		return func(ctx context.Context, act action.Action) error {
			start := time.Now()

			err := next(ctx, act)
			if err != nil {
				logger.ErrorContext(ctx, "dispatch failed",
					"type", act.Type,
					"duration", time.Since(start),
					"error", err)

				return err
			}

			logger.DebugContext(ctx, "dispatched",
				"type", act.Type,
				"duration", time.Since(start))

			return nil
		}
	}
}
