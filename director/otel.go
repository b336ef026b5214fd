package director

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startEffectSpan creates a span around one effect thunk execution.
// The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startEffectSpan(ctx context.Context, directorName, transitionName string) (context.Context, trace.Span) {
	tracer := otel.Tracer("director")
	ctx, span := tracer.Start(ctx, "effect."+transitionName)
	span.SetAttributes(
		attribute.String("director", directorName),
		attribute.String("transition", transitionName),
	)

	return ctx, span
}
