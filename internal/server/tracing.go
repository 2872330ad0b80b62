package server

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer is package-scoped, matching the common otel pattern of one tracer
// per instrumented package. With no TracerProvider registered by the
// embedding application, otel.Tracer returns a no-op implementation, so
// tracing is zero-cost until a caller wires a real exporter in via
// otel.SetTracerProvider.
var tracer = otel.Tracer("github.com/agbru/ssfft/internal/server")

// tracingMiddleware starts a span named after the request path around the
// handler it wraps, so every multiply/matmul request carries a span even
// before the handler itself records operand-specific attributes.
func tracingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.URL.Path,
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		next(w, r.WithContext(ctx))
	}
}
