package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"olivepulse/internal/infrastructure"
)

// OTelMiddleware provides OpenTelemetry instrumentation for HTTP requests:
// one server span per request plus the request count/duration instruments.
type OTelMiddleware struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
}

// NewOTelMiddleware creates the instrumentation middleware. With tracing
// disabled the global no-op tracer is used, so span creation is free.
func NewOTelMiddleware(providers *infrastructure.OTelProviders, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *OTelMiddleware {
	tracer := providers.Tracer
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.MeterName)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OTelMiddleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Handler returns the middleware handler function
func (m *OTelMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := m.tracer.Start(ctx, fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(r.URL.Path),
				semconv.ServerAddressKey.String(r.Host),
				semconv.UserAgentOriginalKey.String(r.UserAgent()),
			),
		)
		defer span.End()

		// A real trace ID replaces the request-ID stand-in for correlation.
		if span.SpanContext().IsValid() {
			ctx = infrastructure.WithTraceID(ctx, span.SpanContext().TraceID().String())
		}

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		duration := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		if m.metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("route", routePattern(r)),
				attribute.Int("status_code", status),
			)
			m.metrics.RequestsTotal.Add(ctx, 1, attrs)
			m.metrics.RequestDuration.Record(ctx, duration.Seconds(), attrs)
		}

		span.SetAttributes(
			semconv.HTTPResponseStatusCodeKey.Int(status),
			attribute.Int("http.response.body.size", ww.BytesWritten()),
		)
		if status >= 400 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

// routePattern extracts the chi route pattern, falling back to the raw path
// for unrouted requests.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}
