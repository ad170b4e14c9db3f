package linkedin

import (
	"context"
	"linkedin-voyager/lib/resolve"
	"linkedin-voyager/lib/schema"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("platforms/linkedin")
	meter  = otel.Meter("platforms/linkedin")
)

var (
	fetchCounter      = newCounter(meter, "linkedin.fetches", "requests sent upstream, by endpoint and status")
	diagnosticCounter = newCounter(meter, "linkedin.diagnostics", "optional values dropped while decoding, by code")
)

// newCounter never returns nil. A counter the meter refuses to create is
// replaced by one that records nothing.
func newCounter(m metric.Meter, name, description string) metric.Int64Counter {
	counter, err := m.Int64Counter(name, metric.WithDescription(description))
	if err != nil || counter == nil {
		slog.Warn("failed to create counter", "name", name, "err", err)
		counter, _ = noop.Meter{}.Int64Counter(name)
	}
	return counter
}

func countFetch(ctx context.Context, endpoint resolve.Endpoint, status int) {
	fetchCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", string(endpoint)),
		attribute.String("status", strconv.Itoa(status)),
	))
}

func countDiagnostics(ctx context.Context, diags schema.Diagnostics) {
	for _, d := range diags {
		diagnosticCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("code", d.Code),
			attribute.String("entity", d.Entity),
		))
	}
}

func recordError(span trace.Span, err error, description string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, description)
}
