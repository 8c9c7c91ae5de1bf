package source

import (
	"context"
	"strings"
	"sync"

	"github.com/compozy/uafixtures/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricPrefix    = "uafixtures_"
	metricSubsystem = "source"
	meterName       = "uafixtures.source"

	// LabelSource and LabelReason are the counter attribute keys.
	LabelSource = "source"
	LabelReason = "reason"

	sourceLabelUnknown = "unknown"
)

type skipReason string

const (
	skipReasonParse skipReason = "parse_error"
	skipReasonRow   skipReason = "row_error"
)

type sourceMetrics struct {
	recordsTotal metric.Int64Counter
	skippedTotal metric.Int64Counter
}

// recorders caches one counter pair per meter provider.
var recorders sync.Map

type meterProviderCtxKey struct{}

// ContextWithMeterProvider makes the source counters record through mp.
func ContextWithMeterProvider(ctx context.Context, mp metric.MeterProvider) context.Context {
	return context.WithValue(ctx, meterProviderCtxKey{}, mp)
}

func meterProviderFromContext(ctx context.Context) metric.MeterProvider {
	if mp, ok := ctx.Value(meterProviderCtxKey{}).(metric.MeterProvider); ok && mp != nil {
		return mp
	}
	return otel.GetMeterProvider()
}

// MetricName prefixes name with the subsystem and module prefix.
func MetricName(name string) string {
	return metricPrefix + metricSubsystem + "_" + name
}

func sourceMetricsRecorder(ctx context.Context) *sourceMetrics {
	mp := meterProviderFromContext(ctx)
	if cached, ok := recorders.Load(mp); ok {
		return cached.(*sourceMetrics)
	}
	meter := mp.Meter(meterName)
	m := &sourceMetrics{}
	var err error
	m.recordsTotal, err = meter.Int64Counter(
		MetricName("records_total"),
		metric.WithDescription("Total fixture records streamed by source"),
		metric.WithUnit("1"),
	)
	if err != nil {
		logger.FromContext(ctx).Warn("source metrics: failed to create records counter", "error", err)
	}
	m.skippedTotal, err = meter.Int64Counter(
		MetricName("skipped_total"),
		metric.WithDescription("Total fixture files or rows skipped by source and reason"),
		metric.WithUnit("1"),
	)
	if err != nil {
		logger.FromContext(ctx).Warn("source metrics: failed to create skipped counter", "error", err)
	}
	actual, _ := recorders.LoadOrStore(mp, m)
	return actual.(*sourceMetrics)
}

// RecordEmitted counts one record streamed by the named source.
func RecordEmitted(ctx context.Context, name string) {
	recorder := sourceMetricsRecorder(ctx)
	if recorder.recordsTotal == nil {
		return
	}
	recorder.recordsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String(LabelSource, sanitizeSourceLabel(name))),
	)
}

func recordSkipped(ctx context.Context, name string, reason skipReason) {
	recorder := sourceMetricsRecorder(ctx)
	if recorder.skippedTotal == nil {
		return
	}
	recorder.skippedTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(LabelSource, sanitizeSourceLabel(name)),
			attribute.String(LabelReason, string(reason)),
		),
	)
}

// RowSkipped counts a malformed row that was dropped without a report.
func RowSkipped(ctx context.Context, name string) {
	recordSkipped(ctx, name, skipReasonRow)
}

func sanitizeSourceLabel(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return sourceLabelUnknown
	}
	return trimmed
}
