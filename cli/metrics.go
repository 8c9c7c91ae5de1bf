package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// SourceCounts is the per-source outcome of one run.
type SourceCounts struct {
	Records int64
	Skipped int64
}

// runMetrics collects the source counters of one command through a manual
// reader so they can be summarized when the command ends.
type runMetrics struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
}

func newRunMetrics() *runMetrics {
	reader := sdkmetric.NewManualReader()
	return &runMetrics{
		reader:   reader,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
	}
}

func (m *runMetrics) context(ctx context.Context) context.Context {
	return source.ContextWithMeterProvider(ctx, m.provider)
}

// Summary reads the counters recorded so far, keyed by source name.
func (m *runMetrics) Summary(ctx context.Context) (map[string]*SourceCounts, error) {
	var rm metricdata.ResourceMetrics
	if err := m.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("failed to collect source metrics: %w", err)
	}
	out := make(map[string]*SourceCounts)
	counts := func(name string) *SourceCounts {
		c, ok := out[name]
		if !ok {
			c = &SourceCounts{}
			out[name] = c
		}
		return c
	}
	for _, scope := range rm.ScopeMetrics {
		for _, metric := range scope.Metrics {
			sum, ok := metric.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				label, _ := dp.Attributes.Value(attribute.Key(source.LabelSource))
				switch metric.Name {
				case source.MetricName("records_total"):
					counts(label.AsString()).Records += dp.Value
				case source.MetricName("skipped_total"):
					counts(label.AsString()).Skipped += dp.Value
				}
			}
		}
	}
	return out, nil
}

// logSummary writes one line per source that streamed or skipped anything.
func (m *runMetrics) logSummary(ctx context.Context) {
	log := logger.FromContext(ctx)
	summary, err := m.Summary(ctx)
	if err != nil {
		log.Warn("Source summary unavailable", "error", err)
		return
	}
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		c := summary[name]
		log.Info("Source summary", "source", name, "records", c.Records, "skipped", c.Skipped)
	}
}
