// Package metrics contains a sink interface for reporting table statistics
// and lint results to an external system, with a NoopSink and a LogSink.
package metrics

import (
	"context"
	"log/slog"
	"time"
)

// Metric types.
const (
	UNKNOWN byte = iota
	COUNTER
	GAUGE
)

const (
	SinkTimeout                 = 1 * time.Second
	TableNumFilesMetricName     = "table_num_files"
	TableTotalSizeMetricName    = "table_total_size"
	LintViolationsMetricName    = "lint_violations"
	LintErrorsMetricName        = "lint_errors"
	TableStatsUpdatedMetricName = "table_stats_updated"
)

// Metrics are a collection of MetricValues that share labels, such as the
// table they describe.
type Metrics struct {
	Labels map[string]string
	Values []MetricValue
}

type MetricValue struct {
	Name  string
	Value float64
	// Type is GAUGE, COUNTER or UNKNOWN.
	Type byte
}

// Sink sends metrics to an external destination.
type Sink interface {
	// Send sends metrics to the sink. It must respect the context timeout, if any.
	Send(ctx context.Context, metrics *Metrics) error
}

// Send delivers m to sink within SinkTimeout.
func Send(ctx context.Context, sink Sink, m *Metrics) error {
	ctx, cancel := context.WithTimeout(ctx, SinkTimeout)
	defer cancel()
	return sink.Send(ctx, m)
}

// NoopSink is the default sink which does nothing
type NoopSink struct{}

func (s *NoopSink) Send(ctx context.Context, m *Metrics) error {
	return nil
}

var _ Sink = &NoopSink{}

// LogSink writes every metric to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

var _ Sink = &LogSink{}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{
		logger: logger,
	}
}

func (l *LogSink) Send(ctx context.Context, m *Metrics) error {
	labels := make([]any, 0, 2*len(m.Labels))
	for k, v := range m.Labels {
		labels = append(labels, k, v)
	}
	for _, v := range m.Values {
		args := append([]any{"name", v.Name, "value", v.Value}, labels...)
		switch v.Type {
		case COUNTER:
			l.logger.InfoContext(ctx, "metric", append(args, "type", "counter")...)
		case GAUGE:
			l.logger.InfoContext(ctx, "metric", append(args, "type", "gauge")...)
		default:
			l.logger.ErrorContext(ctx, "received invalid metric type", append(args, "type", v.Type)...)
		}
	}
	return nil
}
