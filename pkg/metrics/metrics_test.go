package metrics

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deadlineSink struct {
	deadline time.Time
	ok       bool
}

func (s *deadlineSink) Send(ctx context.Context, _ *Metrics) error {
	s.deadline, s.ok = ctx.Deadline()
	return nil
}

func TestSendAppliesTimeout(t *testing.T) {
	sink := &deadlineSink{}
	require.NoError(t, Send(t.Context(), sink, &Metrics{}))
	assert.True(t, sink.ok)
	assert.WithinDuration(t, time.Now().Add(SinkTimeout), sink.deadline, SinkTimeout)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewTextHandler(&buf, nil)))

	err := sink.Send(t.Context(), &Metrics{
		Labels: map[string]string{"table": "sales.orders"},
		Values: []MetricValue{
			{Name: TableNumFilesMetricName, Value: 3, Type: GAUGE},
			{Name: LintErrorsMetricName, Value: 1, Type: COUNTER},
			{Name: "bogus", Value: 1},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "name=table_num_files value=3 table=sales.orders type=gauge")
	assert.Contains(t, out, "name=lint_errors value=1 table=sales.orders type=counter")
	assert.Contains(t, out, `level=ERROR msg="received invalid metric type" name=bogus`)
}

func TestNoopSink(t *testing.T) {
	assert.NoError(t, (&NoopSink{}).Send(t.Context(), &Metrics{Values: []MetricValue{{Name: "x"}}}))
}
