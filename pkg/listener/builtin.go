package listener

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// LogListener writes every event to a structured logger.
type LogListener struct {
	logger *slog.Logger
}

func NewLogListener(logger *slog.Logger) *LogListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) Name() string {
	return "log"
}

func (l *LogListener) OnEvent(ctx context.Context, e Event) error {
	l.logger.InfoContext(ctx, "metastore event",
		"id", e.ID.String(),
		"type", string(e.Type),
		"database", e.Database,
		"table", e.Table,
		"partition", e.Partition,
		"success", e.Success,
	)
	return nil
}

// Recorder keeps every event in memory.
type Recorder struct {
	sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Name() string {
	return "recorder"
}

func (r *Recorder) OnEvent(_ context.Context, e Event) error {
	r.Lock()
	defer r.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.Lock()
	defer r.Unlock()
	return slices.Clone(r.events)
}
