// Package listener notifies pluggable listeners about metastore events.
// Listeners are looked up by name in a registry of factories, so a
// configuration such as "log,recorder" selects which ones run.
package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/google/uuid"
)

type EventType string

const (
	CreateDatabase EventType = "CREATE_DATABASE"
	DropDatabase   EventType = "DROP_DATABASE"
	CreateTable    EventType = "CREATE_TABLE"
	DropTable      EventType = "DROP_TABLE"
	AlterTable     EventType = "ALTER_TABLE"
	AddPartition   EventType = "ADD_PARTITION"
	DropPartition  EventType = "DROP_PARTITION"
	AlterPartition EventType = "ALTER_PARTITION"
)

// Event describes one change to a metastore object.
type Event struct {
	ID        uuid.UUID
	Type      EventType
	Time      time.Time
	Database  string
	Table     string
	Partition []string
	// Success is false when the change was rejected.
	Success bool
}

// NewEvent returns a successful event with a fresh ID.
func NewEvent(typ EventType, db, table string, partVals ...string) Event {
	return Event{
		ID:        uuid.New(),
		Type:      typ,
		Time:      time.Now(),
		Database:  db,
		Table:     table,
		Partition: partVals,
		Success:   true,
	}
}

// Listener receives events.
type Listener interface {
	Name() string
	OnEvent(ctx context.Context, e Event) error
}

// Config is handed to every factory.
type Config struct {
	Logger *slog.Logger
	// Settings holds free-form listener settings, such as the keys of the
	// [listeners] section of the configuration file.
	Settings map[string]string
}

// Factory builds a listener.
type Factory func(cfg Config) (Listener, error)

var (
	factories map[string]Factory
	lock      sync.RWMutex
)

func init() {
	registerBuiltins()
}

func registerBuiltins() {
	Register("log", func(cfg Config) (Listener, error) {
		return NewLogListener(cfg.Logger), nil
	})
	Register("recorder", func(Config) (Listener, error) {
		return NewRecorder(), nil
	})
}

// Register adds a factory under name, replacing any previous one.
func Register(name string, f Factory) {
	lock.Lock()
	defer lock.Unlock()

	if factories == nil {
		factories = make(map[string]Factory)
	}
	factories[name] = f
}

// List returns the registered names in sorted order.
func List() []string {
	lock.RLock()
	defer lock.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the registry.
// This is primarily useful for testing.
func Reset() {
	lock.Lock()
	defer lock.Unlock()

	factories = make(map[string]Factory)
}

// New builds the listeners named in the comma separated list, in order. An
// empty list yields no listeners. A name that is not registered, or a
// factory that fails, is returned as a *metastore.MetaError.
func New(list string, cfg Config) ([]Listener, error) {
	listeners := []Listener{}
	list = strings.TrimSpace(list)
	if list == "" {
		return listeners, nil
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	lock.RLock()
	defer lock.RUnlock()
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		f, ok := factories[name]
		if !ok {
			return nil, &metastore.MetaError{Message: fmt.Sprintf("Failed to instantiate listener named: %s, reason: not registered", name)}
		}
		l, err := f(cfg)
		if err != nil {
			return nil, &metastore.MetaError{Message: fmt.Sprintf("Failed to instantiate listener named: %s, reason: %v", name, err), Err: err}
		}
		listeners = append(listeners, l)
	}
	return listeners, nil
}

// Notify sends e to every listener. All listeners are called even when some
// fail; the failures are joined.
func Notify(ctx context.Context, listeners []Listener, e Event) error {
	var errs []error
	for _, l := range listeners {
		if err := l.OnEvent(ctx, e); err != nil {
			errs = append(errs, fmt.Errorf("listener %s: %w", l.Name(), err))
		}
	}
	return errors.Join(errs...)
}
