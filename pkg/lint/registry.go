package lint

import (
	"fmt"
	"sort"
	"sync"
)

// linter represents a registered linter with metadata
type linter struct {
	impl    Linter
	enabled bool
}

var (
	linters map[string]linter
	lock    sync.RWMutex
)

// Register registers a linter with the global registry.
// This should be called from init() functions in linter implementations.
// Linters are enabled by default when registered.
func Register(l Linter) {
	lock.Lock()
	defer lock.Unlock()

	if linters == nil {
		linters = make(map[string]linter)
	}

	linters[l.Name()] = linter{
		impl:    l,
		enabled: true,
	}
}

// Enable enables specific linters by name.
// Returns an error if the linter is not found.
func Enable(names ...string) error {
	return setEnabled(true, names)
}

// Disable disables specific linters by name.
// Returns an error if the linter is not found.
func Disable(names ...string) error {
	return setEnabled(false, names)
}

func setEnabled(enabled bool, names []string) error {
	lock.Lock()
	defer lock.Unlock()

	for _, name := range names {
		l, ok := linters[name]
		if !ok {
			return fmt.Errorf("linter %q not found", name)
		}
		l.enabled = enabled
		linters[name] = l
	}
	return nil
}

// List returns the names of all registered linters in sorted order.
func List() []string {
	lock.RLock()
	defer lock.RUnlock()

	names := make([]string, 0, len(linters))
	for name := range linters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Get returns a linter by name.
// Returns an error if the linter is not found.
func Get(name string) (Linter, error) {
	lock.RLock()
	defer lock.RUnlock()

	l, ok := linters[name]
	if !ok {
		return nil, fmt.Errorf("linter %q not found", name)
	}

	return l.impl, nil
}

// Reset clears all registered linters.
// This is primarily useful for testing.
func Reset() {
	lock.Lock()
	defer lock.Unlock()

	linters = make(map[string]linter)
}

// Describe returns the String of every registered linter, sorted by name,
// and whether it is enabled by default.
func Describe() []string {
	lock.RLock()
	defer lock.RUnlock()

	out := make([]string, 0, len(linters))
	for _, l := range linters {
		line := l.impl.String()
		if !l.enabled {
			line += " (disabled)"
		}
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}
