package resourcelimits

import (
	"github.com/core-tools/hsu-rlimit/pkg/errors"
	"github.com/core-tools/hsu-rlimit/pkg/logging"
)

// Manager reads and writes the resource limits of the calling process.
// Every call goes straight to the kernel; nothing is cached.
type Manager struct {
	kernel kernel
	logger logging.Logger
}

// NewManager creates a manager over the process's own limits
func NewManager(logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Manager{
		kernel: sysKernel{},
		logger: logger,
	}
}

var defaultManager = NewManager(nil)

// Get returns the limits of the named resource using a non-logging manager
func Get(name string) (Pair, error) {
	return defaultManager.Get(name)
}

// Set updates the limits of the named resource using a non-logging manager
func Set(name string, update Update) error {
	return defaultManager.Set(name, update)
}

// Get returns the current soft/hard pair of the named resource
func (m *Manager) Get(name string) (Pair, error) {
	resource, ok := Lookup(name)
	if !ok {
		return Pair{}, errors.NewUnknownResourceError(name)
	}

	var lim rlimit
	if err := m.kernel.Getrlimit(resource.id, &lim); err != nil {
		m.logger.Debugf("getrlimit %s failed: %v", name, err)
		return Pair{}, errors.NewSystemError("getrlimit", err).WithContext("resource", name)
	}

	pair := Pair{Soft: valueFromRaw(lim.Cur), Hard: valueFromRaw(lim.Max)}
	m.logger.Debugf("getrlimit %s: %s", name, pair)
	return pair, nil
}

// Set applies update to the named resource with a single setrlimit call.
// Omitted sides are first read from the kernel, so changing one side never
// resets the other. The read and the write are two separate calls; callers
// racing on the same resource from several goroutines must serialize.
func (m *Manager) Set(name string, update Update) error {
	resource, ok := Lookup(name)
	if !ok {
		return errors.NewUnknownResourceError(name)
	}

	var current rlimit
	if update.pending() {
		if err := m.kernel.Getrlimit(resource.id, &current); err != nil {
			m.logger.Warnf("getrlimit %s before update failed: %v", name, err)
			return errors.NewSystemError("getrlimit", err).WithContext("resource", name)
		}
	}

	lim := update.merge(current)
	m.logger.Debugf("setrlimit %s: update %s, soft=%s hard=%s",
		name, update, valueFromRaw(lim.Cur), valueFromRaw(lim.Max))

	if err := m.kernel.Setrlimit(resource.id, &lim); err != nil {
		m.logger.Warnf("setrlimit %s failed: %v", name, err)
		return errors.NewSystemError("setrlimit", err).WithContext("resource", name)
	}
	return nil
}

// Snapshot reads every resource in the registry. A failed read is reported
// in its entry and does not stop the others.
func (m *Manager) Snapshot() []Entry {
	entries := make([]Entry, 0, len(registry))
	for _, r := range registry {
		pair, err := m.Get(r.Name)
		entries = append(entries, Entry{Name: r.Name, Pair: pair, Err: err})
	}
	return entries
}
