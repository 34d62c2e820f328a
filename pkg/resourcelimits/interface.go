package resourcelimits

// LimitReader queries the current soft/hard pair of a named resource
type LimitReader interface {
	// Get returns the current limits of the resource
	Get(name string) (Pair, error)
}

// LimitWriter updates the limits of a named resource
type LimitWriter interface {
	// Set applies update; omitted sides keep their current kernel value
	Set(name string, update Update) error
}

// LimitManager combines reading and writing with whole-registry operations
type LimitManager interface {
	LimitReader
	LimitWriter

	// Snapshot reads every registered resource
	Snapshot() []Entry

	// ApplyProfile applies every update of a profile
	ApplyProfile(profile *Profile) error
}

// Entry is one resource in a Snapshot. Err is set when the read failed.
type Entry struct {
	Name string
	Pair Pair
	Err  error
}

// kernel is the getrlimit/setrlimit pair the manager talks to. Values use
// the platform's RLIM_INFINITY for "no limit".
type kernel interface {
	Getrlimit(resource int, lim *rlimit) error
	Setrlimit(resource int, lim *rlimit) error
}

// rlimit mirrors struct rlimit with unsigned fields on every platform
type rlimit struct {
	Cur uint64
	Max uint64
}
