package resourcelimits

import (
	"strconv"
)

// UnlimitedString is how an unbounded Value prints and parses
const UnlimitedString = "unlimited"

// Value is one side of a limit pair: a non-negative quantity whose unit
// depends on the resource, or unbounded. The zero Value is a limit of 0.
type Value struct {
	limit     uint64
	unbounded bool
}

// Limit returns a bounded Value
func Limit(n uint64) Value {
	return Value{limit: n}
}

// Unbounded returns the Value meaning "no ceiling" (RLIM_INFINITY)
func Unbounded() Value {
	return Value{unbounded: true}
}

// IsUnbounded reports whether v means "no ceiling"
func (v Value) IsUnbounded() bool {
	return v.unbounded
}

// Uint64 returns the quantity, with ok false for an unbounded Value
func (v Value) Uint64() (n uint64, ok bool) {
	if v.unbounded {
		return 0, false
	}
	return v.limit, true
}

func (v Value) String() string {
	if v.unbounded {
		return UnlimitedString
	}
	return strconv.FormatUint(v.limit, 10)
}

// Interface returns the host-boundary form: uint64, or nil when unbounded
func (v Value) Interface() interface{} {
	if v.unbounded {
		return nil
	}
	return v.limit
}

func (v Value) raw() uint64 {
	if v.unbounded {
		return rlimInfinity
	}
	return v.limit
}

func valueFromRaw(raw uint64) Value {
	if raw == rlimInfinity {
		return Unbounded()
	}
	return Limit(raw)
}

// Pair is the soft/hard limit of a resource
type Pair struct {
	Soft Value
	Hard Value
}

func (p Pair) String() string {
	return "soft=" + p.Soft.String() + " hard=" + p.Hard.String()
}

// Map returns the host-boundary form {"soft": ..., "hard": ...}
func (p Pair) Map() map[string]interface{} {
	return map[string]interface{}{
		"soft": p.Soft.Interface(),
		"hard": p.Hard.Interface(),
	}
}

// Update is a partial pair. A nil side is left unchanged.
type Update struct {
	Soft *Value
	Hard *Value
}

// SetSoft returns an Update changing only the soft limit
func SetSoft(v Value) Update {
	return Update{Soft: &v}
}

// SetHard returns an Update changing only the hard limit
func SetHard(v Value) Update {
	return Update{Hard: &v}
}

// SetBoth returns an Update replacing the whole pair
func SetBoth(p Pair) Update {
	return Update{Soft: &p.Soft, Hard: &p.Hard}
}

func (u Update) pending() bool {
	return u.Soft == nil || u.Hard == nil
}

// merge fills the omitted sides of u from current
func (u Update) merge(current rlimit) rlimit {
	merged := current
	if u.Soft != nil {
		merged.Cur = u.Soft.raw()
	}
	if u.Hard != nil {
		merged.Max = u.Hard.raw()
	}
	return merged
}

func (u Update) String() string {
	side := func(v *Value) string {
		if v == nil {
			return "unchanged"
		}
		return v.String()
	}
	return "soft=" + side(u.Soft) + " hard=" + side(u.Hard)
}
