//go:build freebsd || dragonfly

package resourcelimits

import (
	"math"

	"golang.org/x/sys/unix"
)

// rlim_t is signed here and RLIM_INFINITY is math.MaxInt64.

func fromSysRlimit(sys unix.Rlimit) rlimit {
	return rlimit{Cur: fromRlimT(sys.Cur), Max: fromRlimT(sys.Max)}
}

func fromRlimT(v int64) uint64 {
	if v < 0 {
		return rlimInfinity
	}
	return uint64(v)
}

func toSysRlimit(lim rlimit) (unix.Rlimit, error) {
	if lim.Cur > math.MaxInt64 || lim.Max > math.MaxInt64 {
		return unix.Rlimit{}, unix.EINVAL
	}
	return unix.Rlimit{Cur: int64(lim.Cur), Max: int64(lim.Max)}, nil
}
