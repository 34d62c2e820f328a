//go:build linux || darwin || netbsd || openbsd

package resourcelimits

import "golang.org/x/sys/unix"

func fromSysRlimit(sys unix.Rlimit) rlimit {
	return rlimit{Cur: sys.Cur, Max: sys.Max}
}

func toSysRlimit(lim rlimit) (unix.Rlimit, error) {
	return unix.Rlimit{Cur: lim.Cur, Max: lim.Max}, nil
}
