//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package resourcelimits

import "golang.org/x/sys/unix"

const rlimInfinity = uint64(unix.RLIM_INFINITY)

// Replaced in tests to exercise failure paths of the real kernel adapter.
var (
	getrlimit = unix.Getrlimit
	setrlimit = unix.Setrlimit
)

type sysKernel struct{}

func (sysKernel) Getrlimit(resource int, lim *rlimit) error {
	var sys unix.Rlimit
	if err := getrlimit(resource, &sys); err != nil {
		return err
	}
	*lim = fromSysRlimit(sys)
	return nil
}

func (sysKernel) Setrlimit(resource int, lim *rlimit) error {
	sys, err := toSysRlimit(*lim)
	if err != nil {
		return err
	}
	return setrlimit(resource, &sys)
}
