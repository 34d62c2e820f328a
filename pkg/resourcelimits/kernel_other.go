//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package resourcelimits

import "errors"

const rlimInfinity = ^uint64(0)

var errNoRlimit = errors.New("getrlimit/setrlimit not available on this platform")

// The registry is empty here, so these are only reachable through a
// hand-built Resource.
type sysKernel struct{}

func (sysKernel) Getrlimit(int, *rlimit) error {
	return errNoRlimit
}

func (sysKernel) Setrlimit(int, *rlimit) error {
	return errNoRlimit
}
