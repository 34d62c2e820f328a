//go:build linux || freebsd || netbsd

package resourcelimits

import "golang.org/x/sys/unix"

// On darwin RLIMIT_AS is an alias of RLIMIT_RSS and OpenBSD has no RLIMIT_AS.
var addressSpaceResources = []Resource{
	{Name: "as", Unit: "bytes", Human: "virtual memory", id: unix.RLIMIT_AS},
}
