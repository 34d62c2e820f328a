//go:build linux || darwin || freebsd || netbsd || openbsd

package resourcelimits

import "golang.org/x/sys/unix"

var processResources = []Resource{
	{Name: "nproc", Unit: "count", Human: "max user processes", id: unix.RLIMIT_NPROC},
	{Name: "memlock", Unit: "bytes", Human: "max locked memory", id: unix.RLIMIT_MEMLOCK},
	{Name: "rss", Unit: "bytes", Human: "max memory size", id: unix.RLIMIT_RSS},
}
