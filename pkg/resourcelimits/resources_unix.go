//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package resourcelimits

import "golang.org/x/sys/unix"

var baseResources = []Resource{
	{Name: "core", Unit: "bytes", Human: "core file size", id: unix.RLIMIT_CORE},
	{Name: "cpu", Unit: "seconds", Human: "cpu time", id: unix.RLIMIT_CPU},
	{Name: "data", Unit: "bytes", Human: "data segment size", id: unix.RLIMIT_DATA},
	{Name: "fsize", Unit: "bytes", Human: "file size", id: unix.RLIMIT_FSIZE},
	{Name: "nofile", Unit: "count", Human: "open files", id: unix.RLIMIT_NOFILE},
	{Name: "stack", Unit: "bytes", Human: "stack size", id: unix.RLIMIT_STACK},
}
