//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package resourcelimits

var processResources []Resource
