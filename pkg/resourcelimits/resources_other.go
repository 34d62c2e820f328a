//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package resourcelimits

var baseResources []Resource
