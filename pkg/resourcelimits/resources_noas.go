//go:build !linux && !freebsd && !netbsd

package resourcelimits

var addressSpaceResources []Resource
