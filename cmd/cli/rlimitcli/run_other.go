//go:build !unix

package main

import "github.com/core-tools/hsu-rlimit/pkg/errors"

func execCommand(argv []string) error {
	return errors.NewUnsupportedError("run is not supported on this platform", nil)
}
