//go:build unix

package main

import (
	"os"
	"os/exec"

	"github.com/core-tools/hsu-rlimit/pkg/errors"

	"golang.org/x/sys/unix"
)

// execCommand replaces the current process, keeping its limits
func execCommand(argv []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return errors.NewInvalidArgumentError("command not found", err).WithContext("command", argv[0])
	}
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		return errors.NewSystemError("execve", err).WithContext("command", path)
	}
	return nil
}
