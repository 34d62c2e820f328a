package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	rlimitLogging "github.com/core-tools/hsu-rlimit/pkg/logging"
)

type serverLifecycle struct {
	start    func(ctx context.Context)
	shutdown func(ctx context.Context)
	cleanup  func()
}

func shutdownSignals() <-chan os.Signal {
	sig := make(chan os.Signal, 1)
	if runtime.GOOS == "windows" {
		signal.Notify(sig) // Unix signals not implemented on Windows
	} else {
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	}
	return sig
}

// serve starts the server and blocks until stop delivers a signal. Published
// files are removed before the listener goes away.
func serve(ctx context.Context, lifecycle serverLifecycle, stop <-chan os.Signal, logger rlimitLogging.Logger) {
	lifecycle.start(ctx)
	logger.Infof("Server is ready, waiting for signals...")

	sig := <-stop
	logger.Infof("Received signal: %v, shutting down...", sig)

	if lifecycle.cleanup != nil {
		lifecycle.cleanup()
	}
	lifecycle.shutdown(ctx)
	logger.Infof("Server stopped")
}
