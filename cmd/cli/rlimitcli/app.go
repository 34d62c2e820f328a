package main

import (
	"context"
	"time"

	coreControl "github.com/core-tools/hsu-core/pkg/control"
	coreDomain "github.com/core-tools/hsu-core/pkg/domain"
	coreLogging "github.com/core-tools/hsu-core/pkg/logging"

	rlimitControl "github.com/core-tools/hsu-rlimit/pkg/control"
	rlimitDomain "github.com/core-tools/hsu-rlimit/pkg/domain"
	"github.com/core-tools/hsu-rlimit/pkg/errors"
	rlimitLogging "github.com/core-tools/hsu-rlimit/pkg/logging"
	"github.com/core-tools/hsu-rlimit/pkg/processfile"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"
)

type app struct {
	zap      *rlimitLogging.ZapLogger
	logger   rlimitLogging.Logger
	contract rlimitDomain.Contract
	manager  *resourcelimits.Manager // nil when remote
}

func (a *app) remote() bool {
	return a.manager == nil
}

func (a *app) close() {
	_ = a.zap.Close()
}

func newApp(ctx context.Context) (*app, error) {
	zapConfig := rlimitLogging.DefaultZapConfig()
	zapConfig.Level = opts.LogLevel
	zl, err := rlimitLogging.NewZapLogger(zapConfig)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid logging options", err)
	}
	a := &app{
		zap:    zl,
		logger: rlimitLogging.NewLogger(logPrefix("hsu-rlimit"), rlimitLogging.FuncsOf(zl)),
	}

	port, err := resolvePort(a.logger)
	if err != nil {
		a.close()
		return nil, err
	}

	if port == 0 && opts.ServerPath == "" {
		a.manager = resourcelimits.NewManager(a.logger)
		a.contract = rlimitDomain.NewLimitsHandler(a.manager, a.logger)
		return a, nil
	}

	coreLogger := coreLogging.NewLogger(
		logPrefix("hsu-core"), coreLogging.LogFuncs{
			Debugf: zl.Debugf,
			Infof:  zl.Infof,
			Warnf:  zl.Warnf,
			Errorf: zl.Errorf,
		})

	coreConnectionOptions := coreControl.ConnectionOptions{
		ServerPath: opts.ServerPath,
		AttachPort: port,
	}
	coreConnection, err := coreControl.NewConnection(coreConnectionOptions, coreLogger)
	if err != nil {
		a.close()
		return nil, errors.NewIOError("failed to connect to rlimitsrv", err)
	}

	coreClientGateway := coreControl.NewGRPCClientGateway(coreConnection.GRPC(), coreLogger)
	retryPingOptions := coreDomain.RetryPingOptions{
		RetryAttempts: 10,
		RetryInterval: 1 * time.Second,
	}
	if err := coreDomain.RetryPing(ctx, coreClientGateway, retryPingOptions, coreLogger); err != nil {
		a.close()
		return nil, errors.NewIOError("rlimitsrv did not answer", err)
	}

	a.contract = rlimitControl.NewGRPCClientGateway(coreConnection.GRPC(), a.logger)
	return a, nil
}

// withApp runs fn with a connected app and releases it afterwards
func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(ctx, a)
}

// resolvePort returns --port, or the port published by the --attach instance
func resolvePort(logger rlimitLogging.Logger) (int, error) {
	if opts.Attach == "" {
		return opts.Port, nil
	}
	if opts.Port != 0 {
		return 0, errors.NewInvalidArgumentError("--port and --attach are mutually exclusive", nil)
	}
	fileConfig := processfile.ProcessFileConfig{BaseDirectory: opts.RunDir, UseSubdirectory: opts.RunDir == ""}
	if opts.System {
		fileConfig.ServiceContext = processfile.SystemService
	}
	return processfile.NewProcessFileManager(fileConfig, logger).ReadPortFile(opts.Attach)
}
