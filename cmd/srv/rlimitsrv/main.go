package main

import (
	"context"
	"fmt"
	"os"

	coreControl "github.com/core-tools/hsu-core/pkg/control"
	coreDomain "github.com/core-tools/hsu-core/pkg/domain"
	coreLogging "github.com/core-tools/hsu-core/pkg/logging"

	rlimitControl "github.com/core-tools/hsu-rlimit/pkg/control"
	rlimitDomain "github.com/core-tools/hsu-rlimit/pkg/domain"
	rlimitLogging "github.com/core-tools/hsu-rlimit/pkg/logging"
	"github.com/core-tools/hsu-rlimit/pkg/processfile"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"

	flags "github.com/jessevdk/go-flags"
)

type flagOptions struct {
	Port      int    `long:"port" description:"port to listen on"`
	Profile   string `long:"profile" description:"YAML limits profile to apply at startup"`
	LogLevel  string `long:"log-level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"log level"`
	LogFormat string `long:"log-format" default:"console" choice:"console" choice:"json" description:"log format"`
	LogFile   string `long:"log-file" description:"write logs to this file, rotated, instead of stderr"`
	Instance  string `long:"instance" description:"publish PID and port files under this instance name"`
	RunDir    string `long:"run-dir" description:"directory for the PID and port files"`
	System    bool   `long:"system" description:"use system-wide directories for the profile and process files"`
}

func logPrefix(module string) string {
	return fmt.Sprintf("module: %s-server , ", module)
}

func main() {
	var opts flagOptions
	var argv []string = os.Args[1:]
	var parser = flags.NewParser(&opts, flags.HelpFlag)
	var err error
	_, err = parser.ParseArgs(argv)
	if err != nil {
		fmt.Printf("Command line flags parsing failed: %v", err)
		os.Exit(1)
	}

	if opts.Port == 0 {
		fmt.Println("Port is required")
		os.Exit(1)
	}

	zapConfig := rlimitLogging.DefaultZapConfig()
	zapConfig.Level = opts.LogLevel
	zapConfig.Format = opts.LogFormat
	if opts.LogFile != "" {
		zapConfig.Output = opts.LogFile
		zapConfig.MaxSizeMB = 10
		zapConfig.MaxBackups = 3
	}
	logger, err := rlimitLogging.NewZapLogger(zapConfig)
	if err != nil {
		fmt.Printf("Failed to create logger: %v", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Infof("opts: %+v", opts)
	logger.Infof("Starting...")

	coreLogger := coreLogging.NewLogger(
		logPrefix("hsu-core"), coreLogging.LogFuncs{
			Debugf: logger.Debugf,
			Infof:  logger.Infof,
			Warnf:  logger.Warnf,
			Errorf: logger.Errorf,
		})
	rlimitLogger := rlimitLogging.NewLogger(
		logPrefix("hsu-rlimit"), rlimitLogging.FuncsOf(logger))

	manager := resourcelimits.NewManager(rlimitLogger)

	fileConfig := processfile.ProcessFileConfig{BaseDirectory: opts.RunDir, UseSubdirectory: opts.RunDir == ""}
	if opts.System {
		fileConfig.ServiceContext = processfile.SystemService
	}
	processFiles := processfile.NewProcessFileManager(fileConfig, rlimitLogger)

	if opts.Profile == "" {
		if defaultProfile := processFiles.ProfilePath(); fileExists(defaultProfile) {
			logger.Infof("Using default profile %s", defaultProfile)
			opts.Profile = defaultProfile
		}
	}

	if opts.Profile != "" {
		profile, err := resourcelimits.LoadProfileFromFile(opts.Profile)
		if err != nil {
			logger.Errorf("Failed to load profile: %v", err)
			os.Exit(1)
		}
		if err := resourcelimits.ValidateProfile(profile); err != nil {
			logger.Errorf("Invalid profile %s: %v", opts.Profile, err)
			os.Exit(1)
		}
		if err := manager.ApplyProfile(profile); err != nil {
			logger.Errorf("Failed to apply profile %s: %v", opts.Profile, err)
			os.Exit(1)
		}
	}

	serverOptions := coreControl.ServerOptions{
		Port: opts.Port,
	}
	server, err := coreControl.NewServer(serverOptions, coreLogger)
	if err != nil {
		logger.Errorf("Failed to create server: %v", err)
		os.Exit(1)
	}

	// Register core services
	coreHandler := coreDomain.NewDefaultHandler(coreLogger)
	coreControl.RegisterGRPCServerHandler(server.GRPC(), coreHandler, coreLogger)

	// Register resource limit services
	limitsHandler := rlimitDomain.NewLimitsHandler(manager, rlimitLogger)
	rlimitControl.RegisterGRPCServerHandler(server.GRPC(), limitsHandler, rlimitLogger)

	if opts.Instance != "" {
		if err := processFiles.WritePIDFile(opts.Instance, os.Getpid()); err != nil {
			logger.Errorf("Failed to write PID file: %v", err)
			os.Exit(1)
		}
		if err := processFiles.WritePortFile(opts.Instance, opts.Port); err != nil {
			logger.Errorf("Failed to write port file: %v", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	serve(ctx, serverLifecycle{
		start:    func(ctx context.Context) { server.Start(ctx) },
		shutdown: func(ctx context.Context) { server.Shutdown(ctx) },
		cleanup: func() {
			if opts.Instance == "" {
				return
			}
			if err := processFiles.RemoveFiles(opts.Instance); err != nil {
				logger.Warnf("Failed to remove process files: %v", err)
			}
		},
	}, shutdownSignals(), rlimitLogger)

	logger.Infof("Done")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
