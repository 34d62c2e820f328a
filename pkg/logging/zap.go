package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ZapConfig defines the zap backend configuration
type ZapConfig struct {
	Level      string `yaml:"level"`      // "debug", "info", "warn", "error"
	Format     string `yaml:"format"`     // "json", "console"
	Output     string `yaml:"output"`     // "stdout", "stderr", file path
	Caller     bool   `yaml:"caller"`     // Include caller information
	Stacktrace bool   `yaml:"stacktrace"` // Include stacktrace on errors

	// Rotation settings, used only when Output is a file path
	MaxSizeMB  int  `yaml:"max_size_mb,omitempty"`
	MaxBackups int  `yaml:"max_backups,omitempty"`
	MaxAgeDays int  `yaml:"max_age_days,omitempty"`
	Compress   bool `yaml:"compress,omitempty"`
}

// DefaultZapConfig returns a console configuration suited to command line tools
func DefaultZapConfig() ZapConfig {
	return ZapConfig{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		Caller:     false,
		Stacktrace: true,
	}
}

// ZapLogger adapts a zap logger to Logger
type ZapLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	closer io.Closer
}

// NewZapLogger creates a Logger backed by zap
func NewZapLogger(config ZapConfig) (*ZapLogger, error) {
	level, err := getLevelFromString(config.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	var encoder zapcore.Encoder
	switch config.Format {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json", "":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("invalid log format: %s", config.Format)
	}

	var writeSyncer zapcore.WriteSyncer
	var closer io.Closer
	switch config.Output {
	case "stdout", "":
		writeSyncer = zapcore.Lock(zapcore.AddSync(os.Stdout))
	case "stderr":
		writeSyncer = zapcore.Lock(zapcore.AddSync(os.Stderr))
	default:
		rotator := &lumberjack.Logger{
			Filename:   config.Output,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
			Compress:   config.Compress,
		}
		writeSyncer = zapcore.AddSync(rotator)
		closer = rotator
	}

	opts := []zap.Option{}
	if config.Caller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if config.Stacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	logger := zap.New(zapcore.NewCore(encoder, writeSyncer, level), opts...)

	return &ZapLogger{
		logger: logger,
		sugar:  logger.Sugar(),
		closer: closer,
	}, nil
}

func (z *ZapLogger) LogLevelf(level int, format string, args ...interface{}) {
	switch level {
	case LogLevelDebug:
		z.sugar.Debugf(format, args...)
	case LogLevelWarn:
		z.sugar.Warnf(format, args...)
	case LogLevelError:
		z.sugar.Errorf(format, args...)
	default:
		z.sugar.Infof(format, args...)
	}
}

func (z *ZapLogger) Debugf(format string, args ...interface{}) {
	z.sugar.Debugf(format, args...)
}

func (z *ZapLogger) Infof(format string, args ...interface{}) {
	z.sugar.Infof(format, args...)
}

func (z *ZapLogger) Warnf(format string, args ...interface{}) {
	z.sugar.Warnf(format, args...)
}

func (z *ZapLogger) Errorf(format string, args ...interface{}) {
	z.sugar.Errorf(format, args...)
}

// Close flushes buffered entries and releases the log file, if any
func (z *ZapLogger) Close() error {
	// Sync on a terminal returns EINVAL on some platforms; ignore it.
	_ = z.logger.Sync()
	if z.closer != nil {
		return z.closer.Close()
	}
	return nil
}

// zap v1.20 predates zapcore.ParseLevel
func getLevelFromString(levelStr string) (zapcore.Level, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return zap.InfoLevel, err
	}
	return zapLevels[level], nil
}

var zapLevels = [...]zapcore.Level{
	LogLevelDebug: zap.DebugLevel,
	LogLevelInfo:  zap.InfoLevel,
	LogLevelWarn:  zap.WarnLevel,
	LogLevelError: zap.ErrorLevel,
}
