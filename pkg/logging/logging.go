package logging

import "fmt"

const (
	LogLevelDebug = 0
	LogLevelInfo  = 1
	LogLevelWarn  = 2
	LogLevelError = 3
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

// ParseLevel maps a level name from flags or YAML to a LogLevel constant.
// The empty string is info.
func ParseLevel(name string) (int, error) {
	if name == "" {
		return LogLevelInfo, nil
	}
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}
	return LogLevelInfo, fmt.Errorf("invalid log level: %s", name)
}

// LevelName is the inverse of ParseLevel
func LevelName(level int) string {
	if level < LogLevelDebug || level > LogLevelError {
		return fmt.Sprintf("level(%d)", level)
	}
	return levelNames[level]
}

type Logger interface {
	LogLevelf(level int, format string, args ...interface{})
	Debugf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
}

type LogLevelFunc func(level int, format string, args ...interface{})
type LogFunc func(format string, args ...interface{})

// LogFuncs feeds a Logger. LogLevelf, when set, receives every level and the
// per-level funcs are ignored; a nil func drops its level.
type LogFuncs struct {
	LogLevelf LogLevelFunc
	Debugf    LogFunc
	Infof     LogFunc
	Warnf     LogFunc
	Errorf    LogFunc
}

// FuncsOf returns the per-level functions of an existing logger, for
// deriving a prefixed child logger from it.
func FuncsOf(l Logger) LogFuncs {
	return LogFuncs{
		Debugf: l.Debugf,
		Infof:  l.Infof,
		Warnf:  l.Warnf,
		Errorf: l.Errorf,
	}
}

// sinks resolves funcs into one writer per level
func (funcs LogFuncs) sinks() [LogLevelError + 1]LogFunc {
	var sinks [LogLevelError + 1]LogFunc
	if funcs.LogLevelf != nil {
		for level := range sinks {
			level := level
			sinks[level] = func(format string, args ...interface{}) {
				funcs.LogLevelf(level, format, args...)
			}
		}
		return sinks
	}
	sinks[LogLevelDebug] = funcs.Debugf
	sinks[LogLevelInfo] = funcs.Infof
	sinks[LogLevelWarn] = funcs.Warnf
	sinks[LogLevelError] = funcs.Errorf
	return sinks
}

type logger struct {
	prefix string
	sinks  [LogLevelError + 1]LogFunc
}

func NewLogger(prefix string, funcs LogFuncs) Logger {
	return &logger{
		prefix: prefix,
		sinks:  funcs.sinks(),
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return &logger{}
}

func (l *logger) LogLevelf(level int, format string, args ...interface{}) {
	if level < LogLevelDebug || level > LogLevelError {
		level = LogLevelInfo
	}
	sink := l.sinks[level]
	if sink == nil {
		return
	}
	sink(l.prefix+format, args...)
}

func (l *logger) Debugf(msg string, args ...interface{}) {
	l.LogLevelf(LogLevelDebug, msg, args...)
}

func (l *logger) Infof(msg string, args ...interface{}) {
	l.LogLevelf(LogLevelInfo, msg, args...)
}

func (l *logger) Warnf(msg string, args ...interface{}) {
	l.LogLevelf(LogLevelWarn, msg, args...)
}

func (l *logger) Errorf(msg string, args ...interface{}) {
	l.LogLevelf(LogLevelError, msg, args...)
}
