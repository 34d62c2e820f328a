package processfile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/core-tools/hsu-rlimit/pkg/errors"
	"github.com/core-tools/hsu-rlimit/pkg/logging"
)

// Default application name for the rlimit server files
const DefaultAppName = "hsu-rlimit"

// DefaultProfileName is the file name looked up by ProfilePath
const DefaultProfileName = "profile.yaml"

// ProcessFileConfig holds configuration for the PID, port and profile file locations
type ProcessFileConfig struct {
	// Base directory for PID and port files. If empty, uses OS-appropriate default
	BaseDirectory string

	// Directory holding the limits profile. If empty, uses OS-appropriate default
	ConfigDirectory string

	// Service context - affects directory selection
	ServiceContext ServiceContext

	// Application name for subdirectory creation
	AppName string

	// Create subdirectory for the app
	UseSubdirectory bool
}

// ServiceContext defines the context in which the server runs
type ServiceContext string

const (
	// SystemService runs as a system service (daemon)
	SystemService ServiceContext = "system"

	// UserService runs as a user service
	UserService ServiceContext = "user"
)

// ProcessFileManager resolves and manages the files an rlimit server instance
// publishes so that clients can find it
type ProcessFileManager struct {
	config ProcessFileConfig
	logger logging.Logger
}

// NewProcessFileManager creates a new process file manager with the given configuration
func NewProcessFileManager(config ProcessFileConfig, logger logging.Logger) *ProcessFileManager {
	if config.AppName == "" {
		config.AppName = DefaultAppName
	}
	if config.ServiceContext == "" {
		config.ServiceContext = UserService
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProcessFileManager{
		config: config,
		logger: logger,
	}
}

// PIDFilePath returns the PID file path of the named server instance
func (m *ProcessFileManager) PIDFilePath(instance string) string {
	return filepath.Join(m.runDirectory(), instance+".pid")
}

// PortFilePath returns the port file path of the named server instance
func (m *ProcessFileManager) PortFilePath(instance string) string {
	return strings.TrimSuffix(m.PIDFilePath(instance), ".pid") + ".port"
}

// ProfilePath returns where the default limits profile is expected
func (m *ProcessFileManager) ProfilePath() string {
	dir := m.config.ConfigDirectory
	if dir == "" {
		dir = filepath.Join(m.configBaseDirectory(), m.config.AppName)
	}
	return filepath.Join(dir, DefaultProfileName)
}

// WritePIDFile writes pid to the instance's PID file
func (m *ProcessFileManager) WritePIDFile(instance string, pid int) error {
	return m.writeNumber("PID", m.PIDFilePath(instance), pid)
}

// WritePortFile writes port to the instance's port file
func (m *ProcessFileManager) WritePortFile(instance string, port int) error {
	return m.writeNumber("port", m.PortFilePath(instance), port)
}

func (m *ProcessFileManager) writeNumber(kind, path string, n int) error {
	m.logger.Debugf("Writing %s file, value: %d, path: %s", kind, n, path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewIOError(fmt.Sprintf("failed to create %s file directory", kind), err).WithContext("path", path)
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d\n", n)), 0644); err != nil {
		m.logger.Errorf("Failed to write %s file, path: %s, error: %v", kind, path, err)
		return errors.NewIOError(fmt.Sprintf("failed to write %s file", kind), err).WithContext("path", path)
	}

	m.logger.Infof("%s file written, value: %d, path: %s", kind, n, path)
	return nil
}

// ReadPortFile reads the port published by the named server instance
func (m *ProcessFileManager) ReadPortFile(instance string) (int, error) {
	path := m.PortFilePath(instance)
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.NewIOError("failed to read port file", err).WithContext("path", path)
	}

	port, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || port <= 0 || port > 65535 {
		return 0, errors.NewValidationError("invalid port in port file", err).WithContext("path", path)
	}
	return port, nil
}

// RemoveFiles deletes the instance's PID and port files. Missing files are not an error.
func (m *ProcessFileManager) RemoveFiles(instance string) error {
	collection := errors.NewErrorCollection()
	for _, path := range []string{m.PIDFilePath(instance), m.PortFilePath(instance)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			collection.Add(errors.NewIOError("failed to remove process file", err).WithContext("path", path))
		}
	}
	return collection.ToError()
}

func (m *ProcessFileManager) runDirectory() string {
	dir := m.config.BaseDirectory
	if dir == "" {
		if m.config.ServiceContext == SystemService {
			dir = systemRunDirectory()
		} else {
			dir = userRunDirectory()
		}
	}
	if m.config.UseSubdirectory {
		dir = filepath.Join(dir, m.config.AppName)
	}
	return dir
}

func (m *ProcessFileManager) configBaseDirectory() string {
	if m.config.ServiceContext == SystemService {
		switch runtime.GOOS {
		case "windows":
			if programData := os.Getenv("PROGRAMDATA"); programData != "" {
				return programData
			}
			return "C:\\ProgramData"
		case "darwin":
			return "/Library/Application Support"
		default:
			return "/etc"
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return os.TempDir()
}

func systemRunDirectory() string {
	switch runtime.GOOS {
	case "windows":
		if programData := os.Getenv("PROGRAMDATA"); programData != "" {
			return programData
		}
		return "C:\\ProgramData"
	case "darwin":
		return "/var/run"
	default:
		// Modern standard is /run, with fallback to /var/run
		if _, err := os.Stat("/run"); err == nil {
			return "/run"
		}
		return "/var/run"
	}
}

func userRunDirectory() string {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return localAppData
		}
		return os.TempDir()
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return os.TempDir()
		}
		return filepath.Join(homeDir, "Library", "Application Support")
	default:
		if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
			return runtimeDir
		}
		return os.TempDir()
	}
}
