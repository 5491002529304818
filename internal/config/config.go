package config

import (
	"os"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Report settings
	ReportFile string
	Encoding   string
	SuiteName  string

	// Execution settings
	Workers      int
	Command      []string // command executed once per test id
	SkipExitCode int

	// Output settings
	Verbosity int

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ReportFile   string
	Encoding     string
	SuiteName    string
	Workers      int
	SkipExitCode int
	Verbosity    int
	TestsFile    string
	WorkerID     int
}

// New creates a new Config with defaults, honoring env-var overrides for the
// report path and encoding
func New() *Config {
	cfg := &Config{
		ReportFile:   DefaultReportFile,
		Encoding:     DefaultEncoding,
		SuiteName:    DefaultSuiteName,
		Workers:      DefaultWorkers,
		SkipExitCode: DefaultSkipExitCode,
	}
	if v := os.Getenv(EnvReportFile); v != "" {
		cfg.ReportFile = v
	}
	if v := os.Getenv(EnvEncoding); v != "" {
		cfg.Encoding = v
	}
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.ReportFile != "" {
		cfg.ReportFile = flags.ReportFile
	}
	if flags.Encoding != "" {
		cfg.Encoding = flags.Encoding
	}
	if flags.SuiteName != "" {
		cfg.SuiteName = flags.SuiteName
	}
	if flags.Workers > 0 {
		cfg.Workers = flags.Workers
	}
	if flags.SkipExitCode > 0 {
		cfg.SkipExitCode = flags.SkipExitCode
	}
	cfg.Verbosity = flags.Verbosity

	return cfg
}

// GetReportPath resolves the report destination to an absolute path so the
// run and faills commands always read/write the same file regardless of cwd
func (c *Config) GetReportPath() string {
	if abs, err := filepath.Abs(c.ReportFile); err == nil {
		return abs
	}
	return c.ReportFile
}
