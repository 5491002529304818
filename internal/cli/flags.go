package cli

import "ptx/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ReportFile:   f.ReportFile,
		Encoding:     f.Encoding,
		SuiteName:    f.SuiteName,
		Workers:      f.Workers,
		SkipExitCode: f.SkipExitCode,
		Verbosity:    f.Verbosity,
		TestsFile:    f.TestsFile,
		WorkerID:     f.WorkerID,
	}
}
