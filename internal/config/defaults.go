package config

const (
	// DefaultReportFile is the default report file name in the working directory
	DefaultReportFile = "xunit.xml"
	// DefaultEncoding is the default report encoding name
	DefaultEncoding = "UTF-8"
	// DefaultSuiteName is the default testsuite name attribute
	DefaultSuiteName = "ptx"
	// DefaultWorkers is the default number of worker processes
	DefaultWorkers = 4
	// DefaultSkipExitCode is the exit code a test command uses to signal a skip
	DefaultSkipExitCode = 77
)

// Environment variables honored as defaults (from the process environment or
// a .env file).
const (
	// EnvReportFile overrides the default report path
	EnvReportFile = "PTX_XUNIT_FILE"
	// EnvEncoding overrides the default report encoding
	EnvEncoding = "PTX_XUNIT_ENCODING"
)
