package ui

import "ptx/internal/report"

// Viewer displays failing test cases in an interactive TUI
type Viewer interface {
	View(cases []report.Case) error
}
