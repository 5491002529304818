package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"ptx/internal/config"
	"ptx/internal/domain"
)

// Formatter formats and displays run output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintSummary displays the run's aggregate statistics
func (f *Formatter) PrintSummary(c domain.Counters, duration time.Duration, workers int) {
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Total Tests")
	color.White("%-27d │\n", c.Total())
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed")
	color.Green("%-27d │\n", c.Passes)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failures")
	color.Red("%-27d │\n", c.Failures)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Errors")
	color.Red("%-27d │\n", c.Errors)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Skipped")
	color.Yellow("%-27d │\n", c.Skipped)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	color.White("%-27s │\n", fmt.Sprintf("%.2fs", duration.Seconds()))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", workers)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Print("\n")
	if c.Failures+c.Errors == 0 {
		color.Green("✓ Report written to %s", f.config.GetReportPath())
	} else {
		color.Red("✗ %d failing test(s) — report written to %s", c.Failures+c.Errors, f.config.GetReportPath())
	}
}
