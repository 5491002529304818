package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"ptx/internal/domain"
)

// ProgressBar creates and manages the run's progress bar
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar for count tests
func NewProgressBar(count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(domain.Counters{})),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update refreshes the bar from the current aggregate counters
func (p *ProgressBar) Update(c domain.Counters) {
	p.bar.Set(c.Total())
	p.bar.Describe(describe(c))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}

func describe(c domain.Counters) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[passed: %d", c.Passes) +
		" | " +
		color.RedString("failed: %d", c.Failures+c.Errors) +
		" | " +
		color.YellowString("skipped: %d]", c.Skipped)
}
