package commands

import (
	"github.com/spf13/cobra"

	"ptx/internal/config"
	"ptx/internal/report"
	"ptx/internal/ui"
)

// FaillsCommand handles the faills command
type FaillsCommand struct {
	config *config.Config
	viewer *ui.ErrorViewer
}

// NewFaillsCommand creates a new FaillsCommand
func NewFaillsCommand(cfg *config.Config, viewer *ui.ErrorViewer) *FaillsCommand {
	return &FaillsCommand{config: cfg, viewer: viewer}
}

// Execute runs the command
func (fc *FaillsCommand) Execute(cmd *cobra.Command, args []string) error {
	suite, err := report.Load(fc.config.GetReportPath())
	if err != nil {
		return err
	}

	var failing []report.Case
	for _, c := range suite.Cases {
		if c.Failure != nil || c.Error != nil {
			failing = append(failing, c)
		}
	}
	return fc.viewer.View(failing)
}
