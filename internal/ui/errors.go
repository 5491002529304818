package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ptx/internal/config"
	"ptx/internal/report"
)

// ErrorViewer displays failing test cases from a finished report in an
// interactive TUI
type ErrorViewer struct {
	config *config.Config
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config) *ErrorViewer {
	return &ErrorViewer{config: cfg}
}

// View displays failing test cases in an interactive TUI. Resolved marks are
// session-local; the report itself is never rewritten.
func (ev *ErrorViewer) View(cases []report.Case) error {
	if len(cases) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	resolved := make(map[int]bool)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		id := cases[index].ID()
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, id)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, id)
	}

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, getListItemText(index), "")
	}

	for i := range cases {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnresolved := func() int {
		count := 0
		for i := range cases {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Test Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(cases), countUnresolved()))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(cases) {
			c := cases[index]
			statsView.SetText(ev.formatCaseStats(c, index+1))
			detailsView.SetText(ev.formatCaseDetails(c))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(cases) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatCaseStats renders the header line above the details pane
func (ev *ErrorViewer) formatCaseStats(c report.Case, position int) string {
	detail := c.Failure
	label := "failure"
	if detail == nil {
		detail = c.Error
		label = "error"
	}
	typeName := ""
	if detail != nil {
		typeName = detail.Type
	}
	return fmt.Sprintf(" [yellow]#%d[white]  %s\n [gray]%s: %s  time: %.3fs[white]",
		position, c.ID(), label, typeName, c.Time)
}

// formatCaseDetails formats one failing case for the details pane using
// tview color tags
func (ev *ErrorViewer) formatCaseDetails(c report.Case) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", c.ID())

	detail := c.Failure
	if detail == nil {
		detail = c.Error
	}
	if detail != nil {
		if detail.Message != "" {
			fmt.Fprintf(&b, "[yellow]Message:[white] %s\n\n", tview.Escape(detail.Message))
		}
		if text := strings.TrimSpace(detail.Text); text != "" {
			fmt.Fprintf(&b, "[cyan]Traceback:[white]\n%s\n", tview.Escape(text))
		}
	}

	if out := strings.TrimSpace(c.SystemOut); out != "" {
		fmt.Fprintf(&b, "\n[cyan]Captured stdout:[white]\n%s\n", tview.Escape(out))
	}
	if errOut := strings.TrimSpace(c.SystemErr); errOut != "" {
		fmt.Fprintf(&b, "\n[cyan]Captured stderr:[white]\n%s\n", tview.Escape(errOut))
	}

	return b.String()
}
