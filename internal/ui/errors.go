package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"vmtest/internal/domain"
)

// maxTraceLines limits the stack frames shown in the details pane
const maxTraceLines = 10

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct{}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer() *ErrorViewer {
	return &ErrorViewer{}
}

// View browses failures: a list on the left, details on the right.
// R toggles a failure as resolved for the lifetime of the viewer.
func (ev *ErrorViewer) View(failures []domain.TestFailure) error {
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := range failures {
		list.AddItem(listItemText(failures[i], i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(detailsView, 0, 1, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(failures))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(failures) {
			return
		}
		statsView.SetText(formatFailureStats(failures[index], index+1))
		detailsView.SetText(formatFailureDetails(failures[index]))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'r', 'R':
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					failures[index].Resolved = !failures[index].Resolved
					list.SetItemText(index, listItemText(failures[index], index), "")
					updateHeader()
				}
				return nil
			case 'q':
				app.Stop()
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

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func headerText(failures []domain.TestFailure) string {
	unresolved := 0
	for _, f := range failures {
		if !f.Resolved {
			unresolved++
		}
	}
	return fmt.Sprintf(" Test Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, q quit ", len(failures), unresolved)
}

func listItemText(failure domain.TestFailure, index int) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Test %d", index+1)
	}
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureDetails formats a failure using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✘ Test: %s[white]\n\n", tview.Escape(failure.TestName))
	fmt.Fprintf(&b, "[cyan]File: %s[white]\n", tview.Escape(failure.FilePath))
	if failure.File != "" && failure.Line > 0 {
		fmt.Fprintf(&b, "[yellow]Location: %s:%d:%d[white]\n", tview.Escape(failure.File), failure.Line, failure.Column)
	}
	b.WriteString("\n")

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	if len(failure.StackTrace) > 0 {
		b.WriteString("[yellow]Stack Trace:[white]\n")
		for i, frame := range failure.StackTrace {
			if i == maxTraceLines {
				fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", len(failure.StackTrace)-maxTraceLines)
				break
			}
			fmt.Fprintf(&b, "  %s\n", tview.Escape(frame))
		}
	}

	return b.String()
}

// formatFailureStats formats the one-line header above the details
func formatFailureStats(failure domain.TestFailure, number int) string {
	path := failure.FilePath
	if path == "" {
		path = "Unknown path"
	}
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Test %d", number)
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white] :: [yellow]%s[white]\n", tview.Escape(path), tview.Escape(name))
}
