package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewLogin ViewID = iota
	ViewContractPicker
	ViewYearPicker
	ViewGantt
	ViewComments
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that sometimes need every key,
// for example while a search box has focus.
type inputCapturer interface {
	capturesInput() bool
}

// savingReporter is implemented by views with persistence calls in flight.
type savingReporter interface {
	saving() bool
}
