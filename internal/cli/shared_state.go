package cli

import "github.com/alexanderramin/ganttplan/internal/domain"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Selected contract year, set by the pickers.
	Contract *domain.Contract
	Year     *domain.Year

	// Terminal dimensions
	Width  int
	Height int
}

// SetContract selects a contract and forgets the year.
func (s *SharedState) SetContract(c *domain.Contract) {
	s.Contract = c
	s.Year = nil
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

// headerLines is the number of screen lines above a view's content.
const headerLines = 2
