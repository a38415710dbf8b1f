package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/spf13/cobra"
)

// scopeFlags select one contract year.
type scopeFlags struct {
	contract string
	year     int
}

func (s *scopeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.contract, "contract", "", "Contract name or ID (defaults to the only contract)")
	cmd.Flags().IntVar(&s.year, "year", 0, "Calendar year (defaults to the current year)")
}

// resolve finds the contract and year the flags point at.
func (s *scopeFlags) resolve(ctx context.Context, app *App) (*domain.Contract, *domain.Year, error) {
	c, err := resolveContract(ctx, app, s.contract)
	if err != nil {
		return nil, nil, err
	}
	value := s.year
	if value == 0 {
		value = app.now().Year()
	}
	y, err := app.Years.Find(ctx, c.ID, value)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("year %d not found for contract %q: %w", value, c.Name, err)
	}
	if err != nil {
		return nil, nil, err
	}
	return c, y, nil
}

// resolveContract matches input against contract IDs, names (any case) and
// ID prefixes. An empty input selects the only contract when there is one.
func resolveContract(ctx context.Context, app *App, input string) (*domain.Contract, error) {
	contracts, err := app.Contracts.List(ctx)
	if err != nil {
		return nil, err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		switch len(contracts) {
		case 0:
			return nil, fmt.Errorf("no contracts yet; add one with 'ganttplan contract add'")
		case 1:
			return contracts[0], nil
		default:
			return nil, fmt.Errorf("%d contracts exist; choose one with --contract", len(contracts))
		}
	}

	for _, c := range contracts {
		if c.ID == input {
			return c, nil
		}
	}
	var matches []*domain.Contract
	for _, c := range contracts {
		if strings.EqualFold(c.Name, input) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		for _, c := range contracts {
			if strings.HasPrefix(c.ID, input) {
				matches = append(matches, c)
			}
		}
	}
	return pickOne(matches, "contract", input)
}

// resolveProject accepts a project ID directly; names, ID prefixes and
// 1-based list positions are looked up in the scoped year.
func resolveProject(ctx context.Context, app *App, scope *scopeFlags, input string) (*domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("project is required")
	}
	p, err := app.Projects.GetByID(ctx, input)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	_, y, err := scope.resolve(ctx, app)
	if err != nil {
		return nil, err
	}
	projects, err := app.Projects.ListByYear(ctx, y.ID)
	if err != nil {
		return nil, err
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(projects) {
		return &projects[n-1], nil
	}

	var matches []*domain.Project
	for i := range projects {
		if strings.EqualFold(projects[i].Name, input) {
			matches = append(matches, &projects[i])
		}
	}
	if len(matches) == 0 {
		for i := range projects {
			if strings.HasPrefix(projects[i].ID, input) {
				matches = append(matches, &projects[i])
			}
		}
	}
	return pickOne(matches, "project", input)
}

// resolveStage returns the index of a stage of p by ID, ID prefix, name or
// 1-based position.
func resolveStage(p *domain.Project, input string) (int, error) {
	input = strings.TrimSpace(input)
	for i, s := range p.Stages {
		if s.ID == input {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(p.Stages) {
		return n - 1, nil
	}
	var matches []int
	for i, s := range p.Stages {
		if strings.EqualFold(s.Name, input) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 && input != "" {
		for i, s := range p.Stages {
			if strings.HasPrefix(s.ID, input) {
				matches = append(matches, i)
			}
		}
	}
	switch len(matches) {
	case 0:
		return -1, fmt.Errorf("stage %q not found in %q: %w", input, p.Name, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return -1, fmt.Errorf("stage %q is ambiguous in %q (%d matches)", input, p.Name, len(matches))
	}
}

func pickOne[T any](matches []*T, kind, input string) (*T, error) {
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%s %q not found: %w", kind, input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%s %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
