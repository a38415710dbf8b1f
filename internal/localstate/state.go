// Package localstate persists the small amount of per-user UI state that
// survives between runs: whether the user has logged in and the chosen theme.
package localstate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"gopkg.in/yaml.v3"
)

type State struct {
	Authenticated bool            `yaml:"authenticated"`
	Theme         domain.ThemeKey `yaml:"theme"`
}

// File is a State stored as YAML at Path.
type File struct {
	Path string
}

// Load returns the stored state. A missing file yields the defaults; an
// unknown theme key falls back to the default theme.
func (f File) Load() (State, error) {
	st := State{Theme: domain.DefaultTheme}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("reading state file: %w", err)
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return State{Theme: domain.DefaultTheme}, fmt.Errorf("parsing state file: %w", err)
	}
	theme, err := domain.ParseTheme(string(st.Theme))
	if err != nil {
		theme = domain.DefaultTheme
	}
	st.Theme = theme
	return st, nil
}

// Save writes the state, creating the parent directory when needed.
func (f File) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// Update loads the state, applies fn and saves the result.
func (f File) Update(fn func(*State)) (State, error) {
	st, err := f.Load()
	if err != nil {
		return st, err
	}
	fn(&st)
	return st, f.Save(st)
}
