package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a schedule import file. It seeds
// one contract year; the contract and year are created when missing.
type ImportSchema struct {
	Contract string          `json:"contract" yaml:"contract"`
	Year     int             `json:"year" yaml:"year"`
	Projects []ProjectImport `json:"projects" yaml:"projects"`
}

// ScheduleImport is a bar's placement. Months are 0-based. Either
// duration_weeks or the legacy duration (months) plus week_offset may be given.
type ScheduleImport struct {
	StartMonth      int  `json:"start_month" yaml:"start_month"`
	StartWeekOffset int  `json:"start_week_offset,omitempty" yaml:"start_week_offset,omitempty"`
	DurationWeeks   *int `json:"duration_weeks,omitempty" yaml:"duration_weeks,omitempty"`
	Duration        *int `json:"duration,omitempty" yaml:"duration,omitempty"`
	WeekOffset      *int `json:"week_offset,omitempty" yaml:"week_offset,omitempty"`
}

// ProjectImport defines one project row in the import file.
type ProjectImport struct {
	Name           string `json:"name" yaml:"name"`
	ScheduleImport `yaml:",inline"`
	Color          string        `json:"color,omitempty" yaml:"color,omitempty"`
	Progress       int           `json:"progress,omitempty" yaml:"progress,omitempty"`
	ShowProgress   bool          `json:"show_progress,omitempty" yaml:"show_progress,omitempty"`
	DriveLink      string        `json:"google_drive_link,omitempty" yaml:"google_drive_link,omitempty"`
	Stages         []StageImport `json:"stages,omitempty" yaml:"stages,omitempty"`
}

// StageImport defines a stage of a project in the import file.
type StageImport struct {
	Name           string `json:"name" yaml:"name"`
	ScheduleImport `yaml:",inline"`
}

// LoadImportSchema reads and parses an import file. Files ending in .yaml or
// .yml are read as YAML, everything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, filepath.Ext(path))
}

// ParseImportSchema decodes data according to the file extension ext.
func ParseImportSchema(data []byte, ext string) (*ImportSchema, error) {
	var schema ImportSchema
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
