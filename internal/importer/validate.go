package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Contract == "" {
		errs = append(errs, fmt.Errorf("contract is required"))
	}
	if schema.Year < domain.MinYear || schema.Year > domain.MaxYear {
		errs = append(errs, fmt.Errorf("year: %d out of range %d-%d", schema.Year, domain.MinYear, domain.MaxYear))
	}
	if len(schema.Projects) == 0 {
		errs = append(errs, fmt.Errorf("projects: at least one project is required"))
	}

	for i := range schema.Projects {
		errs = append(errs, validateProject(fmt.Sprintf("projects[%d]", i), &schema.Projects[i])...)
	}
	return errs
}

func validateProject(prefix string, p *ProjectImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	errs = append(errs, validateSchedule(prefix, &p.ScheduleImport)...)
	if p.Progress < 0 || p.Progress > 100 {
		errs = append(errs, fmt.Errorf("%s.progress: %d out of range 0-100", prefix, p.Progress))
	}
	if p.Color != "" {
		if err := domain.ValidateColor("#" + strings.TrimPrefix(p.Color, "#")); err != nil {
			errs = append(errs, fmt.Errorf("%s.color: %w", prefix, err))
		}
	}
	for j := range p.Stages {
		sp := fmt.Sprintf("%s.stages[%d]", prefix, j)
		if p.Stages[j].Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", sp))
		}
		errs = append(errs, validateSchedule(sp, &p.Stages[j].ScheduleImport)...)
	}
	return errs
}

func validateSchedule(prefix string, s *ScheduleImport) []error {
	var errs []error

	if s.DurationWeeks != nil && (s.Duration != nil || s.WeekOffset != nil) {
		errs = append(errs, fmt.Errorf("%s: duration_weeks and duration/week_offset are mutually exclusive", prefix))
	}
	if s.Duration != nil && *s.Duration < 0 {
		errs = append(errs, fmt.Errorf("%s.duration: must not be negative", prefix))
	}
	if s.WeekOffset != nil && (*s.WeekOffset < 0 || *s.WeekOffset >= domain.WeeksPerMonth) {
		errs = append(errs, fmt.Errorf("%s.week_offset: %d out of range 0-%d", prefix, *s.WeekOffset, domain.WeeksPerMonth-1))
	}

	if err := s.schedule().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
	}
	return errs
}

// schedule resolves the import fields into a week-granular schedule. Legacy
// rows span duration whole months plus week_offset weeks.
func (s *ScheduleImport) schedule() domain.Schedule {
	dw := domain.WeeksPerMonth
	switch {
	case s.DurationWeeks != nil:
		dw = *s.DurationWeeks
	case s.Duration != nil || s.WeekOffset != nil:
		dw = 0
		if s.Duration != nil {
			dw = *s.Duration * domain.WeeksPerMonth
		}
		if s.WeekOffset != nil {
			dw += *s.WeekOffset
		}
	}
	return domain.Schedule{
		StartMonth:      s.StartMonth,
		StartWeekOffset: s.StartWeekOffset,
		DurationWeeks:   dw,
	}
}
