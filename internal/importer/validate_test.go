package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt(i int) *int { return &i }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Contract: "Lucrari Sector 3",
		Year:     2025,
		Projects: []ProjectImport{
			{Name: "Scoala 12", ScheduleImport: ScheduleImport{StartMonth: 2, DurationWeeks: ptrInt(8)}},
		},
	}
}

func errorsText(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "\n")
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validMinimalSchema()))
}

func TestValidateImportSchema_MissingTopLevel(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	text := errorsText(errs)
	assert.Contains(t, text, "contract is required")
	assert.Contains(t, text, "year")
	assert.Contains(t, text, "at least one project")
}

func TestValidateImportSchema_ProjectFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Projects = append(schema.Projects, ProjectImport{
		ScheduleImport: ScheduleImport{StartMonth: 12, StartWeekOffset: 4},
		Progress:       101,
		Color:          "blue",
		Stages:         []StageImport{{ScheduleImport: ScheduleImport{DurationWeeks: ptrInt(0)}}},
	})

	text := errorsText(ValidateImportSchema(schema))
	assert.Contains(t, text, "projects[1].name is required")
	assert.Contains(t, text, "projects[1].progress")
	assert.Contains(t, text, "projects[1].color")
	assert.Contains(t, text, "projects[1].stages[0].name is required")
	assert.Contains(t, text, "projects[1].stages[0]:")
	assert.NotContains(t, text, "projects[0]")
}

func TestValidateImportSchema_DurationPastYearEnd(t *testing.T) {
	schema := validMinimalSchema()
	schema.Projects[0].StartMonth = 11
	schema.Projects[0].DurationWeeks = ptrInt(5)
	assert.NotEmpty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_LegacyDuration(t *testing.T) {
	schema := validMinimalSchema()
	schema.Projects[0].DurationWeeks = nil
	schema.Projects[0].Duration = ptrInt(2)
	schema.Projects[0].WeekOffset = ptrInt(3)
	assert.Empty(t, ValidateImportSchema(schema))

	schema.Projects[0].WeekOffset = ptrInt(4)
	assert.Contains(t, errorsText(ValidateImportSchema(schema)), "week_offset")

	schema.Projects[0].WeekOffset = nil
	schema.Projects[0].DurationWeeks = ptrInt(4)
	assert.Contains(t, errorsText(ValidateImportSchema(schema)), "mutually exclusive")
}

func TestParseImportSchema_JSONAndYAML(t *testing.T) {
	jsonDoc := `{
		"contract": "Lucrari Sector 3",
		"year": 2025,
		"projects": [
			{"name": "Scoala 12", "start_month": 2, "start_week_offset": 1, "duration_weeks": 9,
			 "stages": [{"name": "Structura", "start_month": 2, "duration": 1}]}
		]
	}`
	yamlDoc := `
contract: Lucrari Sector 3
year: 2025
projects:
  - name: Scoala 12
    start_month: 2
    start_week_offset: 1
    duration_weeks: 9
    stages:
      - name: Structura
        start_month: 2
        duration: 1
`
	fromJSON, err := ParseImportSchema([]byte(jsonDoc), ".json")
	require.NoError(t, err)
	fromYAML, err := ParseImportSchema([]byte(yamlDoc), ".YML")
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	require.Len(t, fromJSON.Projects, 1)
	assert.Equal(t, 1, fromJSON.Projects[0].StartWeekOffset)
	assert.Equal(t, 9, *fromJSON.Projects[0].DurationWeeks)
	require.Len(t, fromJSON.Projects[0].Stages, 1)
	assert.Equal(t, 1, *fromJSON.Projects[0].Stages[0].Duration)
}

func TestParseImportSchema_Malformed(t *testing.T) {
	_, err := ParseImportSchema([]byte(`{"contract":`), ".json")
	assert.Error(t, err)
}
