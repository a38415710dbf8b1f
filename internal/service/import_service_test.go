package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt(i int) *int { return &i }

func TestImportService_CreatesContractYearAndProjects(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)

	schema := &importer.ImportSchema{
		Contract: "Lucrari Sector 3",
		Year:     2025,
		Projects: []importer.ProjectImport{
			{Name: "Scoala 12", ScheduleImport: importer.ScheduleImport{StartMonth: 2, DurationWeeks: ptrInt(8)},
				Stages: []importer.StageImport{{Name: "Structura", ScheduleImport: importer.ScheduleImport{StartMonth: 2}}}},
			{Name: "Gradinita 5", ScheduleImport: importer.ScheduleImport{StartMonth: 4, Duration: ptrInt(1), WeekOffset: ptrInt(2)}},
		},
	}

	res, err := svc.ImportSchema(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ProjectCount)
	assert.Equal(t, 1, res.StageCount)

	list, err := NewProjectService(r.projects, r.stages, r.uow).ListByYear(ctx, res.YearID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Scoala 12", "Gradinita 5"}, names(list))
	assert.Equal(t, 6, list[1].Schedule.DurationWeeks)
	require.Len(t, list[0].Stages, 1)

	// A second import appends to the same contract year.
	res2, err := svc.ImportSchema(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, res.ContractID, res2.ContractID)
	assert.Equal(t, res.YearID, res2.YearID)
	stored, err := r.projects.ListByYear(ctx, res.YearID)
	require.NoError(t, err)
	require.Len(t, stored, 4)
	assert.Equal(t, 3, stored[3].SortOrder)
}

func TestImportService_ValidationFailsWithoutWrites(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	_, err := NewImportService(r.uow).ImportSchema(ctx, &importer.ImportSchema{Contract: "X", Year: 2025,
		Projects: []importer.ProjectImport{{Name: ""}}})
	require.ErrorIs(t, err, domain.ErrInvalid)
	assert.Contains(t, err.Error(), "projects[0].name is required")

	contracts, err := r.contracts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, contracts)
}

func TestImportService_ImportFile(t *testing.T) {
	r := setupRepos(t)
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
contract: Lucrari Sector 3
year: 2026
projects:
  - name: Bloc A
    start_month: 0
    duration_weeks: 12
`), 0o644))

	res, err := NewImportService(r.uow).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ProjectCount)

	_, err = NewImportService(r.uow).ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
