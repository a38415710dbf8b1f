package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
)

// SQLStageRepo implements StageRepo over any DBTX.
type SQLStageRepo struct {
	db db.DBTX
}

func NewSQLStageRepo(conn db.DBTX) *SQLStageRepo {
	return &SQLStageRepo{db: conn}
}

const stageColumns = `id, project_id, name, start_month, start_week_offset, duration_weeks, position`

func (r *SQLStageRepo) Create(ctx context.Context, s *domain.Stage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stages (`+stageColumns+`, duration, week_offset) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.ProjectID, s.Name,
		s.Schedule.StartMonth, s.Schedule.StartWeekOffset, s.Schedule.DurationWeeks,
		s.Position,
		s.Schedule.LegacyDurationMonths(),
		s.Schedule.LegacyWeekOffset(),
	)
	if err != nil {
		return fmt.Errorf("inserting stage: %w", err)
	}
	return nil
}

func (r *SQLStageRepo) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+stageColumns+` FROM stages WHERE id = ?`, id)
	s, err := scanStage(row)
	if err != nil {
		return nil, notFound(err, "stage", id)
	}
	return &s, nil
}

func (r *SQLStageRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error) {
	return r.list(ctx,
		`SELECT `+stageColumns+` FROM stages WHERE project_id = ? ORDER BY position, id`, projectID)
}

// ListByYear returns the stages of every project in the year, grouped by
// project and ordered by position.
func (r *SQLStageRepo) ListByYear(ctx context.Context, yearID string) ([]domain.Stage, error) {
	return r.list(ctx,
		`SELECT s.id, s.project_id, s.name, s.start_month, s.start_week_offset, s.duration_weeks, s.position
		FROM stages s JOIN projects p ON p.id = s.project_id
		WHERE p.year_id = ?
		ORDER BY s.project_id, s.position, s.id`, yearID)
}

func (r *SQLStageRepo) list(ctx context.Context, query string, args ...any) ([]domain.Stage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()

	var stages []domain.Stage
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}
		stages = append(stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	return stages, nil
}

func (r *SQLStageRepo) Update(ctx context.Context, s *domain.Stage) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stages SET name = ?, start_month = ?, start_week_offset = ?, duration_weeks = ?, position = ?,
			duration = ?, week_offset = ?
		WHERE id = ?`,
		s.Name, s.Schedule.StartMonth, s.Schedule.StartWeekOffset, s.Schedule.DurationWeeks, s.Position,
		s.Schedule.LegacyDurationMonths(), s.Schedule.LegacyWeekOffset(),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}
	return requireAffected(res, "stage", s.ID)
}

func (r *SQLStageRepo) UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stages SET start_month = ?, start_week_offset = ?, duration_weeks = ?,
			duration = ?, week_offset = ?
		WHERE id = ?`,
		s.StartMonth, s.StartWeekOffset, s.DurationWeeks,
		s.LegacyDurationMonths(), s.LegacyWeekOffset(), id,
	)
	if err != nil {
		return fmt.Errorf("updating stage schedule: %w", err)
	}
	return requireAffected(res, "stage", id)
}

func (r *SQLStageRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting stage: %w", err)
	}
	return requireAffected(res, "stage", id)
}

func scanStage(row rowScanner) (domain.Stage, error) {
	var s domain.Stage
	err := row.Scan(&s.ID, &s.ProjectID, &s.Name,
		&s.Schedule.StartMonth, &s.Schedule.StartWeekOffset, &s.Schedule.DurationWeeks, &s.Position)
	return s, err
}
