package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
)

// SQLProjectRepo implements ProjectRepo over any DBTX. Every schedule write
// also refreshes the legacy duration (months) and week_offset columns.
type SQLProjectRepo struct {
	db db.DBTX
}

func NewSQLProjectRepo(conn db.DBTX) *SQLProjectRepo {
	return &SQLProjectRepo{db: conn}
}

const projectColumns = `id, contract_id, year_id, name, start_month, start_week_offset, duration_weeks,
	color, progress, show_progress, sort_order, google_drive_link, created_at, updated_at`

func (r *SQLProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, contract_id, year_id, name, start_month, start_week_offset, duration_weeks,
		duration, week_offset, color, progress, show_progress, sort_order, google_drive_link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ContractID,
		p.YearID,
		p.Name,
		p.Schedule.StartMonth,
		p.Schedule.StartWeekOffset,
		p.Schedule.DurationWeeks,
		p.Schedule.LegacyDurationMonths(),
		p.Schedule.LegacyWeekOffset(),
		p.Color,
		p.Progress,
		boolToInt(p.ShowProgress),
		p.SortOrder,
		p.DriveLink,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return p, nil
}

func (r *SQLProjectRepo) ListByYear(ctx context.Context, yearID string) ([]*domain.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE year_id = ? ORDER BY sort_order, created_at`, yearID)
}

func (r *SQLProjectRepo) ListAll(ctx context.Context) ([]*domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY year_id, sort_order`)
}

func (r *SQLProjectRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// MaxSortOrder returns the highest sort order in the year, or -1 when the
// year has no projects.
func (r *SQLProjectRepo) MaxSortOrder(ctx context.Context, yearID string) (int, error) {
	var maxOrder sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM projects WHERE year_id = ?`, yearID).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("reading max sort order: %w", err)
	}
	if !maxOrder.Valid {
		return -1, nil
	}
	return int(maxOrder.Int64), nil
}

func (r *SQLProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, start_month = ?, start_week_offset = ?, duration_weeks = ?,
		duration = ?, week_offset = ?, color = ?, progress = ?, show_progress = ?, sort_order = ?,
		google_drive_link = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Schedule.StartMonth,
		p.Schedule.StartWeekOffset,
		p.Schedule.DurationWeeks,
		p.Schedule.LegacyDurationMonths(),
		p.Schedule.LegacyWeekOffset(),
		p.Color,
		p.Progress,
		boolToInt(p.ShowProgress),
		p.SortOrder,
		p.DriveLink,
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project", p.ID)
}

func (r *SQLProjectRepo) UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error {
	query := `UPDATE projects SET start_month = ?, start_week_offset = ?, duration_weeks = ?,
		duration = ?, week_offset = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.StartMonth, s.StartWeekOffset, s.DurationWeeks,
		s.LegacyDurationMonths(), s.LegacyWeekOffset(),
		nowUTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating project schedule: %w", err)
	}
	return requireAffected(res, "project", id)
}

func (r *SQLProjectRepo) UpdateSortOrder(ctx context.Context, id string, sortOrder int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET sort_order = ?, updated_at = ? WHERE id = ?`, sortOrder, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating project sort order: %w", err)
	}
	return requireAffected(res, "project", id)
}

func (r *SQLProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project", id)
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var showProgress int
	var createdAt, updatedAt string
	err := row.Scan(
		&p.ID, &p.ContractID, &p.YearID, &p.Name,
		&p.Schedule.StartMonth, &p.Schedule.StartWeekOffset, &p.Schedule.DurationWeeks,
		&p.Color, &p.Progress, &showProgress, &p.SortOrder, &p.DriveLink,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ShowProgress = intToBool(showProgress)
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
