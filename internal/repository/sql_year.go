package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
)

// SQLYearRepo implements YearRepo over any DBTX.
type SQLYearRepo struct {
	db db.DBTX
}

func NewSQLYearRepo(conn db.DBTX) *SQLYearRepo {
	return &SQLYearRepo{db: conn}
}

const yearColumns = `id, contract_id, value, created_at`

func (r *SQLYearRepo) Create(ctx context.Context, y *domain.Year) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO years (`+yearColumns+`) VALUES (?, ?, ?, ?)`,
		y.ID, y.ContractID, y.Value, formatTime(y.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting year: %w", err)
	}
	return nil
}

func (r *SQLYearRepo) GetByID(ctx context.Context, id string) (*domain.Year, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+yearColumns+` FROM years WHERE id = ?`, id)
	y, err := scanYear(row)
	if err != nil {
		return nil, notFound(err, "year", id)
	}
	return y, nil
}

func (r *SQLYearRepo) GetByValue(ctx context.Context, contractID string, value int) (*domain.Year, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+yearColumns+` FROM years WHERE contract_id = ? AND value = ?`, contractID, value)
	y, err := scanYear(row)
	if err != nil {
		return nil, notFound(err, "year", strconv.Itoa(value))
	}
	return y, nil
}

func (r *SQLYearRepo) ListByContract(ctx context.Context, contractID string) ([]*domain.Year, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+yearColumns+` FROM years WHERE contract_id = ? ORDER BY value`, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing years: %w", err)
	}
	defer rows.Close()

	var years []*domain.Year
	for rows.Next() {
		y, err := scanYear(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning year row: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating years: %w", err)
	}
	return years, nil
}

func (r *SQLYearRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM years WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting year: %w", err)
	}
	return requireAffected(res, "year", id)
}

func scanYear(row rowScanner) (*domain.Year, error) {
	var y domain.Year
	var createdAt string
	if err := row.Scan(&y.ID, &y.ContractID, &y.Value, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if y.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &y, nil
}
