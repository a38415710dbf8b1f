package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
)

// SQLContractRepo implements ContractRepo over any DBTX.
type SQLContractRepo struct {
	db db.DBTX
}

func NewSQLContractRepo(conn db.DBTX) *SQLContractRepo {
	return &SQLContractRepo{db: conn}
}

const contractColumns = `id, name, created_at, updated_at`

func (r *SQLContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contracts (`+contractColumns+`) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return nil
}

func (r *SQLContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)
	c, err := scanContract(row)
	if err != nil {
		return nil, notFound(err, "contract", id)
	}
	return c, nil
}

func (r *SQLContractRepo) List(ctx context.Context) ([]*domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+contractColumns+` FROM contracts ORDER BY name, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract row: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}
	return contracts, nil
}

func (r *SQLContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET name = ?, updated_at = ? WHERE id = ?`,
		c.Name, formatTime(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}
	return requireAffected(res, "contract", c.ID)
}

func (r *SQLContractRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}
	return requireAffected(res, "contract", id)
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	var c domain.Contract
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
