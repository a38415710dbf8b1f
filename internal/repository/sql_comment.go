package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
)

// SQLCommentRepo implements CommentRepo over any DBTX.
type SQLCommentRepo struct {
	db db.DBTX
}

func NewSQLCommentRepo(conn db.DBTX) *SQLCommentRepo {
	return &SQLCommentRepo{db: conn}
}

const commentColumns = `id, project_id, author_name, content, created_at`

func (r *SQLCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (`+commentColumns+`) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.ProjectID, c.AuthorName, c.Content, formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

func (r *SQLCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, id)
	c, err := scanComment(row)
	if err != nil {
		return nil, notFound(err, "comment", id)
	}
	return c, nil
}

// ListByProject returns the project's comments, newest first.
func (r *SQLCommentRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE project_id = ? ORDER BY created_at DESC, id DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}

func (r *SQLCommentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return requireAffected(res, "comment", id)
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	var createdAt string
	if err := row.Scan(&c.ID, &c.ProjectID, &c.AuthorName, &c.Content, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}
