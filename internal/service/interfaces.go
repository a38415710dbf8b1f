package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/importer"
)

var (
	// ErrWrongPassword is returned when a login password does not match.
	ErrWrongPassword = errors.New("wrong password")
	// ErrNoPassword is returned by Login before any password has been set.
	ErrNoPassword = errors.New("no password set; run 'ganttplan passwd'")
)

type ContractService interface {
	Create(ctx context.Context, name string) (*domain.Contract, error)
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	List(ctx context.Context) ([]*domain.Contract, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type YearService interface {
	Create(ctx context.Context, contractID string, value int) (*domain.Year, error)
	GetByID(ctx context.Context, id string) (*domain.Year, error)
	Find(ctx context.Context, contractID string, value int) (*domain.Year, error)
	ListByContract(ctx context.Context, contractID string) ([]*domain.Year, error)
	Delete(ctx context.Context, id string) error
}

// ProjectService owns project rows. Loaded projects carry their stages.
type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByYear(ctx context.Context, yearID string) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// UpdateWithStages updates the project and diff-saves p.Stages with it,
	// all or nothing.
	UpdateWithStages(ctx context.Context, p *domain.Project) error
	// UpdateSchedule stores a clamped schedule and returns what was stored.
	UpdateSchedule(ctx context.Context, id string, s domain.Schedule) (domain.Schedule, error)
	// Reorder rewrites sort orders so the year's projects follow ids.
	Reorder(ctx context.Context, yearID string, ids []string) error
	Delete(ctx context.Context, id string) error
}

type StageService interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error)
	// SaveAll makes the project's stages equal to stages: rows missing from
	// the list are deleted, rows without an ID are inserted, the rest updated.
	SaveAll(ctx context.Context, projectID string, stages []domain.Stage) ([]domain.Stage, error)
	UpdateSchedule(ctx context.Context, id string, s domain.Schedule) (domain.Schedule, error)
	Delete(ctx context.Context, id string) error
}

type CommentService interface {
	List(ctx context.Context, projectID string) ([]*domain.Comment, error)
	Add(ctx context.Context, projectID, author, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

// AuthService guards the editor with a single shared password.
type AuthService interface {
	HasPassword(ctx context.Context) (bool, error)
	// SetPassword sets the password; current must match when one exists.
	SetPassword(ctx context.Context, current, next string) error
	Login(ctx context.Context, password string) error
}

type MaintenanceService interface {
	// ResetSchedules puts every project (or those of yearID) back at the
	// start of the year with a fresh palette colour. It returns the count.
	ResetSchedules(ctx context.Context, yearID string, rng *rand.Rand) (int, error)
}

// ImportResult summarizes a schedule import.
type ImportResult struct {
	ContractID   string
	YearID       string
	ProjectCount int
	StageCount   int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
