package repository

import (
	"context"

	"github.com/alexanderramin/ganttplan/internal/domain"
)

type ContractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	List(ctx context.Context) ([]*domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
	Delete(ctx context.Context, id string) error
}

type YearRepo interface {
	Create(ctx context.Context, y *domain.Year) error
	GetByID(ctx context.Context, id string) (*domain.Year, error)
	GetByValue(ctx context.Context, contractID string, value int) (*domain.Year, error)
	ListByContract(ctx context.Context, contractID string) ([]*domain.Year, error)
	Delete(ctx context.Context, id string) error
}

// ProjectRepo persists projects without their stages; StageRepo loads those.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByYear(ctx context.Context, yearID string) ([]*domain.Project, error)
	ListAll(ctx context.Context) ([]*domain.Project, error)
	MaxSortOrder(ctx context.Context, yearID string) (int, error)
	Update(ctx context.Context, p *domain.Project) error
	UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error
	UpdateSortOrder(ctx context.Context, id string, sortOrder int) error
	Delete(ctx context.Context, id string) error
}

type StageRepo interface {
	Create(ctx context.Context, s *domain.Stage) error
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error)
	ListByYear(ctx context.Context, yearID string) ([]domain.Stage, error)
	Update(ctx context.Context, s *domain.Stage) error
	UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error
	Delete(ctx context.Context, id string) error
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepo is a small key/value table for store-wide values.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
