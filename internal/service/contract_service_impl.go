package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"github.com/google/uuid"
)

type contractService struct {
	contracts repository.ContractRepo
	observer  UseCaseObserver
}

func NewContractService(contracts repository.ContractRepo, observers ...UseCaseObserver) ContractService {
	return &contractService{contracts: contracts, observer: useCaseObserverOrNoop(observers)}
}

func (s *contractService) Create(ctx context.Context, name string) (c *domain.Contract, err error) {
	defer observe(ctx, s.observer, "create-contract", map[string]any{"name": name})(&err)

	now := nowUTC()
	c = &domain.Contract{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	if err = s.contracts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contractService) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	return s.contracts.GetByID(ctx, id)
}

func (s *contractService) List(ctx context.Context) ([]*domain.Contract, error) {
	return s.contracts.List(ctx)
}

func (s *contractService) Rename(ctx context.Context, id, name string) error {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = nowUTC()
	return s.contracts.Update(ctx, c)
}

// Delete removes the contract with its years, projects, stages and comments.
func (s *contractService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-contract", map[string]any{"contract_id": id})(&err)
	return s.contracts.Delete(ctx, id)
}
