package service

import (
	"context"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"github.com/google/uuid"
)

type yearService struct {
	years     repository.YearRepo
	contracts repository.ContractRepo
	observer  UseCaseObserver
}

func NewYearService(years repository.YearRepo, contracts repository.ContractRepo, observers ...UseCaseObserver) YearService {
	return &yearService{years: years, contracts: contracts, observer: useCaseObserverOrNoop(observers)}
}

func (s *yearService) Create(ctx context.Context, contractID string, value int) (_ *domain.Year, err error) {
	defer observe(ctx, s.observer, "create-year", map[string]any{"contract_id": contractID, "year": value})(&err)

	if _, err := s.contracts.GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	y := &domain.Year{
		ID:         uuid.New().String(),
		ContractID: contractID,
		Value:      value,
		CreatedAt:  nowUTC(),
	}
	if err := y.Validate(); err != nil {
		return nil, err
	}
	if err := s.years.Create(ctx, y); err != nil {
		return nil, err
	}
	return y, nil
}

func (s *yearService) GetByID(ctx context.Context, id string) (*domain.Year, error) {
	return s.years.GetByID(ctx, id)
}

func (s *yearService) Find(ctx context.Context, contractID string, value int) (*domain.Year, error) {
	return s.years.GetByValue(ctx, contractID, value)
}

func (s *yearService) ListByContract(ctx context.Context, contractID string) ([]*domain.Year, error) {
	return s.years.ListByContract(ctx, contractID)
}

func (s *yearService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-year", map[string]any{"year_id": id})(&err)
	return s.years.Delete(ctx, id)
}
