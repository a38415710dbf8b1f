package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/importer"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema appends the file's projects to the contract year, creating
// the contract and year when missing. Everything happens in one transaction.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"contract": schema.Contract, "year": schema.Year}
	defer observe(ctx, s.observer, "import-schedule", fields)(&err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted := importer.Convert(schema)

	result = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		contract, err := findOrCreateContract(ctx, repository.NewSQLContractRepo(tx), converted.Contract)
		if err != nil {
			return err
		}
		year, err := findOrCreateYear(ctx, repository.NewSQLYearRepo(tx), contract.ID, converted.Year)
		if err != nil {
			return err
		}
		result.ContractID = contract.ID
		result.YearID = year.ID

		txProjects := repository.NewSQLProjectRepo(tx)
		txStages := repository.NewSQLStageRepo(tx)
		last, err := txProjects.MaxSortOrder(ctx, year.ID)
		if err != nil {
			return err
		}
		for i, p := range converted.Projects {
			p.ContractID = contract.ID
			p.YearID = year.ID
			p.SortOrder = last + 1 + i
			if err := p.Validate(); err != nil {
				return fmt.Errorf("project %q: %w", p.Name, err)
			}
			if err := txProjects.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", p.Name, err)
			}
			if err := createStages(ctx, txStages, p); err != nil {
				return fmt.Errorf("creating stages of %q: %w", p.Name, err)
			}
			result.ProjectCount++
			result.StageCount += len(p.Stages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["projects"] = result.ProjectCount
	return result, nil
}

func findOrCreateContract(ctx context.Context, contracts repository.ContractRepo, name string) (*domain.Contract, error) {
	all, err := contracts.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	now := nowUTC()
	c := &domain.Contract{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := contracts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func findOrCreateYear(ctx context.Context, years repository.YearRepo, contractID string, value int) (*domain.Year, error) {
	y, err := years.GetByValue(ctx, contractID, value)
	if err == nil {
		return y, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	y = &domain.Year{ID: uuid.New().String(), ContractID: contractID, Value: value, CreatedAt: nowUTC()}
	if err := years.Create(ctx, y); err != nil {
		return nil, err
	}
	return y, nil
}

func formatValidationErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = "  - " + e.Error()
	}
	return fmt.Errorf("%w: import validation failed:\n%s", domain.ErrInvalid, strings.Join(msgs, "\n"))
}
