package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractAndYearServices(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	contracts := NewContractService(r.contracts)
	years := NewYearService(r.years, r.contracts)

	c, err := contracts.Create(ctx, "  Reabilitare ")
	require.NoError(t, err)
	assert.Equal(t, "Reabilitare", c.Name)

	_, err = contracts.Create(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	require.NoError(t, contracts.Rename(ctx, c.ID, "Reabilitare termica"))
	got, err := contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reabilitare termica", got.Name)

	y, err := years.Create(ctx, c.ID, 2025)
	require.NoError(t, err)
	found, err := years.Find(ctx, c.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, y.ID, found.ID)

	_, err = years.Create(ctx, c.ID, 1800)
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = years.Create(ctx, "missing", 2025)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, contracts.Delete(ctx, c.ID))
	list, err := years.ListByContract(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "years cascade with the contract")
}

func TestYearService_ObservesWrites(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	c, err := NewContractService(r.contracts).Create(ctx, "Reabilitare")
	require.NoError(t, err)
	obs := &recordingObserver{}
	years := NewYearService(r.years, r.contracts, obs)

	y, err := years.Create(ctx, c.ID, 2026)
	require.NoError(t, err)
	ev := obs.last()
	assert.Equal(t, "create-year", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2026, ev.Fields["year"])

	_, err = years.Create(ctx, c.ID, 2026)
	require.Error(t, err, "one row per contract and year")
	assert.False(t, obs.last().Success)

	require.NoError(t, years.Delete(ctx, y.ID))
	assert.Equal(t, "delete-year", obs.last().Name)
	assert.Equal(t, y.ID, obs.last().Fields["year_id"])
}
