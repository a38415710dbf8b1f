package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddListDelete(t *testing.T) {
	r := setupRepos(t)
	year := r.seedYear(t)
	ctx := context.Background()
	p := r.seedProjects(t, year, "Bloc A")[0]
	obs := &recordingObserver{}
	svc := NewCommentService(r.comments, r.projects, obs)

	c, err := svc.Add(ctx, p.ID, " Ana ", " Avizul a sosit ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.AuthorName)
	assert.Equal(t, "Avizul a sosit", c.Content)
	assert.Equal(t, "add-comment", obs.last().Name)
	assert.Equal(t, p.ID, obs.last().Fields["project_id"])

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.Equal(t, "delete-comment", obs.last().Name)
	assert.True(t, obs.last().Success)
	list, err = svc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCommentService_AddValidates(t *testing.T) {
	r := setupRepos(t)
	year := r.seedYear(t)
	ctx := context.Background()
	p := r.seedProjects(t, year, "Bloc A")[0]
	svc := NewCommentService(r.comments, r.projects)

	_, err := svc.Add(ctx, p.ID, "Ana", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = svc.Add(ctx, p.ID, "Ana", strings.Repeat("x", domain.MaxCommentLength+1))
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = svc.Add(ctx, "missing", "Ana", "text")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
