package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_AddAndListScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Reports.Add(ctx, f.alice, f.project.ID, "Walls primed")
	require.NoError(t, err)
	_, err = f.svc.Reports.Add(ctx, f.bob, f.project.ID, "Bought brushes")
	require.NoError(t, err)

	mine, err := f.svc.Reports.List(ctx, f.project.ID, f.alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Walls primed", mine[0].Content)
	assert.Equal(t, "alice", mine[0].AuthorName)

	all, err := f.svc.Reports.List(ctx, f.project.ID, f.admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Walls primed", all[0].Content)
	assert.Equal(t, "Bought brushes", all[1].Content)
}

func TestReportService_AddValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Reports.Add(ctx, f.alice, f.project.ID, " \n ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Reports.Add(ctx, f.alice, f.project.ID, strings.Repeat("x", maxReportLen+1))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Reports.Add(ctx, f.alice, f.project.ID+9, "ok")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := f.svc.Reports.List(ctx, f.project.ID, f.admin)
	require.NoError(t, err)
	assert.Empty(t, all)
}
