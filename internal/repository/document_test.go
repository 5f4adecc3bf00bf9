package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cineexplorer/internal/model"
)

func TestDocumentRebuildLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	assert.False(t, repo.Available(ctx))

	rebuild, err := repo.BeginRebuild(ctx)
	require.NoError(t, err)
	docs := []model.MovieDocument{
		{ID: "m1", Title: "Alpha", Genres: []string{"Drama"}},
		{ID: "m2", Title: "Beta", Genres: []string{}},
	}
	require.NoError(t, rebuild.WriteBatch(ctx, docs))
	assert.Equal(t, int64(2), rebuild.Written())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.True(t, repo.Available(ctx))

	doc, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Alpha", doc.Title)
	assert.Equal(t, []string{"Drama"}, doc.Genres)

	missing, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBeginRebuildDropsPreviousContent(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	first, err := repo.BeginRebuild(ctx)
	require.NoError(t, err)
	require.NoError(t, first.WriteBatch(ctx, []model.MovieDocument{{ID: "old", Title: "Old"}}))

	// 新一轮重建从空表开始
	second, err := repo.BeginRebuild(ctx)
	require.NoError(t, err)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, second.WriteBatch(ctx, []model.MovieDocument{{ID: "new", Title: "New"}}))
	doc, err := repo.FindByID(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestWriteBatchEmptyIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	rebuild, err := repo.BeginRebuild(ctx)
	require.NoError(t, err)
	require.NoError(t, rebuild.WriteBatch(ctx, nil))
	assert.Equal(t, int64(0), rebuild.Written())
}

func TestScanInBatchesOrderedByMid(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	rebuild, err := repo.BeginRebuild(ctx)
	require.NoError(t, err)
	require.NoError(t, rebuild.WriteBatch(ctx, []model.MovieDocument{
		{ID: "m3", Title: "Gamma"},
		{ID: "m1", Title: "Alpha"},
		{ID: "m2", Title: "Beta"},
	}))

	var order []string
	err = repo.ScanInBatches(ctx, 2, func(docs []model.MovieDocument) error {
		for _, d := range docs {
			order = append(order, d.ID)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m3"}, order)
}

func TestRawByIDReturnsStoredPayload(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	rebuild, err := repo.BeginRebuild(ctx)
	require.NoError(t, err)
	require.NoError(t, rebuild.WriteBatch(ctx, []model.MovieDocument{{ID: "m1", Title: "Alpha"}}))

	raw, err := repo.RawByID(ctx, "m1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"title":"Alpha"`)
}
