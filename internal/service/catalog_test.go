package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cineexplorer/internal/repository"
	"github.com/user/cineexplorer/internal/utils"
)

func newCatalog(t *testing.T) (*CatalogService, *repository.Repositories) {
	t.Helper()
	db := newTestDB(t)
	seedCatalog(t, db)
	repos := repository.NewRepositories(db)
	return NewCatalogService(repos, NewEnrichService(repos.Credit)), repos
}

func TestMovieDetailFallsBackToRelational(t *testing.T) {
	catalog, _ := newCatalog(t)

	// 聚合存储为空：详情由关系模型现场拼装
	doc, err := catalog.MovieDetail(context.Background(), "m1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Alpha", doc.Title)
	assert.Equal(t, []string{"Hero", "Villain"}, doc.Cast[0].Characters)
}

func TestMovieDetailFromDocumentStore(t *testing.T) {
	catalog, repos := newCatalog(t)
	ctx := context.Background()

	builder := NewBuilderService(repos, 500, 1)
	_, err := builder.Rebuild(ctx, nil)
	require.NoError(t, err)

	doc, err := catalog.MovieDetail(ctx, "m5")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Epsilon", doc.Title)
	assert.Equal(t, []string{"Queen"}, doc.Cast[0].Characters)
}

func TestMovieDetailUnknownMovie(t *testing.T) {
	catalog, _ := newCatalog(t)

	doc, err := catalog.MovieDetail(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestSimilarMovies(t *testing.T) {
	catalog, _ := newCatalog(t)

	// m1 是 Drama+Thriller：相似片按共同类型、评分降序，排除自身
	movies, err := catalog.SimilarMovies(context.Background(), "m1", 10)
	require.NoError(t, err)
	require.NotEmpty(t, movies)
	assert.Equal(t, "Epsilon", movies[0].PrimaryTitle)
	for _, m := range movies {
		assert.NotEqual(t, "m1", m.Mid)
	}
}

func TestStatsOverview(t *testing.T) {
	utils.InitCache()
	catalog, _ := newCatalog(t)

	overview, err := catalog.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), overview.Global.MoviesCount)
	assert.Equal(t, int64(5), overview.Global.PersonsCount)
	assert.Equal(t, int64(0), overview.Documents)

	// 第二次读取命中缓存，返回同一份快照
	again, err := catalog.Stats(context.Background())
	require.NoError(t, err)
	assert.Same(t, overview, again)
}
