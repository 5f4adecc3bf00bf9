package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cineexplorer/internal/model"
	"github.com/user/cineexplorer/internal/repository"
)

func newBuilder(t *testing.T, batchSize, workers int) (*BuilderService, *repository.Repositories) {
	t.Helper()
	db := newTestDB(t)
	seedCatalog(t, db)
	repos := repository.NewRepositories(db)
	return NewBuilderService(repos, batchSize, workers), repos
}

func TestBuildDocument(t *testing.T) {
	builder, _ := newBuilder(t, 500, 1)

	doc, err := builder.BuildDocument("m1")
	require.NoError(t, err)

	assert.Equal(t, "m1", doc.ID)
	assert.Equal(t, "Alpha", doc.Title)
	assert.Equal(t, 1999, *doc.Year)
	assert.Equal(t, 120, *doc.Runtime)
	assert.Equal(t, []string{"Drama", "Thriller"}, doc.Genres)

	require.NotNil(t, doc.Rating)
	assert.Equal(t, 8.0, doc.Rating.Average)
	assert.Equal(t, 1500, doc.Rating.Votes)

	assert.Equal(t, []model.DocPerson{{PersonID: "p2", Name: "Bob Director"}}, doc.Directors)
	assert.Equal(t, []model.DocWriter{{PersonID: "p3", Name: "Carol Writer"}}, doc.Writers)
	assert.Equal(t, []model.DocTitle{{Region: "US", Title: "Alpha"}, {Region: "DE", Title: "Alpha DE"}}, doc.Titles)

	// cast 按排位；角色名子过滤只取本人的角色；人物记录缺失的条目保留但姓名为空
	assert.Equal(t, []model.DocCastMember{
		{PersonID: "p1", Ordering: 1, Name: "Alice Actor", Characters: []string{"Hero", "Villain"}},
		{PersonID: "p2", Ordering: 2, Name: "Bob Director", Characters: []string{}},
		{PersonID: "p9", Ordering: 3, Name: "", Characters: []string{}},
	}, doc.Cast)
}

func TestBuildDocumentUnratedMovie(t *testing.T) {
	builder, _ := newBuilder(t, 500, 1)

	doc, err := builder.BuildDocument("m4")
	require.NoError(t, err)

	assert.Nil(t, doc.Rating)
	assert.Nil(t, doc.Year)
	assert.Equal(t, []string{"Drama"}, doc.Genres)
	assert.Empty(t, doc.Directors)
	assert.Empty(t, doc.Writers)
	assert.Empty(t, doc.Titles)
}

func TestBuildDocumentSkipsDirectorWithoutPerson(t *testing.T) {
	builder, _ := newBuilder(t, 500, 1)

	doc, err := builder.BuildDocument("m3")
	require.NoError(t, err)

	// m3 有两条导演关联，但 p9 没有人物记录
	assert.Equal(t, []model.DocPerson{{PersonID: "p4", Name: "Dan Director"}}, doc.Directors)
}

func TestBuildDocumentUnknownMovie(t *testing.T) {
	builder, _ := newBuilder(t, 500, 1)

	_, err := builder.BuildDocument("nope")
	assert.Error(t, err)
}

func TestRebuildWritesEveryMovie(t *testing.T) {
	builder, repos := newBuilder(t, 2, 1)
	ctx := context.Background()

	var progress []Progress
	written, err := builder.Rebuild(ctx, func(p Progress) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), written)

	count, err := repos.Document.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	// 批大小 2、共 5 部 → 3 次进度回调，最后一次为全量
	require.Len(t, progress, 3)
	last := progress[len(progress)-1]
	assert.Equal(t, int64(5), last.Processed)
	assert.Equal(t, int64(5), last.Total)
	assert.Equal(t, 1.0, last.Fraction)

	for _, mid := range []string{"m1", "m2", "m3", "m4", "m5"} {
		doc, err := repos.Document.FindByID(ctx, mid)
		require.NoError(t, err)
		require.NotNil(t, doc, mid)
		assert.Equal(t, mid, doc.ID)
	}
}

func TestRebuildReplacesStaleDocuments(t *testing.T) {
	builder, repos := newBuilder(t, 500, 1)
	ctx := context.Background()

	// 预埋一份不再对应任何电影的旧文档
	stale, err := repos.Document.BeginRebuild(ctx)
	require.NoError(t, err)
	require.NoError(t, stale.WriteBatch(ctx, []model.MovieDocument{{ID: "zzz", Title: "Ghost"}}))

	_, err = builder.Rebuild(ctx, nil)
	require.NoError(t, err)

	doc, err := repos.Document.FindByID(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, doc)

	count, err := repos.Document.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestRebuildIsByteIdenticalAcrossRuns(t *testing.T) {
	builder, repos := newBuilder(t, 2, 1)
	ctx := context.Background()

	_, err := builder.Rebuild(ctx, nil)
	require.NoError(t, err)
	first := make(map[string][]byte)
	for _, mid := range []string{"m1", "m2", "m3", "m4", "m5"} {
		raw, err := repos.Document.RawByID(ctx, mid)
		require.NoError(t, err)
		first[mid] = raw
	}

	_, err = builder.Rebuild(ctx, nil)
	require.NoError(t, err)
	for mid, raw := range first {
		again, err := repos.Document.RawByID(ctx, mid)
		require.NoError(t, err)
		assert.Equal(t, string(raw), string(again), mid)
	}
}
