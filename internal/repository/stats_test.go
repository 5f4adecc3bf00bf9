package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalStats(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := NewStatsRepository(db)

	stats, err := repo.Global()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.MoviesCount)
	assert.Equal(t, int64(2), stats.PersonsCount)
	assert.Equal(t, int64(1), stats.DirectorsCount) // p2 执导两部，去重后 1
	assert.Equal(t, int64(1), stats.ActorsCount)    // 只有 actor/actress 类别计入
}

func TestAllGenres(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := NewStatsRepository(db)

	genres, err := repo.AllGenres()
	require.NoError(t, err)
	assert.Equal(t, []string{"Comedy", "Drama", "Thriller"}, genres)
}

func TestRatingDistribution(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := NewStatsRepository(db)

	buckets, err := repo.RatingDistribution()
	require.NoError(t, err)
	require.Len(t, buckets, 11)

	byBucket := make(map[int]int64)
	for _, b := range buckets {
		byBucket[b.Bucket] = b.Count
	}
	assert.Equal(t, int64(1), byBucket[6]) // 6.0
	assert.Equal(t, int64(1), byBucket[7]) // 7.5
	assert.Equal(t, int64(1), byBucket[8]) // 8.0
	assert.Equal(t, int64(0), byBucket[9])
}

func TestTableCounts(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := NewStatsRepository(db)

	counts, err := repo.TableCounts()
	require.NoError(t, err)
	require.Len(t, counts, 12)

	byTable := make(map[string]int64)
	for _, c := range counts {
		byTable[c.Table] = c.Count
	}
	assert.Equal(t, int64(4), byTable["movies"])
	assert.Equal(t, int64(3), byTable["ratings"])
	assert.Equal(t, int64(0), byTable["movie_documents"])
}
