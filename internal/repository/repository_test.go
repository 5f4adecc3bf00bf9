package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/cineexplorer/internal/model"
)

func intPtr(n int) *int { return &n }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))
	return db
}

// seed 仓库层测试用的固定数据集（含一条电视剧单集）
func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []interface{}{
		&model.Movie{Mid: "m1", TitleType: "movie", PrimaryTitle: "Alpha", OriginalTitle: "Alpha", StartYear: intPtr(1999), RuntimeMinutes: intPtr(120)},
		&model.Movie{Mid: "m2", TitleType: "movie", PrimaryTitle: "Beta", OriginalTitle: "Beta", StartYear: intPtr(2005)},
		&model.Movie{Mid: "m3", TitleType: "movie", PrimaryTitle: "Gamma", OriginalTitle: "Gamma", StartYear: intPtr(2010)},
		&model.Movie{Mid: "m8", TitleType: "tvEpisode", PrimaryTitle: "Alpha Episode", OriginalTitle: "Alpha Episode", StartYear: intPtr(2000)},

		&model.Person{Pid: "p1", PrimaryName: "Alice Actor", BirthYear: intPtr(1970)},
		&model.Person{Pid: "p2", PrimaryName: "Bob Director"},

		&model.Rating{Mid: "m1", AverageRating: 8.0, NumVotes: 1500},
		&model.Rating{Mid: "m2", AverageRating: 7.5, NumVotes: 300000},
		&model.Rating{Mid: "m3", AverageRating: 6.0, NumVotes: 500},

		&model.Genre{Mid: "m1", Genre: "Drama"},
		&model.Genre{Mid: "m1", Genre: "Thriller"},
		&model.Genre{Mid: "m2", Genre: "Drama"},
		&model.Genre{Mid: "m3", Genre: "Comedy"},

		&model.Director{Mid: "m1", Pid: "p2"},
		&model.Director{Mid: "m2", Pid: "p2"},

		&model.Character{Mid: "m1", Pid: "p1", Name: "Hero"},
		&model.Character{Mid: "m1", Pid: "p1", Name: "Villain"},

		&model.Principal{Mid: "m1", Ordering: 1, Pid: "p1", Category: "actor"},
		&model.Principal{Mid: "m2", Ordering: 1, Pid: "p1", Category: "actor"},
		&model.Principal{Mid: "m3", Ordering: 1, Pid: "p1", Category: "self"},

		&model.Profession{Pid: "p1", JobName: "actor"},
		&model.Profession{Pid: "p1", JobName: "producer"},
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
}
