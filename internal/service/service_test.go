package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/cineexplorer/internal/model"
	"github.com/user/cineexplorer/internal/repository"
)

func intPtr(n int) *int { return &n }

// newTestDB 每个测试独立的内存库
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
	require.NoError(t, repository.Migrate(db))
	return db
}

// seedCatalog 固定的小型数据集
// m1 Alpha: 双类型、一人分饰两角、含人物记录缺失的 cast 条目
// m2 Beta: 高票数（突破作品）
// m3 Gamma: 导演之一缺人物记录
// m4 Delta: 无评分、无年份
// m5 Epsilon: 评分最高
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []interface{}{
		&model.Movie{Mid: "m1", TitleType: "movie", PrimaryTitle: "Alpha", OriginalTitle: "Alpha", StartYear: intPtr(1999), RuntimeMinutes: intPtr(120)},
		&model.Movie{Mid: "m2", TitleType: "movie", PrimaryTitle: "Beta", OriginalTitle: "Beta", StartYear: intPtr(2005)},
		&model.Movie{Mid: "m3", TitleType: "movie", PrimaryTitle: "Gamma", OriginalTitle: "Gamma", StartYear: intPtr(2010)},
		&model.Movie{Mid: "m4", TitleType: "movie", PrimaryTitle: "Delta", OriginalTitle: "Delta"},
		&model.Movie{Mid: "m5", TitleType: "movie", PrimaryTitle: "Epsilon", OriginalTitle: "Epsilon", StartYear: intPtr(2001)},

		&model.Person{Pid: "p1", PrimaryName: "Alice Actor", BirthYear: intPtr(1970)},
		&model.Person{Pid: "p2", PrimaryName: "Bob Director", BirthYear: intPtr(1960)},
		&model.Person{Pid: "p3", PrimaryName: "Carol Writer"},
		&model.Person{Pid: "p4", PrimaryName: "Dan Director"},
		&model.Person{Pid: "p5", PrimaryName: "Eve Star"},

		&model.Rating{Mid: "m1", AverageRating: 8.0, NumVotes: 1500},
		&model.Rating{Mid: "m2", AverageRating: 7.5, NumVotes: 300000},
		&model.Rating{Mid: "m3", AverageRating: 6.0, NumVotes: 500},
		&model.Rating{Mid: "m5", AverageRating: 9.0, NumVotes: 2000},

		&model.Genre{Mid: "m1", Genre: "Drama"},
		&model.Genre{Mid: "m1", Genre: "Thriller"},
		&model.Genre{Mid: "m2", Genre: "Drama"},
		&model.Genre{Mid: "m3", Genre: "Comedy"},
		&model.Genre{Mid: "m4", Genre: "Drama"},
		&model.Genre{Mid: "m5", Genre: "Drama"},

		&model.Director{Mid: "m1", Pid: "p2"},
		&model.Director{Mid: "m2", Pid: "p2"},
		&model.Director{Mid: "m3", Pid: "p4"},
		&model.Director{Mid: "m3", Pid: "p9"}, // p9 无人物记录
		&model.Director{Mid: "m5", Pid: "p2"},

		&model.Writer{Mid: "m1", Pid: "p3"},

		&model.Character{Mid: "m1", Pid: "p1", Name: "Hero"},
		&model.Character{Mid: "m1", Pid: "p1", Name: "Villain"},
		&model.Character{Mid: "m2", Pid: "p1", Name: "Guide"},
		&model.Character{Mid: "m5", Pid: "p5", Name: "Queen"},

		&model.Principal{Mid: "m1", Ordering: 1, Pid: "p1", Category: "actor"},
		&model.Principal{Mid: "m1", Ordering: 2, Pid: "p2", Category: "director"},
		&model.Principal{Mid: "m1", Ordering: 3, Pid: "p9", Category: "actor"}, // p9 无人物记录
		&model.Principal{Mid: "m2", Ordering: 1, Pid: "p1", Category: "actor"},
		&model.Principal{Mid: "m3", Ordering: 1, Pid: "p4", Category: "director"},
		&model.Principal{Mid: "m4", Ordering: 1, Pid: "p1", Category: "actor"},
		&model.Principal{Mid: "m5", Ordering: 1, Pid: "p5", Category: "actress"},

		&model.Title{Mid: "m1", Ordering: 1, Title: "Alpha", Region: "US"},
		&model.Title{Mid: "m1", Ordering: 2, Title: "Alpha DE", Region: "DE"},

		&model.KnownForMovie{Pid: "p1", Mid: "m1"},
		&model.KnownForMovie{Pid: "p1", Mid: "m2"},
		&model.KnownForMovie{Pid: "p2", Mid: "m2"},
		&model.KnownForMovie{Pid: "p5", Mid: "m5"},
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
}
