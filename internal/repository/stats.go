package repository

import (
	"gorm.io/gorm"

	"github.com/user/cineexplorer/internal/model"
)

// StatsRepository 统计类只读查询
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Global 全局统计：电影数、人物数、导演数、演员数
func (r *StatsRepository) Global() (*model.GlobalStats, error) {
	var stats model.GlobalStats
	if err := r.db.Model(&model.Movie{}).Count(&stats.MoviesCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Person{}).Count(&stats.PersonsCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Director{}).Distinct("pid").Count(&stats.DirectorsCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Principal{}).
		Where("category IN ?", []string{"actor", "actress"}).
		Distinct("pid").Count(&stats.ActorsCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// AllGenres 全部类型标签（去重、字母序）
func (r *StatsRepository) AllGenres() ([]string, error) {
	var genres []string
	err := r.db.Model(&model.Genre{}).Distinct("genre").Order("genre").Pluck("genre", &genres).Error
	return genres, err
}

// GenreCount 类型-数量对
type GenreCount struct {
	Genre string `json:"genre"`
	Count int64  `json:"count"`
}

// GenreCounts 每个类型的电影数量（取前 limit 个）
func (r *StatsRepository) GenreCounts(limit int) ([]GenreCount, error) {
	var rows []GenreCount
	err := r.db.Raw(`
		SELECT g.genre, COUNT(*) AS count
		FROM genres g
		JOIN movies m ON g.mid = m.mid
		WHERE m.title_type = 'movie'
		GROUP BY g.genre
		ORDER BY count DESC
		LIMIT ?
	`, limit).Scan(&rows).Error
	return rows, err
}

// DecadeCount 年代-数量对
type DecadeCount struct {
	Decade int   `json:"decade"`
	Count  int64 `json:"count"`
}

// DecadeCounts 每个年代的电影数量
func (r *StatsRepository) DecadeCounts() ([]DecadeCount, error) {
	var rows []DecadeCount
	err := r.db.Raw(`
		SELECT (start_year / 10) * 10 AS decade, COUNT(*) AS count
		FROM movies
		WHERE title_type = 'movie' AND start_year IS NOT NULL
		GROUP BY decade
		ORDER BY decade
	`).Scan(&rows).Error
	return rows, err
}

// RatingBucket 评分区间-数量对
type RatingBucket struct {
	Bucket int   `json:"bucket"`
	Count  int64 `json:"count"`
}

// RatingDistribution 评分直方图（[0,1), [1,2) ... [9,10]）
func (r *StatsRepository) RatingDistribution() ([]RatingBucket, error) {
	rows := make([]RatingBucket, 0, 11)
	for i := 0; i <= 10; i++ {
		var n int64
		err := r.db.Model(&model.Rating{}).
			Joins("JOIN movies m ON ratings.mid = m.mid").
			Where("m.title_type = ?", "movie").
			Where("ratings.average_rating >= ? AND ratings.average_rating < ?", i, i+1).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		rows = append(rows, RatingBucket{Bucket: i, Count: n})
	}
	return rows, nil
}

// TopActors 参演电影最多的演员
func (r *StatsRepository) TopActors(limit int) ([]model.PersonSummary, error) {
	var rows []model.PersonSummary
	err := r.db.Raw(`
		SELECT p.pid, p.primary_name, p.birth_year, p.death_year,
		       COUNT(DISTINCT pr.mid) AS film_count
		FROM persons p
		JOIN principals pr ON p.pid = pr.pid
		WHERE pr.category IN ('actor', 'actress')
		GROUP BY p.pid, p.primary_name, p.birth_year, p.death_year
		ORDER BY film_count DESC
		LIMIT ?
	`, limit).Scan(&rows).Error
	return rows, err
}

// TableCount 表名-行数对（健康检查用）
type TableCount struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// TableCounts 十一张关系表加聚合表的行数
func (r *StatsRepository) TableCounts() ([]TableCount, error) {
	tables := []string{
		"movies", "persons", "ratings", "genres", "directors", "writers",
		"characters", "principals", "titles", "professions", "knownformovies",
		"movie_documents",
	}
	counts := make([]TableCount, 0, len(tables))
	for _, t := range tables {
		if !r.db.Migrator().HasTable(t) {
			counts = append(counts, TableCount{Table: t, Count: -1})
			continue
		}
		var n int64
		if err := r.db.Table(t).Count(&n).Error; err != nil {
			return nil, err
		}
		counts = append(counts, TableCount{Table: t, Count: n})
	}
	return counts, nil
}
