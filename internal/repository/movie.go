package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/user/cineexplorer/internal/model"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindByID 根据 mid 查找电影，未找到时返回 (nil, nil)
func (r *MovieRepository) FindByID(mid string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("mid = ?", mid).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

// Count 电影总数
func (r *MovieRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&model.Movie{}).Count(&total).Error
	return total, err
}

// FindMidsInBatches 按批遍历全部电影 ID（聚合构建器的驱动游标）
func (r *MovieRepository) FindMidsInBatches(batchSize int, fn func(mids []string) error) error {
	var movies []model.Movie
	return r.db.Model(&model.Movie{}).Select("mid").Order("mid").
		FindInBatches(&movies, batchSize, func(tx *gorm.DB, _ int) error {
			mids := make([]string, 0, len(movies))
			for _, m := range movies {
				mids = append(mids, m.Mid)
			}
			return fn(mids)
		}).Error
}

// FindByMids 批量取电影主记录
func (r *MovieRepository) FindByMids(mids []string) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Where("mid IN ?", mids).Order("mid").Find(&movies).Error
	return movies, err
}

// Search 按标题模糊搜索（排除电视剧单集）
func (r *MovieRepository) Search(keyword string, limit int) ([]model.MovieSummary, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var results []model.MovieSummary
	err := r.db.Raw(`
		SELECT m.mid, m.primary_title, m.title_type, m.start_year, m.runtime_minutes,
		       r.average_rating, r.num_votes
		FROM movies m
		LEFT JOIN ratings r ON m.mid = r.mid
		WHERE (LOWER(m.primary_title) LIKE ? OR LOWER(m.original_title) LIKE ?)
		  AND m.title_type <> 'tvEpisode'
		ORDER BY r.average_rating DESC NULLS LAST
		LIMIT ?
	`, pattern, pattern, limit).Scan(&results).Error
	return results, err
}

// List 带筛选与分页的电影列表
func (r *MovieRepository) List(f model.MovieListFilter) (*model.MovieList, error) {
	base := r.db.Table("movies m").
		Select("m.mid, m.primary_title, m.start_year, m.runtime_minutes, r.average_rating, r.num_votes").
		Joins("LEFT JOIN ratings r ON m.mid = r.mid").
		Where("m.title_type = ?", "movie")

	if f.Genre != "" {
		base = base.Joins("JOIN genres g ON m.mid = g.mid").Where("g.genre = ?", f.Genre)
	}
	if f.YearMin != nil {
		base = base.Where("m.start_year >= ?", *f.YearMin)
	}
	if f.YearMax != nil {
		base = base.Where("m.start_year <= ?", *f.YearMax)
	}
	if f.RatingMin != nil {
		base = base.Where("r.average_rating >= ?", *f.RatingMin)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("m.mid").Count(&total).Error; err != nil {
		return nil, err
	}

	sortCols := map[string]string{
		"title":  "m.primary_title",
		"year":   "m.start_year",
		"rating": "r.average_rating",
	}
	col, ok := sortCols[f.SortBy]
	if !ok {
		col = "r.average_rating"
	}
	dir := "DESC"
	if f.SortOrder == "asc" {
		dir = "ASC"
	}

	if f.PerPage <= 0 {
		f.PerPage = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	var movies []model.MovieSummary
	err := base.Order(fmt.Sprintf("%s %s NULLS LAST", col, dir)).
		Limit(f.PerPage).Offset((f.Page - 1) * f.PerPage).
		Scan(&movies).Error
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(f.PerPage) - 1) / int64(f.PerPage))
	return &model.MovieList{
		Movies:      movies,
		Total:       total,
		Pages:       pages,
		CurrentPage: f.Page,
	}, nil
}

// TopRated 评分最高的电影（至少 1000 票）
func (r *MovieRepository) TopRated(limit int) ([]model.MovieSummary, error) {
	var results []model.MovieSummary
	err := r.db.Raw(`
		SELECT m.mid, m.primary_title, m.start_year, m.runtime_minutes,
		       r.average_rating, r.num_votes
		FROM movies m
		JOIN ratings r ON m.mid = r.mid
		WHERE m.title_type = 'movie'
		  AND r.num_votes >= 1000
		ORDER BY r.average_rating DESC, r.num_votes DESC
		LIMIT ?
	`, limit).Scan(&results).Error
	return results, err
}

// SimilarByGenres 按共同类型查找相似电影（排除自身，需有评分）
func (r *MovieRepository) SimilarByGenres(mid string, genres []string, limit int) ([]model.MovieSummary, error) {
	if len(genres) == 0 {
		return nil, nil
	}
	var results []model.MovieSummary
	err := r.db.Raw(`
		SELECT DISTINCT m.mid, m.primary_title, m.start_year, m.runtime_minutes,
		       r.average_rating, r.num_votes
		FROM movies m
		JOIN genres g ON m.mid = g.mid
		JOIN ratings r ON m.mid = r.mid
		WHERE g.genre IN ? AND m.mid <> ?
		ORDER BY r.average_rating DESC
		LIMIT ?
	`, genres, mid, limit).Scan(&results).Error
	return results, err
}
