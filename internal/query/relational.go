package query

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Relational 基于规范化关系模型的执行策略
type Relational struct {
	db *gorm.DB
}

// NewRelational 创建关系模型策略
func NewRelational(db *gorm.DB) *Relational {
	return &Relational{db: db}
}

func likePattern(name string) string {
	return "%" + strings.ToLower(name) + "%"
}

// Filmography Q1: 任一演职身份参与的电影，按 (电影, 人物) 去重投影
func (s *Relational) Filmography(ctx context.Context, name string) ([]FilmographyRow, error) {
	var rows []FilmographyRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT DISTINCT m.mid, m.primary_title AS title, m.start_year AS year
		FROM movies m
		JOIN principals p ON m.mid = p.mid
		JOIN persons pe ON p.pid = pe.pid
		WHERE LOWER(pe.primary_name) LIKE ?
		ORDER BY year ASC NULLS LAST, title
	`, likePattern(name)).Scan(&rows).Error
	return rows, err
}

// TopByGenre Q2
func (s *Relational) TopByGenre(ctx context.Context, genre string, yearMin, yearMax, n int) ([]TopRow, error) {
	var rows []TopRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT m.primary_title AS title, r.average_rating AS rating
		FROM movies m
		JOIN ratings r ON m.mid = r.mid
		JOIN genres g ON m.mid = g.mid
		WHERE g.genre = ?
		  AND m.start_year BETWEEN ? AND ?
		ORDER BY rating DESC, title
		LIMIT ?
	`, genre, yearMin, yearMax, n).Scan(&rows).Error
	return rows, err
}

// MultiRoles Q3: 按 (电影, 人物) 分组统计不同角色名数量
func (s *Relational) MultiRoles(ctx context.Context, name string) ([]MultiRoleRow, error) {
	var rows []MultiRoleRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT m.primary_title AS title, COUNT(DISTINCT c.name) AS role_count
		FROM movies m
		JOIN characters c ON m.mid = c.mid
		JOIN persons p ON c.pid = p.pid
		WHERE LOWER(p.primary_name) LIKE ?
		GROUP BY m.mid, m.primary_title, c.pid
		HAVING COUNT(DISTINCT c.name) > 1
		ORDER BY role_count DESC, title
	`, likePattern(name)).Scan(&rows).Error
	return rows, err
}

// Collaborations Q4: 指定人物以任一演职身份出现的电影，其导演的合作片数
func (s *Relational) Collaborations(ctx context.Context, name string) ([]CollaborationRow, error) {
	var rows []CollaborationRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT pe.primary_name AS director_name, COUNT(DISTINCT m.mid) AS film_count
		FROM persons pe
		JOIN directors d ON pe.pid = d.pid
		JOIN movies m ON d.mid = m.mid
		WHERE m.mid IN (
			SELECT pr.mid
			FROM principals pr
			JOIN persons p2 ON pr.pid = p2.pid
			WHERE LOWER(p2.primary_name) LIKE ?
		)
		GROUP BY pe.pid, pe.primary_name
		ORDER BY film_count DESC, director_name
	`, likePattern(name)).Scan(&rows).Error
	return rows, err
}

// QualityGenres Q5
func (s *Relational) QualityGenres(ctx context.Context) ([]QualityGenreRow, error) {
	var rows []QualityGenreRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT g.genre, AVG(r.average_rating) AS mean_rating, COUNT(m.mid) AS film_count
		FROM genres g
		JOIN movies m ON g.mid = m.mid
		JOIN ratings r ON m.mid = r.mid
		GROUP BY g.genre
		HAVING AVG(r.average_rating) > 7.0
		   AND COUNT(m.mid) > 50
		ORDER BY mean_rating DESC, g.genre
	`).Scan(&rows).Error
	return rows, err
}

// GenreRanking Q6: 组内序数排名（并列时按 mid 的输入序），每组最多 3 行
func (s *Relational) GenreRanking(ctx context.Context) ([]GenreRankRow, error) {
	var rows []GenreRankRow
	err := s.db.WithContext(ctx).Raw(`
		WITH ranked AS (
			SELECT g.genre, m.primary_title AS title, r.average_rating AS rating,
			       ROW_NUMBER() OVER (
			           PARTITION BY g.genre
			           ORDER BY r.average_rating DESC, m.mid
			       ) AS rank
			FROM movies m
			JOIN genres g ON m.mid = g.mid
			JOIN ratings r ON m.mid = r.mid
		)
		SELECT genre, title, rating, rank
		FROM ranked
		WHERE rank <= 3
		ORDER BY genre, rank
	`).Scan(&rows).Error
	return rows, err
}

// Breakouts Q7: 资格由代表作集合决定——至少一部低票数、至少一部高票数，
// 突破作品即高票数的那部，按其年份升序
func (s *Relational) Breakouts(ctx context.Context) ([]BreakoutRow, error) {
	var rows []BreakoutRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT DISTINCT pe.primary_name AS person_name, m.primary_title AS title,
		       m.start_year AS year
		FROM knownformovies k
		JOIN movies m ON k.mid = m.mid
		JOIN ratings r ON m.mid = r.mid
		JOIN persons pe ON k.pid = pe.pid
		WHERE r.num_votes >= ?
		  AND k.pid IN (
			SELECT k2.pid
			FROM knownformovies k2
			JOIN ratings r2 ON k2.mid = r2.mid
			WHERE r2.num_votes < ?
		  )
		ORDER BY year ASC NULLS LAST, person_name, title
	`, BreakoutVoteThreshold, BreakoutVoteThreshold).Scan(&rows).Error
	return rows, err
}

// DirectorGenres Q8: 按 (类型, 电影) 去重，类型升序、组内评分降序
func (s *Relational) DirectorGenres(ctx context.Context, name string) ([]DirectorGenreRow, error) {
	var rows []DirectorGenreRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT DISTINCT m.mid, g.genre, m.primary_title AS title, r.average_rating AS rating,
		       r.num_votes AS votes, m.start_year AS year
		FROM persons pe
		JOIN directors d ON pe.pid = d.pid
		JOIN movies m ON d.mid = m.mid
		JOIN genres g ON m.mid = g.mid
		JOIN ratings r ON m.mid = r.mid
		WHERE LOWER(pe.primary_name) LIKE ?
		ORDER BY g.genre, rating DESC, title
	`, likePattern(name)).Scan(&rows).Error
	return rows, err
}
