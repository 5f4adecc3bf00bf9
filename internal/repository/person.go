package repository

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/user/cineexplorer/internal/model"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// FindByID 根据 pid 查找人物，未找到时返回 (nil, nil)
func (r *PersonRepository) FindByID(pid string) (*model.Person, error) {
	var person model.Person
	err := r.db.Where("pid = ?", pid).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

// Search 按姓名模糊搜索，按参演数量排序
func (r *PersonRepository) Search(keyword string, limit int) ([]model.PersonSummary, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var results []model.PersonSummary
	err := r.db.Raw(`
		SELECT p.pid, p.primary_name, p.birth_year, p.death_year,
		       (SELECT COUNT(*) FROM principals pr WHERE pr.pid = p.pid) AS film_count
		FROM persons p
		WHERE LOWER(p.primary_name) LIKE ?
		ORDER BY film_count DESC
		LIMIT ?
	`, pattern, limit).Scan(&results).Error
	return results, err
}

// Detail 人物详情（含职业列表）
func (r *PersonRepository) Detail(pid string) (*model.PersonDetail, error) {
	person, err := r.FindByID(pid)
	if err != nil || person == nil {
		return nil, err
	}

	var professions []string
	err = r.db.Model(&model.Profession{}).
		Where("pid = ?", pid).
		Order("job_name").
		Pluck("job_name", &professions).Error
	if err != nil {
		return nil, err
	}

	return &model.PersonDetail{
		Pid:         person.Pid,
		PrimaryName: person.PrimaryName,
		BirthYear:   person.BirthYear,
		DeathYear:   person.DeathYear,
		Professions: professions,
	}, nil
}

// Filmography 人物完整作品列表，按演职类别分组
func (r *PersonRepository) Filmography(pid string) (map[string][]model.FilmographyEntry, error) {
	type row struct {
		Mid            string
		PrimaryTitle   string
		StartYear      *int
		RuntimeMinutes *int
		AverageRating  *float64
		NumVotes       *int
		Category       string
	}
	var rows []row
	err := r.db.Raw(`
		SELECT DISTINCT m.mid, m.primary_title, m.start_year, m.runtime_minutes,
		       r.average_rating, r.num_votes, pr.category
		FROM principals pr
		JOIN movies m ON pr.mid = m.mid
		LEFT JOIN ratings r ON m.mid = r.mid
		WHERE pr.pid = ?
		ORDER BY m.start_year DESC NULLS LAST
	`, pid).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// 该人物在每部电影中的角色名，在内存中拼接，避免跨方言的 GROUP_CONCAT
	var chars []model.Character
	if err := r.db.Where("pid = ?", pid).Order("mid, name").Find(&chars).Error; err != nil {
		return nil, err
	}
	charsByMid := make(map[string][]string)
	for _, c := range chars {
		charsByMid[c.Mid] = append(charsByMid[c.Mid], c.Name)
	}

	filmography := make(map[string][]model.FilmographyEntry)
	for _, rw := range rows {
		category := rw.Category
		if category == "" {
			category = "other"
		}
		filmography[category] = append(filmography[category], model.FilmographyEntry{
			Mid:            rw.Mid,
			PrimaryTitle:   rw.PrimaryTitle,
			StartYear:      rw.StartYear,
			RuntimeMinutes: rw.RuntimeMinutes,
			AverageRating:  rw.AverageRating,
			NumVotes:       rw.NumVotes,
			Characters:     strings.Join(charsByMid[rw.Mid], ", "),
		})
	}
	for _, entries := range filmography {
		sort.SliceStable(entries, func(i, j int) bool {
			yi, yj := entries[i].StartYear, entries[j].StartYear
			if yi == nil {
				return false
			}
			if yj == nil {
				return true
			}
			return *yi > *yj
		})
	}
	return filmography, nil
}
