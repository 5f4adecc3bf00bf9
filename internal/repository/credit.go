package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/user/cineexplorer/internal/model"
)

// CreditRepository 演职与关联关系访问：聚合构建器的七个单片连接都在这里
type CreditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) *CreditRepository {
	return &CreditRepository{db: db}
}

// GenresFor 电影的全部类型标签（按字母序，保证重建结果确定）
func (r *CreditRepository) GenresFor(mid string) ([]string, error) {
	var genres []string
	err := r.db.Model(&model.Genre{}).
		Where("mid = ?", mid).
		Order("genre").
		Pluck("genre", &genres).Error
	return genres, err
}

// RatingFor 电影评分，缺失时返回 (nil, nil)
func (r *CreditRepository) RatingFor(mid string) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("mid = ?", mid).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

// DirectorsFor 电影的导演关联
func (r *CreditRepository) DirectorsFor(mid string) ([]model.Director, error) {
	var rows []model.Director
	err := r.db.Where("mid = ?", mid).Order("pid").Find(&rows).Error
	return rows, err
}

// PrincipalsFor 电影的演职人员名单（按排位）
func (r *CreditRepository) PrincipalsFor(mid string) ([]model.Principal, error) {
	var rows []model.Principal
	err := r.db.Where("mid = ?", mid).Order("ordering, pid, category").Find(&rows).Error
	return rows, err
}

// CharactersFor 电影的全部角色行
func (r *CreditRepository) CharactersFor(mid string) ([]model.Character, error) {
	var rows []model.Character
	err := r.db.Where("mid = ?", mid).Order("pid, name").Find(&rows).Error
	return rows, err
}

// WritersFor 电影的编剧关联
func (r *CreditRepository) WritersFor(mid string) ([]model.Writer, error) {
	var rows []model.Writer
	err := r.db.Where("mid = ?", mid).Order("pid").Find(&rows).Error
	return rows, err
}

// TitlesFor 电影的地区标题
func (r *CreditRepository) TitlesFor(mid string) ([]model.Title, error) {
	var rows []model.Title
	err := r.db.Where("mid = ?", mid).Order("ordering").Find(&rows).Error
	return rows, err
}

// PersonNames 批量解析 pid -> 姓名
// 一次性取回一部电影涉及的所有人名，避免逐条点查
func (r *CreditRepository) PersonNames(pids []string) (map[string]string, error) {
	names := make(map[string]string, len(pids))
	if len(pids) == 0 {
		return names, nil
	}
	var persons []model.Person
	err := r.db.Select("pid, primary_name").Where("pid IN ?", pids).Find(&persons).Error
	if err != nil {
		return nil, err
	}
	for _, p := range persons {
		names[p.Pid] = p.PrimaryName
	}
	return names, nil
}

// CharactersMap 电影角色名映射 pid -> [角色名]
// 角色关系表是角色名的权威来源，富化适配器据此覆盖文档内嵌值
func (r *CreditRepository) CharactersMap(mid string) (map[string][]string, error) {
	rows, err := r.CharactersFor(mid)
	if err != nil {
		return nil, err
	}
	m := make(map[string][]string)
	for _, c := range rows {
		if c.Name != "" {
			m[c.Pid] = append(m[c.Pid], c.Name)
		}
	}
	return m, nil
}
