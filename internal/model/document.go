package model

import "gorm.io/datatypes"

// MovieDocument 聚合文档：一部电影的全部信息（去规范化快照）
// 由聚合构建器整体重建，可随时丢弃，不是权威数据
type MovieDocument struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Year      *int            `json:"year"`
	Runtime   *int            `json:"runtime"`
	Genres    []string        `json:"genres"`
	Rating    *DocRating      `json:"rating"`
	Directors []DocPerson     `json:"directors"`
	Cast      []DocCastMember `json:"cast"`
	Writers   []DocWriter     `json:"writers"`
	Titles    []DocTitle      `json:"titles"`
}

// DocRating 文档内嵌评分
type DocRating struct {
	Average float64 `json:"average"`
	Votes   int     `json:"votes"`
}

// DocPerson 文档内嵌人物（导演）
type DocPerson struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
}

// DocCastMember 文档内嵌演职人员
// Characters 是该人物在本片中的角色名快照，读取时可被角色关系表的权威值覆盖
type DocCastMember struct {
	PersonID   string   `json:"person_id"`
	Ordering   int      `json:"ordering"`
	Name       string   `json:"name"`
	Characters []string `json:"characters"`
}

// DocWriter 文档内嵌编剧
type DocWriter struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
}

// DocTitle 文档内嵌地区标题
type DocTitle struct {
	Region string `json:"region"`
	Title  string `json:"title"`
}

// MovieDocumentRow 聚合文档的存储行：mid 主键 + JSON 负载
type MovieDocumentRow struct {
	Mid string         `json:"mid" gorm:"column:mid;primaryKey"`
	Doc datatypes.JSON `json:"doc" gorm:"column:doc"`
}

func (MovieDocumentRow) TableName() string { return "movie_documents" }
