package service

import (
	"time"

	"github.com/user/cineexplorer/internal/model"
	"github.com/user/cineexplorer/internal/repository"
	"github.com/user/cineexplorer/internal/utils"
)

// EnrichService 富化适配器
// 聚合文档内嵌的角色名可能与角色关系表脱节（不同抽取批次），
// 读取时用关系表的权威值覆盖这一个字段，绝不回写聚合存储
type EnrichService struct {
	creditRepo *repository.CreditRepository
	charCache  *utils.LRUCache[map[string][]string]
}

// NewEnrichService 创建富化适配器
func NewEnrichService(creditRepo *repository.CreditRepository) *EnrichService {
	return &EnrichService{
		creditRepo: creditRepo,
		charCache:  utils.NewLRUCache[map[string][]string](1024, 10*time.Minute),
	}
}

// Enrich 用角色关系表修正文档中每个 cast 条目的角色名
// 关系表对该 (mid, pid) 无记录时保留内嵌值不动
func (s *EnrichService) Enrich(doc *model.MovieDocument) (*model.MovieDocument, error) {
	if doc == nil || len(doc.Cast) == 0 {
		return doc, nil
	}

	charsMap, ok := s.charCache.Get(doc.ID)
	if !ok {
		var err error
		charsMap, err = s.creditRepo.CharactersMap(doc.ID)
		if err != nil {
			return nil, err
		}
		s.charCache.Set(doc.ID, charsMap)
	}

	for i := range doc.Cast {
		if chars, ok := charsMap[doc.Cast[i].PersonID]; ok && len(chars) > 0 {
			doc.Cast[i].Characters = chars
		}
	}
	return doc, nil
}
