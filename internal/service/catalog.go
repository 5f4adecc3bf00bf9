package service

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/user/cineexplorer/internal/model"
	"github.com/user/cineexplorer/internal/repository"
	"github.com/user/cineexplorer/internal/utils"
)

// CatalogService 目录浏览服务：详情、搜索、列表、统计
// 详情优先走聚合存储（单次读取拿全量），不可用时回退规范化模型
type CatalogService struct {
	repos  *repository.Repositories
	enrich *EnrichService
	sf     singleflight.Group
}

// NewCatalogService 创建目录服务
func NewCatalogService(repos *repository.Repositories, enrich *EnrichService) *CatalogService {
	return &CatalogService{repos: repos, enrich: enrich}
}

// MovieDetail 电影详情：聚合文档 + 读取时角色名富化
// 聚合存储不可用或未命中时，退回关系模型现场拼装一份等价文档
func (s *CatalogService) MovieDetail(ctx context.Context, mid string) (*model.MovieDocument, error) {
	doc, err := s.repos.Document.FindByID(ctx, mid)
	if err != nil {
		log.Printf("[Catalog] 聚合存储读取失败，回退关系模型: %v", err)
		doc = nil
	}
	if doc == nil {
		// 回退：关系模型现场计算（与构建器同一条重塑逻辑）
		movie, err := s.repos.Movie.FindByID(mid)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			return nil, nil
		}
		builder := &BuilderService{
			movieRepo:  s.repos.Movie,
			creditRepo: s.repos.Credit,
			docRepo:    s.repos.Document,
		}
		doc, err = builder.BuildDocument(mid)
		if err != nil {
			return nil, err
		}
	}
	return s.enrich.Enrich(doc)
}

// SimilarMovies 按共同类型推荐相似电影
func (s *CatalogService) SimilarMovies(ctx context.Context, mid string, limit int) ([]model.MovieSummary, error) {
	genres, err := s.repos.Credit.GenresFor(mid)
	if err != nil {
		return nil, err
	}
	return s.repos.Movie.SimilarByGenres(mid, genres, limit)
}

// StatsOverview 站点统计总览
type StatsOverview struct {
	Global       *model.GlobalStats        `json:"global"`
	GenreCounts  []repository.GenreCount   `json:"genre_counts"`
	DecadeCounts []repository.DecadeCount  `json:"decade_counts"`
	RatingHist   []repository.RatingBucket `json:"rating_distribution"`
	TopActors    []model.PersonSummary     `json:"top_actors"`
	Documents    int64                     `json:"documents"`
}

// Stats 统计总览，结果缓存 5 分钟，并发刷新去重
func (s *CatalogService) Stats(ctx context.Context) (*StatsOverview, error) {
	const cacheKey = "stats:overview"
	if cached, ok := utils.CacheGet(cacheKey); ok {
		return cached.(*StatsOverview), nil
	}

	val, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		global, err := s.repos.Stats.Global()
		if err != nil {
			return nil, err
		}
		genreCounts, err := s.repos.Stats.GenreCounts(15)
		if err != nil {
			return nil, err
		}
		decadeCounts, err := s.repos.Stats.DecadeCounts()
		if err != nil {
			return nil, err
		}
		hist, err := s.repos.Stats.RatingDistribution()
		if err != nil {
			return nil, err
		}
		topActors, err := s.repos.Stats.TopActors(10)
		if err != nil {
			return nil, err
		}
		docCount, err := s.repos.Document.Count(ctx)
		if err != nil {
			return nil, err
		}
		overview := &StatsOverview{
			Global:       global,
			GenreCounts:  genreCounts,
			DecadeCounts: decadeCounts,
			RatingHist:   hist,
			TopActors:    topActors,
			Documents:    docCount,
		}
		utils.CacheSet(cacheKey, overview, 5*time.Minute)
		return overview, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*StatsOverview), nil
}
