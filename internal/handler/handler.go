package handler

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/user/cineexplorer/internal/config"
	"github.com/user/cineexplorer/internal/query"
	"github.com/user/cineexplorer/internal/repository"
	"github.com/user/cineexplorer/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Catalog *service.CatalogService
	Builder *service.BuilderService

	relational *query.Relational
	document   *query.Document
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	enrich := service.NewEnrichService(repos.Credit)
	relational := query.NewRelational(repos.DB)

	return &Handler{
		Repos:      repos,
		Config:     cfg,
		Catalog:    service.NewCatalogService(repos, enrich),
		Builder:    service.NewBuilderService(repos, cfg.BatchSize, cfg.BuildWorkers),
		relational: relational,
		document:   query.NewDocument(repos.Document, relational),
	}
}

// strategyFor 根据 model 参数选择查询策略
// 请求文档模型但聚合存储不可用时，由调用侧回退到关系模型
func (h *Handler) strategyFor(ctx context.Context, c *gin.Context) query.Strategy {
	if c.Query("model") == "document" {
		if h.Repos.Document.Available(ctx) {
			return h.document
		}
		log.Println("[Handler] 聚合存储不可用，回退关系模型")
	}
	return h.relational
}
