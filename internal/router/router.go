package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/cineexplorer/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ==================== 电影 ====================
		api.GET("/movies", h.ListMovies)
		api.GET("/movies/top", h.TopMovies)
		api.GET("/movies/search", h.SearchMovies)
		api.GET("/movies/:id", h.MovieDetail)
		api.GET("/movies/:id/similar", h.SimilarMovies)
		api.GET("/genres", h.Genres)

		// ==================== 人物 ====================
		api.GET("/persons/search", h.SearchPersons)
		api.GET("/persons/:id", h.PersonDetail)

		// ==================== 分析查询（model=relational|document）====================
		analytics := api.Group("/analytics")
		{
			analytics.GET("/filmography", h.Filmography)
			analytics.GET("/top", h.TopByGenre)
			analytics.GET("/multi-roles", h.MultiRoles)
			analytics.GET("/collaborations", h.Collaborations)
			analytics.GET("/quality-genres", h.QualityGenres)
			analytics.GET("/genre-ranking", h.GenreRanking)
			analytics.GET("/breakouts", h.Breakouts)
			analytics.GET("/director-genres", h.DirectorGenres)
		}

		// ==================== 统计 ====================
		api.GET("/stats", h.Stats)
		api.GET("/stats/tables", h.TableCounts)

		// ==================== 管理 ====================
		api.POST("/admin/rebuild", h.Rebuild)
	}
}
