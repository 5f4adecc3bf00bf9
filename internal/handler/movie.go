package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/cineexplorer/internal/model"
	"github.com/user/cineexplorer/internal/utils"
)

// ListMovies GET /api/movies 带筛选分页的电影列表
func (h *Handler) ListMovies(c *gin.Context) {
	filter := model.MovieListFilter{
		Genre:     c.Query("genre"),
		SortBy:    c.DefaultQuery("sort", "rating"),
		SortOrder: c.DefaultQuery("order", "desc"),
	}
	if v := c.Query("year_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.YearMin = &n
		}
	}
	if v := c.Query("year_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.YearMax = &n
		}
	}
	if v := c.Query("rating_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.RatingMin = &f
		}
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	list, err := h.Repos.Movie.List(filter)
	if err != nil {
		utils.InternalServerError(c, "查询电影列表失败")
		return
	}
	utils.Success(c, list)
}

// TopMovies GET /api/movies/top 评分最高的电影
func (h *Handler) TopMovies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	movies, err := h.Repos.Movie.TopRated(limit)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, movies)
}

// SearchMovies GET /api/movies/search 按标题搜索
func (h *Handler) SearchMovies(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		utils.BadRequest(c, "缺少搜索关键词")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	movies, err := h.Repos.Movie.Search(keyword, limit)
	if err != nil {
		utils.InternalServerError(c, "搜索失败")
		return
	}
	utils.Success(c, movies)
}

// MovieDetail GET /api/movies/:id 电影详情（富化后的聚合文档）
func (h *Handler) MovieDetail(c *gin.Context) {
	mid := c.Param("id")
	doc, err := h.Catalog.MovieDetail(c.Request.Context(), mid)
	if err != nil {
		utils.InternalServerError(c, "查询电影详情失败")
		return
	}
	if doc == nil {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.Success(c, doc)
}

// SimilarMovies GET /api/movies/:id/similar 相似电影
func (h *Handler) SimilarMovies(c *gin.Context) {
	mid := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	movies, err := h.Catalog.SimilarMovies(c.Request.Context(), mid, limit)
	if err != nil {
		utils.InternalServerError(c, "查询相似电影失败")
		return
	}
	utils.Success(c, movies)
}

// Genres GET /api/genres 全部类型标签
func (h *Handler) Genres(c *gin.Context) {
	genres, err := h.Repos.Stats.AllGenres()
	if err != nil {
		utils.InternalServerError(c, "查询类型列表失败")
		return
	}
	utils.Success(c, genres)
}
