package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/cineexplorer/internal/utils"
)

// requireName 读取 name 参数，缺失时直接响应 400
func requireName(c *gin.Context) (string, bool) {
	name := c.Query("name")
	if name == "" {
		utils.BadRequest(c, "缺少 name 参数")
		return "", false
	}
	return name, true
}

// Filmography GET /api/analytics/filmography Q1
func (h *Handler) Filmography(c *gin.Context) {
	name, ok := requireName(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	rows, err := h.strategyFor(ctx, c).Filmography(ctx, name)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, rows)
}

// TopByGenre GET /api/analytics/top Q2
func (h *Handler) TopByGenre(c *gin.Context) {
	genre := c.Query("genre")
	if genre == "" {
		utils.BadRequest(c, "缺少 genre 参数")
		return
	}
	yearMin, _ := strconv.Atoi(c.DefaultQuery("year_min", "1900"))
	yearMax, _ := strconv.Atoi(c.DefaultQuery("year_max", "2100"))
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))

	ctx := c.Request.Context()
	rows, err := h.strategyFor(ctx, c).TopByGenre(ctx, genre, yearMin, yearMax, n)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, rows)
}

// MultiRoles GET /api/analytics/multi-roles Q3
func (h *Handler) MultiRoles(c *gin.Context) {
	name, ok := requireName(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	rows, err := h.strategyFor(ctx, c).MultiRoles(ctx, name)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, rows)
}

// Collaborations GET /api/analytics/collaborations Q4
func (h *Handler) Collaborations(c *gin.Context) {
	name, ok := requireName(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	rows, err := h.strategyFor(ctx, c).Collaborations(ctx, name)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, rows)
}

// QualityGenres GET /api/analytics/quality-genres Q5
func (h *Handler) QualityGenres(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.strategyFor(ctx, c).QualityGenres(ctx)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, rows)
}

// GenreRanking GET /api/analytics/genre-ranking Q6
func (h *Handler) GenreRanking(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.strategyFor(ctx, c).GenreRanking(ctx)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, rows)
}

// Breakouts GET /api/analytics/breakouts Q7
func (h *Handler) Breakouts(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.strategyFor(ctx, c).Breakouts(ctx)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, rows)
}

// DirectorGenres GET /api/analytics/director-genres Q8
func (h *Handler) DirectorGenres(c *gin.Context) {
	name, ok := requireName(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	rows, err := h.strategyFor(ctx, c).DirectorGenres(ctx, name)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}
	utils.Success(c, rows)
}
