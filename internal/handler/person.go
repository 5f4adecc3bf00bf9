package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/cineexplorer/internal/utils"
)

// SearchPersons GET /api/persons/search 按姓名搜索人物
func (h *Handler) SearchPersons(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		utils.BadRequest(c, "缺少搜索关键词")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	persons, err := h.Repos.Person.Search(keyword, limit)
	if err != nil {
		utils.InternalServerError(c, "搜索失败")
		return
	}
	utils.Success(c, persons)
}

// PersonDetail GET /api/persons/:id 人物详情与按类别分组的作品列表
func (h *Handler) PersonDetail(c *gin.Context) {
	pid := c.Param("id")
	detail, err := h.Repos.Person.Detail(pid)
	if err != nil {
		utils.InternalServerError(c, "查询人物详情失败")
		return
	}
	if detail == nil {
		utils.NotFound(c, "人物不存在")
		return
	}
	filmography, err := h.Repos.Person.Filmography(pid)
	if err != nil {
		utils.InternalServerError(c, "查询作品列表失败")
		return
	}
	utils.Success(c, gin.H{
		"person":      detail,
		"filmography": filmography,
	})
}
