package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user/cineexplorer/internal/utils"
)

// Stats GET /api/stats 站点统计总览
func (h *Handler) Stats(c *gin.Context) {
	overview, err := h.Catalog.Stats(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "查询统计数据失败")
		return
	}
	utils.Success(c, overview)
}

// TableCounts GET /api/stats/tables 各关系表行数
func (h *Handler) TableCounts(c *gin.Context) {
	counts, err := h.Repos.Stats.TableCounts()
	if err != nil {
		utils.InternalServerError(c, "查询表统计失败")
		return
	}
	utils.Success(c, counts)
}
