package handler

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/cineexplorer/internal/service"
	"github.com/user/cineexplorer/internal/utils"
)

// rebuildRunning 同一时刻只允许一次重建
var rebuildRunning atomic.Bool

// Rebuild POST /api/admin/rebuild 后台触发聚合存储全量重建
// 立即返回 202，进度写日志
func (h *Handler) Rebuild(c *gin.Context) {
	if !rebuildRunning.CompareAndSwap(false, true) {
		utils.Error(c, 409, "重建正在进行中")
		return
	}

	go func() {
		defer rebuildRunning.Store(false)

		// 与请求生命周期脱钩，重建在后台跑完
		written, err := h.Builder.Rebuild(context.Background(), func(p service.Progress) {
			log.Printf("[Rebuild] %d/%d (%.1f%%) %.0f 文档/秒 剩余约 %v",
				p.Processed, p.Total, p.Fraction*100, p.Rate, p.ETA.Round(time.Second))
		})
		if err != nil {
			log.Printf("[Rebuild] 重建失败: %v", err)
			return
		}
		log.Printf("[Rebuild] 重建成功，共 %d 份文档", written)
	}()

	c.JSON(202, utils.Response{Code: 202, Message: "重建已启动"})
}
