package api

import (
	"context"
	"net/http"
	"time"

	"projectledger/database"
	"projectledger/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health 检查数据库连通性
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string "{"status":"ok"}"
// @Failure 503 {object} map[string]string "{"status":"unavailable"}"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("数据库不可用")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
