package api

import (
	"context"
	"fmt"
	"net/http"

	"projectledger/config"
	"projectledger/logger"
	"projectledger/models"
	"projectledger/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	cfg    *config.Config
	export *service.ExportService
}

// NewExportHandler 创建导出处理器
func NewExportHandler(cfg *config.Config, export *service.ExportService) *ExportHandler {
	return &ExportHandler{cfg: cfg, export: export}
}

// ExportExcel 导出项目支出为 Excel
// @Summary 导出 Excel
// @Description 两列（Description, Amount），与详情页相同的可见性规则
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "项目ID"
// @Success 200 {file} file "xlsx 文件"
// @Failure 404 {string} string "项目不存在"
// @Router /export_excel/{id} [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	h.download(c, h.export.Spreadsheet)
}

// ExportPDF 导出项目支出为 PDF
// @Summary 导出 PDF
// @Description 标题加每条支出一行，与详情页相同的可见性规则
// @Tags 导出
// @Produce application/pdf
// @Param id path int true "项目ID"
// @Success 200 {file} file "pdf 文件"
// @Failure 404 {string} string "项目不存在"
// @Router /export_pdf/{id} [get]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.download(c, h.export.Document)
}

type exporter func(ctx context.Context, caller models.Session, projectID uint) (*service.Artifact, error)

func (h *ExportHandler) download(c *gin.Context, build exporter) {
	id, err := projectID(c)
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}
	caller := sessionOf(c)

	artifact, err := build(c.Request.Context(), caller, id)
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}

	logger.FromContext(c.Request.Context()).Info().
		Uint("project_id", id).
		Str("file", artifact.Filename).
		Int("bytes", len(artifact.Body)).
		Msg("导出完成")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}
