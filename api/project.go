package api

import (
	"fmt"
	"net/http"
	"strconv"

	"projectledger/config"
	"projectledger/middleware"
	"projectledger/models"
	"projectledger/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler 项目详情、支出与报告
type ProjectHandler struct {
	cfg      *config.Config
	projects *service.ProjectService
	ledger   *service.LedgerService
	reports  *service.ReportService
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(cfg *config.Config, svc *service.Services) *ProjectHandler {
	return &ProjectHandler{cfg: cfg, projects: svc.Projects, ledger: svc.Ledger, reports: svc.Reports}
}

// ExpenseForm 新增支出表单，金额保留原始文本交给账本校验
type ExpenseForm struct {
	Description string `form:"description" example:"Paint"`
	Amount      string `form:"amount" example:"120.50"`
}

// ReportForm 新增报告表单
type ReportForm struct {
	Content string `form:"content" example:"Walls primed"`
}

// projectID 解析路径中的项目 ID，非法 ID 视为不存在
func projectID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, service.ErrNotFound
	}
	return uint(id), nil
}

func projectPath(id uint) string {
	return fmt.Sprintf("/project/%d", id)
}

// Detail 项目详情
// @Summary 项目详情
// @Description 显示调用者可见的支出（含记录人）、合计和报告；普通成员只看到自己的记录
// @Tags 项目
// @Produce html
// @Param id path int true "项目ID"
// @Success 200 {string} string "项目详情页"
// @Failure 404 {string} string "项目不存在"
// @Router /project/{id} [get]
func (h *ProjectHandler) Detail(c *gin.Context) {
	id, err := projectID(c)
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}
	h.render(c, http.StatusOK, id, "")
}

func (h *ProjectHandler) render(c *gin.Context, status int, id uint, errMsg string) {
	ctx := c.Request.Context()
	caller := sessionOf(c)

	project, err := h.projects.Get(ctx, id)
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}
	expenses, err := h.ledger.List(ctx, id, caller)
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}
	reports, err := h.reports.List(ctx, id, caller)
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}

	data := page(c, project.Name)
	data["Error"] = errMsg
	data["Project"] = project
	data["Expenses"] = expenses
	data["Total"] = service.Sum(expenses)
	data["Reports"] = reports
	c.HTML(status, "project.html", data)
}

// afterWrite 写入后的统一处理：成功跳回详情页，可回显的错误重新渲染详情页
func (h *ProjectHandler) afterWrite(c *gin.Context, id uint, err error) {
	switch {
	case err == nil:
		seeOther(c, projectPath(id))
	case isFormError(err):
		h.render(c, statusFor(err), id, err.Error())
	default:
		handleError(c, h.cfg, err)
	}
}

// AddExpense 新增支出
// @Summary 新增支出
// @Tags 支出
// @Accept x-www-form-urlencoded
// @Produce html
// @Param id path int true "项目ID"
// @Param description formData string true "描述"
// @Param amount formData string true "金额（非负数字）"
// @Success 303 "记录成功，跳转到项目详情"
// @Failure 400 {string} string "金额或描述无效"
// @Failure 404 {string} string "项目不存在"
// @Router /project/{id}/expense [post]
func (h *ProjectHandler) AddExpense(c *gin.Context) {
	id, err := projectID(c)
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}
	caller := sessionOf(c)
	var form ExpenseForm
	if err := bindForm(c, &form); err != nil {
		h.afterWrite(c, id, err)
		return
	}

	_, err = h.ledger.Add(c.Request.Context(), caller, id, form.Description, form.Amount)
	h.afterWrite(c, id, err)
}

// AddReport 新增报告
// @Summary 新增报告
// @Tags 报告
// @Accept x-www-form-urlencoded
// @Produce html
// @Param id path int true "项目ID"
// @Param content formData string true "报告内容"
// @Success 303 "提交成功，跳转到项目详情"
// @Failure 400 {string} string "内容为空"
// @Failure 404 {string} string "项目不存在"
// @Router /project/{id}/report [post]
func (h *ProjectHandler) AddReport(c *gin.Context) {
	id, err := projectID(c)
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}
	caller := sessionOf(c)
	var form ReportForm
	if err := bindForm(c, &form); err != nil {
		h.afterWrite(c, id, err)
		return
	}

	_, err = h.reports.Add(c.Request.Context(), caller, id, form.Content)
	h.afterWrite(c, id, err)
}

// sessionOf 当前会话，SessionAuth 之后一定存在
func sessionOf(c *gin.Context) models.Session {
	s, _ := middleware.CurrentSession(c)
	return s
}
