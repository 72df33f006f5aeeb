package api

import (
	"net/http"

	"projectledger/config"
	"projectledger/logger"
	"projectledger/middleware"
	"projectledger/models"
	"projectledger/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘与管理员操作
type DashboardHandler struct {
	cfg      *config.Config
	users    *service.UserService
	projects *service.ProjectService
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(cfg *config.Config, users *service.UserService, projects *service.ProjectService) *DashboardHandler {
	return &DashboardHandler{cfg: cfg, users: users, projects: projects}
}

// ProjectForm 新建项目表单
type ProjectForm struct {
	Name string `form:"name" example:"Renovation"`
}

// UserForm 管理员新建用户表单
type UserForm struct {
	Username string `form:"username" example:"bob"`
	Password string `form:"password" example:"password123"`
	Role     string `form:"role" example:"member"`
}

// dashboardFlash 仪表盘提示，来自跳转时的查询参数
var (
	dashboardErrors = map[string]string{
		"forbidden": "权限不足，仅管理员可执行该操作",
	}
	dashboardFlash = map[string]string{
		"project": "项目已创建",
		"user":    "用户已创建",
	}
)

// Dashboard 项目列表
// @Summary 仪表盘
// @Description 列出全部项目；管理员额外显示新建项目和新建用户表单
// @Tags 项目
// @Produce html
// @Param error query string false "forbidden"
// @Param ok query string false "project|user"
// @Success 200 {string} string "仪表盘页面"
// @Success 302 "未登录跳转到 /login"
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	data := page(c, "仪表盘")
	data["Error"] = dashboardErrors[c.Query("error")]
	data["Flash"] = dashboardFlash[c.Query("ok")]
	h.render(c, http.StatusOK, data)
}

func (h *DashboardHandler) render(c *gin.Context, status int, data gin.H) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		handleError(c, h.cfg, err)
		return
	}
	data["Projects"] = projects
	data["Roles"] = models.GetRoles()
	c.HTML(status, "dashboard.html", data)
}

// formFailed 管理员表单失败：可回显的错误重新渲染仪表盘，其余交给 handleError
func (h *DashboardHandler) formFailed(c *gin.Context, err error) {
	if !isFormError(err) {
		handleError(c, h.cfg, err)
		return
	}
	data := page(c, "仪表盘")
	data["Error"] = err.Error()
	h.render(c, statusFor(err), data)
}

// AddProject 新建项目（管理员）
// @Summary 新建项目
// @Tags 项目
// @Accept x-www-form-urlencoded
// @Produce html
// @Param name formData string true "项目名称"
// @Success 303 "创建成功，跳转到 /dashboard"
// @Failure 400 {string} string "项目名称为空"
// @Router /add_project [post]
func (h *DashboardHandler) AddProject(c *gin.Context) {
	caller := sessionOf(c)
	var form ProjectForm
	if err := bindForm(c, &form); err != nil {
		h.formFailed(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), caller, form.Name)
	if err != nil {
		h.formFailed(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info().Uint("project_id", project.ID).Msg("新建项目")
	seeOther(c, middleware.DashboardPath+"?ok=project")
}

// AddUser 新建用户（管理员）
// @Summary 新建用户
// @Tags 用户
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param role formData string false "角色 member|admin"
// @Success 303 "创建成功，跳转到 /dashboard"
// @Failure 400 {string} string "参数错误"
// @Failure 409 {string} string "用户名已存在"
// @Router /add_user [post]
func (h *DashboardHandler) AddUser(c *gin.Context) {
	caller := sessionOf(c)
	var form UserForm
	if err := bindForm(c, &form); err != nil {
		h.formFailed(c, err)
		return
	}

	if _, err := h.users.CreateUserAsAdmin(c.Request.Context(), caller, form.Username, form.Password, form.Role); err != nil {
		h.formFailed(c, err)
		return
	}
	seeOther(c, middleware.DashboardPath+"?ok=user")
}
