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

// AuthHandler 登录、注册、退出
type AuthHandler struct {
	cfg      *config.Config
	users    *service.UserService
	sessions *middleware.SessionManager
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config, users *service.UserService, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users, sessions: sessions}
}

// LoginForm 登录表单
type LoginForm struct {
	Username string `form:"username" example:"admin"`
	Password string `form:"password" example:"admin123"`
}

// RegisterForm 注册表单
type RegisterForm struct {
	Username string `form:"username" example:"alice"`
	Password string `form:"password" example:"password123"`
	Role     string `form:"role" example:"member"`
}

// loginFlash 登录页提示
var loginFlash = map[string]string{
	"registered": "注册成功，请登录",
}

// Index 首页：已登录进入仪表盘，否则进入登录页
// @Summary 首页跳转
// @Tags 页面
// @Success 302 "跳转到 /dashboard 或 /login"
// @Router / [get]
func (h *AuthHandler) Index(c *gin.Context) {
	if _, err := h.sessions.FromRequest(c); err == nil {
		c.Redirect(http.StatusFound, middleware.DashboardPath)
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// LoginPage 登录页
// @Summary 登录页
// @Tags 认证
// @Produce html
// @Success 200 {string} string "登录表单"
// @Router /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	data := page(c, "登录")
	data["Flash"] = loginFlash[c.Query("ok")]
	c.HTML(http.StatusOK, "login.html", data)
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验用户名和密码，成功后写入会话 Cookie 并跳转仪表盘
// @Tags 认证
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Success 303 "登录成功，跳转到 /dashboard"
// @Failure 401 {string} string "用户名或密码错误"
// @Failure 429 {string} string "登录尝试过于频繁"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := bindForm(c, &form); err != nil {
		h.loginFailed(c, form.Username, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.loginFailed(c, form.Username, err)
		return
	}

	if err := h.sessions.Issue(c, models.SessionFor(user)); err != nil {
		handleError(c, h.cfg, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info().Uint("user_id", user.ID).Msg("登录成功")
	seeOther(c, middleware.DashboardPath)
}

// loginFailed 重新渲染登录页并回显用户名
func (h *AuthHandler) loginFailed(c *gin.Context, username string, err error) {
	if !isFormError(err) {
		handleError(c, h.cfg, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info().Str("username", username).Msg("登录失败")
	data := page(c, "登录")
	data["Error"] = err.Error()
	data["Username"] = username
	c.HTML(statusFor(err), "login.html", data)
}

// registerRoles 注册页可选角色
func (h *AuthHandler) registerRoles() []string {
	if h.cfg.Auth.AllowAdminRegistration {
		return models.GetRoles()
	}
	return []string{models.RoleMember}
}

// RegisterPage 注册页
// @Summary 注册页
// @Tags 认证
// @Produce html
// @Success 200 {string} string "注册表单"
// @Router /register [get]
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	data := page(c, "注册")
	data["Roles"] = h.registerRoles()
	c.HTML(http.StatusOK, "register.html", data)
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建账号，默认角色为 member；可在配置中关闭管理员自助注册
// @Tags 认证
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param role formData string false "角色 member|admin"
// @Success 303 "注册成功，跳转到 /login"
// @Failure 400 {string} string "参数错误"
// @Failure 409 {string} string "用户名已存在"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := bindForm(c, &form); err != nil {
		h.registerFailed(c, form.Username, err)
		return
	}

	if _, err := h.users.Register(c.Request.Context(), form.Username, form.Password, form.Role); err != nil {
		h.registerFailed(c, form.Username, err)
		return
	}
	seeOther(c, middleware.LoginPath+"?ok=registered")
}

func (h *AuthHandler) registerFailed(c *gin.Context, username string, err error) {
	if !isFormError(err) {
		handleError(c, h.cfg, err)
		return
	}
	data := page(c, "注册")
	data["Roles"] = h.registerRoles()
	data["Error"] = err.Error()
	data["Username"] = username
	c.HTML(statusFor(err), "register.html", data)
}

// Logout 退出登录
// @Summary 退出登录
// @Tags 认证
// @Success 302 "清除会话并跳转到 /login"
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}
