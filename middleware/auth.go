package middleware

import (
	"errors"
	"net/http"

	"projectledger/logger"
	"projectledger/models"

	"github.com/gin-gonic/gin"
)

const (
	// LoginPath 未登录时的跳转地址
	LoginPath = "/login"
	// DashboardPath 登录后的首页
	DashboardPath = "/dashboard"
	// ForbiddenRedirect 权限不足时的跳转地址，仪表盘据此显示提示
	ForbiddenRedirect = "/dashboard?error=forbidden"

	sessionContextKey = "session"
)

// SessionAuth 会话校验中间件
// 会话有效时写入上下文，否则跳转登录页（无效 Cookie 同时被清除）
func SessionAuth(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := m.FromRequest(c)
		if err != nil {
			if !errors.Is(err, http.ErrNoCookie) {
				logger.FromContext(c.Request.Context()).Debug().Err(err).Msg("清除无效会话")
				m.Clear(c)
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(sessionContextKey, s)
		c.Next()
	}
}

// RequireAdmin 管理员操作校验，需在 SessionAuth 之后使用
// 非管理员不执行操作，跳转回仪表盘并提示权限不足
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := CurrentSession(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if !s.IsAdmin() {
			logger.FromContext(c.Request.Context()).Warn().
				Uint("user_id", s.UserID).
				Str("path", c.Request.URL.Path).
				Msg("权限不足")
			c.Redirect(http.StatusSeeOther, ForbiddenRedirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated 已登录用户访问登录/注册页时直接进入仪表盘
func RedirectIfAuthenticated(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := m.FromRequest(c); err == nil {
			c.Redirect(http.StatusFound, DashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession 获取 SessionAuth 写入的会话
func CurrentSession(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	return s, ok
}
