package api

import (
	"net/http"

	"projectledger/logger"
	"projectledger/middleware"
	"projectledger/models"
	"projectledger/service"

	"github.com/gin-gonic/gin"
)

// page 页面公共数据：标题、当前会话、错误与提示
// 未登录时 Session 为 nil，模板据此隐藏用户栏
func page(c *gin.Context, title string) gin.H {
	var session *models.Session
	if s, ok := middleware.CurrentSession(c); ok {
		session = &s
	}
	return gin.H{
		"Title":    title,
		"Session":  session,
		"Error":    "",
		"Flash":    "",
		"Username": "",
	}
}

// bindForm 绑定表单，无法解析时返回可回显的参数错误
func bindForm(c *gin.Context, form any) error {
	if err := c.ShouldBind(form); err != nil {
		logger.FromContext(c.Request.Context()).Debug().Err(err).Str("path", c.Request.URL.Path).Msg("表单解析失败")
		return service.ErrMalformedForm
	}
	return nil
}

// errorPage 渲染错误页
func errorPage(c *gin.Context, status int, message string) {
	data := page(c, http.StatusText(status))
	data["Status"] = status
	data["Message"] = message
	c.HTML(status, "error.html", data)
}

// seeOther 表单提交成功后跳转（POST → GET）
func seeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
