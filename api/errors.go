package api

import (
	"errors"
	"net/http"

	"projectledger/config"
	"projectledger/logger"
	"projectledger/middleware"
	"projectledger/service"

	"github.com/gin-gonic/gin"
)

// statusFor 业务错误对应的 HTTP 状态码，未识别的错误一律 500
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// isFormError 可以在原表单上回显的错误
func isFormError(err error) bool {
	switch statusFor(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusConflict:
		return true
	}
	return false
}

// handleError 处理无法回显到表单的错误
// 权限不足跳转仪表盘，不存在渲染 404，其余按 500 处理且不重试
func handleError(c *gin.Context, cfg *config.Config, err error) {
	switch status := statusFor(err); status {
	case http.StatusForbidden:
		c.Redirect(http.StatusSeeOther, middleware.ForbiddenRedirect)
	case http.StatusInternalServerError:
		_ = c.Error(err)
		logger.FromContext(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("请求处理失败")
		errorPage(c, status, cfg.SafeErrorMessage(err, "服务器内部错误"))
	default:
		errorPage(c, status, err.Error())
	}
}
