package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"projectledger/logger"
	"projectledger/middleware"
	"projectledger/models"
	"projectledger/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) authRouter() *gin.Engine {
	h := NewAuthHandler(e.cfg, e.svc.Users, e.sessions)
	r := e.engine()
	r.GET("/", h.Index)
	r.GET("/login", middleware.RedirectIfAuthenticated(e.sessions), h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/register", middleware.RedirectIfAuthenticated(e.sessions), h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)
	return r
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	w := env.do(t, r, "POST", "/login", url.Values{"username": {"alice"}, "password": {"secret-a"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	ck := env.sessionCookie(w)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	s, err := env.sessions.Parse(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, env.alice, s)
}

func TestAuthHandler_LoginFailureDoesNotLeakReason(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	wrongPassword := env.do(t, r, "POST", "/login", url.Values{"username": {"alice"}, "password": {"nope-nope"}}, nil)
	unknownUser := env.do(t, r, "POST", "/login", url.Values{"username": {"mallory"}, "password": {"nope-nope"}}, nil)

	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknownUser} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "用户名或密码错误")
		assert.Nil(t, env.sessionCookie(w))
	}
	// 回显用户名
	assert.Contains(t, wrongPassword.Body.String(), `value="alice"`)
}

func TestAuthHandler_LoginPage(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	w := env.do(t, r, "GET", "/login?ok=registered", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/login"`)
	assert.Contains(t, w.Body.String(), "注册成功")

	// 已登录直接进入仪表盘
	w = env.do(t, r, "GET", "/login", nil, &env.alice)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestAuthHandler_Register(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	w := env.do(t, r, "POST", "/register", url.Values{"username": {"carol"}, "password": {"secret-c"}, "role": {"member"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?ok=registered", w.Header().Get("Location"))

	// 注册后可以登录，角色一致
	w = env.do(t, r, "POST", "/login", url.Values{"username": {"carol"}, "password": {"secret-c"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	s, err := env.sessions.Parse(env.sessionCookie(w).Value)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, s.Role)
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	w := env.do(t, r, "POST", "/register", url.Values{"username": {"alice"}, "password": {"another"}}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "用户名已存在")

	// 原账号不受影响
	_, err := env.svc.Users.Authenticate(t.Context(), "alice", "secret-a")
	assert.NoError(t, err)
}

func TestAuthHandler_RegisterAdmin(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	w := env.do(t, r, "GET", "/register", nil, nil)
	assert.Contains(t, w.Body.String(), `<option value="admin">`)

	w = env.do(t, r, "POST", "/register", url.Values{"username": {"eve"}, "password": {"secret-e"}, "role": {"admin"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	// 以注册时的角色登录
	w = env.do(t, r, "POST", "/login", url.Values{"username": {"eve"}, "password": {"secret-e"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	s, err := env.sessions.Parse(env.sessionCookie(w).Value)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, s.Role)
}

func TestAuthHandler_RegisterAdminDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Auth.AllowAdminRegistration = false
	env.svc = service.New(env.db, env.cfg, logger.Nop())
	r := env.authRouter()

	w := env.do(t, r, "POST", "/register", url.Values{"username": {"eve"}, "password": {"secret-e"}, "role": {"admin"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 注册页只提供 member
	w = env.do(t, r, "GET", "/register", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="member">`)
	assert.NotContains(t, w.Body.String(), `<option value="admin">`)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	w := env.do(t, r, "POST", "/register", url.Values{"username": {"dave"}, "password": {"123"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `value="dave"`)
}

func TestAuthHandler_LogoutAndIndex(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	w := env.do(t, r, "GET", "/", nil, nil)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	w = env.do(t, r, "GET", "/", nil, &env.alice)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = env.do(t, r, "GET", "/logout", nil, &env.alice)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	ck := env.sessionCookie(w)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}
