package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"projectledger/config"
	"projectledger/database/dbtest"
	"projectledger/logger"
	"projectledger/middleware"
	"projectledger/models"
	"projectledger/service"
	"projectledger/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv 内存数据库 + 一个项目、一个管理员、两个普通成员
type testEnv struct {
	cfg      *config.Config
	db       *gorm.DB
	svc      *service.Services
	sessions *middleware.SessionManager
	admin    models.Session
	alice    models.Session
	bob      models.Session
	project  *models.Project
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Session: config.SessionConfig{
			Secret:     "test-session-secret",
			ExpireTime: time.Hour,
			CookieName: "projectledger_session",
		},
		Auth:   config.AuthConfig{AllowAdminRegistration: true},
		Export: config.ExportConfig{Title: "Expense report"},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	cfg := testConfig()
	db := dbtest.Open(t)
	svc := service.New(db, cfg, logger.Nop())

	_, err := svc.Users.EnsureBootstrapAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	admin, err := svc.Users.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	alice, err := svc.Users.Register(ctx, "alice", "secret-a", "")
	require.NoError(t, err)
	bob, err := svc.Users.Register(ctx, "bob", "secret-b", "")
	require.NoError(t, err)

	env := &testEnv{
		cfg:      cfg,
		db:       db,
		svc:      svc,
		sessions: middleware.NewSessionManager(cfg),
		admin:    models.SessionFor(admin),
		alice:    models.SessionFor(alice),
		bob:      models.SessionFor(bob),
	}
	env.project, err = svc.Projects.Create(ctx, env.admin, "Renovation")
	require.NoError(t, err)
	return env
}

// engine 加载模板的空路由
func (e *testEnv) engine() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	return r
}

// authed 需要登录的路由组
func (e *testEnv) authed(r *gin.Engine) *gin.RouterGroup {
	return r.Group("/", middleware.SessionAuth(e.sessions))
}

// do 发送请求；form 非空时按表单提交，as 非空时带上会话 Cookie
func (e *testEnv) do(t *testing.T, r http.Handler, method, path string, form url.Values, as *models.Session) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if as != nil {
		token, err := e.sessions.Sign(*as)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: e.sessions.CookieName(), Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sessionCookie 响应中写入的会话 Cookie
func (e *testEnv) sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == e.sessions.CookieName() {
			return c
		}
	}
	return nil
}
