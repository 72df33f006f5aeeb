package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projectledger/config"
	"projectledger/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(mode string) *SessionManager {
	return NewSessionManager(&config.Config{
		Server: config.ServerConfig{Mode: mode},
		Session: config.SessionConfig{
			Secret:     "test-session-secret",
			ExpireTime: time.Hour,
			CookieName: "projectledger_session",
		},
	})
}

var alice = models.Session{UserID: 2, Username: "alice", Role: models.RoleMember}

func TestSessionManager_SignAndParse(t *testing.T) {
	m := newTestSessionManager("debug")

	token, err := m.Sign(alice)
	require.NoError(t, err)
	assert.Greater(t, len(token), 20)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestSessionManager_ParseRejects(t *testing.T) {
	m := newTestSessionManager("debug")

	// 空字符串与无效格式
	_, err := m.Parse("")
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = m.Parse("not.a.valid.jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)

	// 其他密钥签发
	other := newTestSessionManager("debug")
	other.secret = []byte("another-secret")
	token, err := other.Sign(alice)
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// 已过期
	expired := newTestSessionManager("debug")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err = expired.Sign(alice)
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// alg=none
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{UserID: 1, Username: "admin", Role: models.RoleAdmin})
	token, err = unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// 未知角色
	token, err = m.Sign(models.Session{UserID: 3, Username: "eve", Role: "root"})
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManager_IssueCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		mode   string
		secure bool
	}{
		{"debug", false},
		{"release", true},
	} {
		m := newTestSessionManager(tc.mode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/login", nil)

		require.NoError(t, m.Issue(c, alice))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		ck := cookies[0]
		assert.Equal(t, "projectledger_session", ck.Name)
		assert.True(t, ck.HttpOnly)
		assert.Equal(t, tc.secure, ck.Secure, tc.mode)
		assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
		assert.Equal(t, 3600, ck.MaxAge)

		got, err := m.Parse(ck.Value)
		require.NoError(t, err)
		assert.Equal(t, alice, got)
	}
}

func TestSessionManager_Clear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestSessionManager("debug")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/logout", nil)

	m.Clear(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
