package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"projectledger/config"
	"projectledger/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession 会话 Cookie 缺失、过期或签名不正确
var ErrInvalidSession = errors.New("会话无效或已过期")

// SessionClaims 会话 Cookie 中的 JWT 声明
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager 签发、解析和清除会话 Cookie
type SessionManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

// NewSessionManager 根据配置创建会话管理器
// release 模式下 Cookie 仅通过 HTTPS 传输
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		secret:     []byte(cfg.Session.Secret),
		ttl:        cfg.Session.ExpireTime,
		cookieName: cfg.Session.CookieName,
		secure:     cfg.IsRelease(),
		now:        time.Now,
	}
}

// CookieName 会话 Cookie 名称
func (m *SessionManager) CookieName() string {
	return m.cookieName
}

// Sign 生成会话 token
func (m *SessionManager) Sign(s models.Session) (string, error) {
	now := m.now()
	claims := SessionClaims{
		UserID:   s.UserID,
		Username: s.Username,
		Role:     s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", s.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse 校验 token 并还原会话
func (m *SessionManager) Parse(tokenString string) (models.Session, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return models.Session{}, ErrInvalidSession
	}
	if claims.UserID == 0 || !models.IsValidRole(claims.Role) {
		return models.Session{}, ErrInvalidSession
	}
	return models.Session{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// Issue 登录成功后写入会话 Cookie
func (m *SessionManager) Issue(c *gin.Context, s models.Session) error {
	token, err := m.Sign(s)
	if err != nil {
		return fmt.Errorf("签发会话失败: %w", err)
	}
	c.SetCookieData(&http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear 删除会话 Cookie
func (m *SessionManager) Clear(c *gin.Context) {
	c.SetCookieData(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest 读取并校验请求中的会话 Cookie
// 没有 Cookie 时返回 http.ErrNoCookie
func (m *SessionManager) FromRequest(c *gin.Context) (models.Session, error) {
	value, err := c.Cookie(m.cookieName)
	if err != nil {
		return models.Session{}, err
	}
	return m.Parse(value)
}
