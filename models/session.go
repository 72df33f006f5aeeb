package models

// Session 当前登录会话（来自已验证的会话 Cookie）
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin 会话是否具有管理员角色
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// SessionFor 根据用户构造会话
func SessionFor(u *User) Session {
	return Session{UserID: u.ID, Username: u.Username, Role: u.Role}
}
