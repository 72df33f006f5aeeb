package models

// 角色常量
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// GetRoles 获取所有角色，顺序与注册页下拉框一致
func GetRoles() []string {
	return []string{RoleMember, RoleAdmin}
}

// IsValidRole 判断角色是否合法
func IsValidRole(role string) bool {
	for _, r := range GetRoles() {
		if r == role {
			return true
		}
	}
	return false
}
