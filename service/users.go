package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"projectledger/database"
	"projectledger/logger"
	"projectledger/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt 上限
)

// UserService 账号存储与认证
type UserService struct {
	db                     *gorm.DB
	log                    *logger.Logger
	allowAdminRegistration bool
	// dummyHash 用户不存在时仍做一次比较，保持响应时间一致
	dummyHash []byte
}

// NewUserService 创建账号服务
func NewUserService(db *gorm.DB, log *logger.Logger, allowAdminRegistration bool) *UserService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("projectledger-dummy"), bcrypt.DefaultCost)
	return &UserService{
		db:                     db,
		log:                    log,
		allowAdminRegistration: allowAdminRegistration,
		dummyHash:              dummy,
	}
}

// Register 自助注册
// 关闭 allow_admin_registration 时只能注册普通成员
func (s *UserService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleMember
	}
	if role == models.RoleAdmin && !s.allowAdminRegistration {
		return nil, invalid("不允许自助注册管理员账号")
	}
	return s.create(ctx, username, password, role)
}

// CreateUserAsAdmin 管理员创建账号
func (s *UserService) CreateUserAsAdmin(ctx context.Context, caller models.Session, username, password, role string) (*models.User, error) {
	if !caller.IsAdmin() {
		s.log.Warn().Uint("user_id", caller.UserID).Msg("非管理员尝试创建用户")
		return nil, ErrForbidden
	}
	if role == "" {
		role = models.RoleMember
	}
	return s.create(ctx, username, password, role)
}

func (s *UserService) create(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if l := len([]rune(username)); l < minUsernameLen || l > maxUsernameLen {
		return nil, invalid(fmt.Sprintf("用户名长度需为 %d-%d 个字符", minUsernameLen, maxUsernameLen))
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return nil, invalid(fmt.Sprintf("密码长度需为 %d-%d 个字符", minPasswordLen, maxPasswordLen))
	}
	if !models.IsValidRole(role) {
		return nil, invalid("无效的角色")
	}

	// 加密密码
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			s.log.Info().Str("username", username).Msg("用户名已存在")
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	s.log.Info().Uint("user_id", user.ID).Str("role", role).Msg("用户已创建")
	return &user, nil
}

// Authenticate 校验用户名与密码
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.findByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get 按 ID 查询用户
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// EnsureBootstrapAdmin 首次启动时创建默认管理员，已存在则不做任何修改
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context, username, password string) (created bool, err error) {
	if _, err := s.findByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	if _, err := s.create(ctx, username, password, models.RoleAdmin); err != nil {
		// 并发启动时另一个实例可能已经创建
		if errors.Is(err, ErrDuplicateUsername) {
			return false, nil
		}
		return false, fmt.Errorf("创建默认管理员失败: %w", err)
	}
	s.log.Warn().Str("username", username).Msg("已创建默认管理员账号，请尽快修改默认密码")
	return true, nil
}

// SetPassword 重置密码（运维工具轮换默认管理员密码使用）
func (s *UserService) SetPassword(ctx context.Context, username, password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return invalid(fmt.Sprintf("密码长度需为 %d-%d 个字符", minPasswordLen, maxPasswordLen))
	}
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password_hash", string(hashed)).Error; err != nil {
		return fmt.Errorf("更新密码失败: %w", err)
	}
	s.log.Info().Uint("user_id", user.ID).Msg("密码已重置")
	return nil
}

func (s *UserService) findByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}
