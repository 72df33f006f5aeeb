package service

import (
	"context"
	"fmt"
	"strings"

	"projectledger/database"
	"projectledger/logger"
	"projectledger/models"

	"gorm.io/gorm"
)

const maxProjectNameLen = 100

// ProjectService 项目登记
type ProjectService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewProjectService 创建项目服务
func NewProjectService(db *gorm.DB, log *logger.Logger) *ProjectService {
	return &ProjectService{db: db, log: log}
}

// Create 新建项目，仅管理员可用
func (s *ProjectService) Create(ctx context.Context, caller models.Session, name string) (*models.Project, error) {
	if !caller.IsAdmin() {
		s.log.Warn().Uint("user_id", caller.UserID).Msg("非管理员尝试创建项目")
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("项目名称不能为空")
	}
	if len([]rune(name)) > maxProjectNameLen {
		return nil, invalid(fmt.Sprintf("项目名称不能超过 %d 个字符", maxProjectNameLen))
	}

	project := models.Project{Name: name}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, fmt.Errorf("创建项目失败: %w", err)
	}
	s.log.Info().Uint("project_id", project.ID).Uint("user_id", caller.UserID).Msg("项目已创建")
	return &project, nil
}

// List 按创建顺序返回全部项目
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	return projects, nil
}

// Get 查询单个项目
func (s *ProjectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	return &project, nil
}

// exists 项目是否存在
func (s *ProjectService) exists(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("查询项目失败: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
