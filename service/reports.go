package service

import (
	"context"
	"fmt"
	"strings"

	"projectledger/logger"
	"projectledger/models"

	"gorm.io/gorm"
)

const maxReportLen = 10000

// ReportService 项目报告日志（只追加）
type ReportService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects *ProjectService
}

// NewReportService 创建报告服务
func NewReportService(db *gorm.DB, log *logger.Logger, projects *ProjectService) *ReportService {
	return &ReportService{db: db, log: log, projects: projects}
}

// Add 追加一条报告
func (s *ReportService) Add(ctx context.Context, caller models.Session, projectID uint, content string) (*models.Report, error) {
	if err := s.projects.exists(ctx, projectID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("报告内容不能为空")
	}
	if len([]rune(content)) > maxReportLen {
		return nil, invalid(fmt.Sprintf("报告内容不能超过 %d 个字符", maxReportLen))
	}

	report := models.Report{
		ProjectID: projectID,
		UserID:    caller.UserID,
		Content:   content,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("创建报告失败: %w", err)
	}
	s.log.Debug().Uint("report_id", report.ID).Uint("project_id", projectID).Uint("user_id", caller.UserID).Msg("报告已记录")
	return &report, nil
}

// List 返回调用者可见的报告，可见性规则同支出
func (s *ReportService) List(ctx context.Context, projectID uint, caller models.Session) ([]models.ReportLine, error) {
	lines := make([]models.ReportLine, 0)
	query := s.db.WithContext(ctx).Model(&models.Report{}).
		Select("reports.*, users.username AS author_name").
		Joins("LEFT JOIN users ON reports.user_id = users.id").
		Where("reports.project_id = ?", projectID)

	if !caller.IsAdmin() {
		query = query.Where("reports.user_id = ?", caller.UserID)
	}

	if err := query.Order("reports.id ASC").Scan(&lines).Error; err != nil {
		return nil, fmt.Errorf("查询报告失败: %w", err)
	}
	return lines, nil
}
