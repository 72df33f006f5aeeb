package service

import (
	"projectledger/config"
	"projectledger/logger"

	"gorm.io/gorm"
)

// Services 所有业务服务，启动时构造一次后注入到处理器
type Services struct {
	Users    *UserService
	Projects *ProjectService
	Ledger   *LedgerService
	Reports  *ReportService
	Export   *ExportService
}

// New 基于同一个连接池构造全部服务
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger) *Services {
	projects := NewProjectService(db, log)
	ledger := NewLedgerService(db, log, projects)
	return &Services{
		Users:    NewUserService(db, log, cfg.Auth.AllowAdminRegistration),
		Projects: projects,
		Ledger:   ledger,
		Reports:  NewReportService(db, log, projects),
		Export:   NewExportService(cfg.Export, log, projects, ledger),
	}
}
