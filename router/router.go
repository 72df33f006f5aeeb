package router

import (
	"context"

	"projectledger/api"
	"projectledger/config"
	_ "projectledger/docs"
	"projectledger/logger"
	"projectledger/middleware"
	"projectledger/service"
	"projectledger/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps 路由依赖，启动时构造一次
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Services *service.Services
	Log      *logger.Logger
}

// SetupRouter 设置路由
// ctx 结束时登录限流的后台清理协程随之退出
func SetupRouter(ctx context.Context, deps Deps) *gin.Engine {
	cfg := deps.Config

	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	// 只信任配置的代理，否则 X-Forwarded-For 可以绕过登录限流
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		deps.Log.Warn().Err(err).Msg("trusted_proxies 无效，不信任任何代理")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestLogger(deps.Log), gin.Recovery())
	r.SetHTMLTemplate(web.MustTemplates())
	r.StaticFS("/static", web.Static())

	sessions := middleware.NewSessionManager(cfg)
	authHandler := api.NewAuthHandler(cfg, deps.Services.Users, sessions)
	dashboardHandler := api.NewDashboardHandler(cfg, deps.Services.Users, deps.Services.Projects)
	projectHandler := api.NewProjectHandler(cfg, deps.Services)
	exportHandler := api.NewExportHandler(cfg, deps.Services.Export)
	healthHandler := api.NewHealthHandler(deps.DB)

	r.GET("/", authHandler.Index)
	r.GET("/health", healthHandler.Health)
	r.GET("/logout", authHandler.Logout)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 登录与注册（已登录访问表单页时跳转仪表盘）
	guest := middleware.RedirectIfAuthenticated(sessions)
	r.GET("/login", guest, authHandler.LoginPage)
	r.POST("/login", middleware.LoginRateLimit(ctx, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow), authHandler.Login)
	r.GET("/register", guest, authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)

	// 需要登录
	authed := r.Group("/", middleware.SessionAuth(sessions))
	{
		authed.GET("/dashboard", dashboardHandler.Dashboard)

		authed.GET("/project/:id", projectHandler.Detail)
		authed.POST("/project/:id/expense", projectHandler.AddExpense)
		authed.POST("/project/:id/report", projectHandler.AddReport)

		authed.GET("/export_excel/:id", exportHandler.ExportExcel)
		authed.GET("/export_pdf/:id", exportHandler.ExportPDF)

		// 管理员操作
		admin := authed.Group("/", middleware.RequireAdmin())
		admin.POST("/add_project", dashboardHandler.AddProject)
		admin.POST("/add_user", dashboardHandler.AddUser)
	}

	return r
}
