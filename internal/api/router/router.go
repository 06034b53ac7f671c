package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"softdesk/internal/api/handler"
	"softdesk/internal/api/middleware"
	"softdesk/internal/pkg/config"
	"softdesk/internal/repository"
	"softdesk/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 获取数据库连接
	db := cfg.DB.(*gorm.DB)

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 初始化Service
	authz := service.NewAuthorizationService(contributorRepo)
	ldapService := service.NewLDAPService(&cfg.Auth.LDAP)
	authService := service.NewAuthService(&cfg.Auth, userRepo, ldapService)
	projectService := service.NewProjectService(db, projectRepo, userRepo, authz)
	contributorService := service.NewContributorService(contributorRepo, projectRepo, userRepo, authz)
	issueService := service.NewIssueService(issueRepo, projectRepo, contributorRepo, authz)
	commentService := service.NewCommentService(commentRepo, issueRepo, projectRepo, authz)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	contributorHandler := handler.NewContributorHandler(contributorService)
	issueHandler := handler.NewIssueHandler(issueService)
	commentHandler := handler.NewCommentHandler(commentService)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证相关(无需token)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		// 需要认证的路由
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			// 认证信息
			authed.GET("/auth/me", authHandler.GetMe)

			// 项目管理
			projects := authed.Group("/projects")
			{
				projects.POST("", projectHandler.Create)              // 创建项目
				projects.GET("", projectHandler.List)                 // 可见项目列表
				projects.GET("/:project_id", projectHandler.Get)      // 获取详情
				projects.PUT("/:project_id", projectHandler.Update)   // 更新项目
				projects.PATCH("/:project_id", projectHandler.Update) // 部分更新
				projects.DELETE("/:project_id", projectHandler.Delete)

				// 贡献者管理(项目附属资源)
				projects.GET("/:project_id/users", contributorHandler.List)
				projects.POST("/:project_id/users", contributorHandler.Create)
				projects.GET("/:project_id/users/:user_id", contributorHandler.Get)
				projects.PUT("/:project_id/users/:user_id", contributorHandler.Update)
				projects.PATCH("/:project_id/users/:user_id", contributorHandler.Update)
				projects.DELETE("/:project_id/users/:user_id", contributorHandler.Delete)

				// 问题管理
				projects.GET("/:project_id/issues", issueHandler.List)
				projects.POST("/:project_id/issues", issueHandler.Create)
				projects.GET("/:project_id/issues/:issue_id", issueHandler.Get)
				projects.PUT("/:project_id/issues/:issue_id", issueHandler.Update)
				projects.PATCH("/:project_id/issues/:issue_id", issueHandler.Update)
				projects.DELETE("/:project_id/issues/:issue_id", issueHandler.Delete)

				// 评论管理
				projects.GET("/:project_id/issues/:issue_id/comments", commentHandler.List)
				projects.POST("/:project_id/issues/:issue_id/comments", commentHandler.Create)
				projects.GET("/:project_id/issues/:issue_id/comments/:comment_id", commentHandler.Get)
				projects.PUT("/:project_id/issues/:issue_id/comments/:comment_id", commentHandler.Update)
				projects.PATCH("/:project_id/issues/:issue_id/comments/:comment_id", commentHandler.Update)
				projects.DELETE("/:project_id/issues/:issue_id/comments/:comment_id", commentHandler.Delete)
			}
		}
	}

	return r
}
