package app

import (
	"institute_backend/docs"
	"institute_backend/internal/config"
	"institute_backend/internal/middleware"
	"institute_backend/internal/model"
	"institute_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/login", c.auth.Login)
	}

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerStaffRoutes(authGroup, c)
		a.registerManagementRoutes(authGroup, c)
	}
}

// 所有登录用户
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)

	rg.GET("/branches", c.branch.ListBranches)
	rg.GET("/subjects", c.subject.ListSubjects)
	rg.GET("/units", c.unit.ListUnits)
	rg.GET("/units/:id", c.unit.GetUnit)
	rg.GET("/questions", c.question.ListQuestions)

	rg.GET("/attendance", c.attendance.ListAttendance)
	rg.GET("/progress", c.progress.ListProgress)
	rg.PUT("/progress/student", c.progress.SetStudentCoverage)
	rg.POST("/quiz/submit", c.quiz.SubmitQuiz)
}

// 教师及以上
func (a *App) registerStaffRoutes(rg *gin.RouterGroup, c *controllers) {
	staff := rg.Group("")
	staff.Use(middleware.RoleMiddleware(model.HOD, model.Teacher))
	{
		staff.GET("/users", c.user.ListUsers)

		staff.POST("/units", c.unit.CreateUnit)
		staff.PUT("/units/:id", c.unit.UpdateUnit)
		staff.POST("/questions", c.question.CreateQuestion)

		staff.POST("/attendance", c.attendance.RecordAttendance)
		staff.POST("/progress", c.progress.SetTeacherCoverage)
		staff.PUT("/progress/:id", c.progress.UpdateCoverage)

		staff.POST("/reports/progress", c.report.ExportProgress)
	}
}

// 管理员和系主任
func (a *App) registerManagementRoutes(rg *gin.RouterGroup, c *controllers) {
	mgmt := rg.Group("")
	mgmt.Use(middleware.RoleMiddleware(model.HOD))
	{
		mgmt.POST("/users", c.user.CreateUser)
		mgmt.PUT("/users/:id", c.user.UpdateUser)

		mgmt.POST("/subjects", c.subject.CreateSubject)
		mgmt.PUT("/subjects/:id", c.subject.UpdateSubject)

		mgmt.GET("/analytics/branches", c.analytics.BranchStats)
		mgmt.GET("/analytics/attendance", c.analytics.AttendanceStats)
		mgmt.GET("/analytics/progress", c.analytics.ProgressStats)
	}

	admin := rg.Group("")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/branches", c.branch.CreateBranch)
		admin.PUT("/branches/:id", c.branch.UpdateBranch)
	}
}
