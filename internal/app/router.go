package app

import (
	"slp_caseload_backend/docs"
	"slp_caseload_backend/internal/config"
	"slp_caseload_backend/internal/middleware"
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerCaseloadRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerCaseloadRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// caseload
	rg.POST("/students", c.student.CreateStudent)
	rg.GET("/students", c.student.ListStudents)
	rg.GET("/students/summary", c.student.GetCaseloadSummary)
	rg.GET("/students/:id", c.student.GetStudent)
	rg.PUT("/students/:id", c.student.UpdateStudent)
	rg.DELETE("/students/:id", c.student.DeleteStudent)

	// goals
	rg.POST("/students/:id/goals", c.goal.CreateGoal)
	rg.GET("/students/:id/goals", c.goal.ListGoals)
	rg.GET("/students/:id/goals/hierarchy", c.goal.GetHierarchy)
	rg.GET("/goals/:goalId", c.goal.GetGoal)
	rg.PUT("/goals/:goalId", c.goal.UpdateGoal)
	rg.DELETE("/goals/:goalId", c.goal.DeleteGoal)
	rg.GET("/goals/:goalId/progress", c.goal.GetGoalProgress)

	// session logs
	rg.POST("/students/:id/sessions", c.session.CreateSession)
	rg.GET("/students/:id/sessions", c.session.ListSessions)
	rg.GET("/sessions/:sessionId", c.session.GetSession)
	rg.PUT("/sessions/:sessionId", c.session.UpdateSession)
	rg.DELETE("/sessions/:sessionId", c.session.DeleteSession)

	// weekly schedule
	rg.POST("/schedule", c.schedule.CreateSlot)
	rg.GET("/schedule", c.schedule.ListSlots)
	rg.GET("/schedule/week", c.schedule.GetWeekView)
	rg.PUT("/schedule/:slotId", c.schedule.UpdateSlot)
	rg.DELETE("/schedule/:slotId", c.schedule.DeleteSlot)

	// directory
	rg.POST("/schools", c.directory.CreateSchool)
	rg.GET("/schools", c.directory.ListSchools)
	rg.PUT("/schools/:id", c.directory.UpdateSchool)
	rg.DELETE("/schools/:id", c.directory.DeleteSchool)
	rg.POST("/contacts", c.directory.CreateContact)
	rg.GET("/contacts", c.directory.ListContacts)
	rg.PUT("/contacts/:id", c.directory.UpdateContact)
	rg.DELETE("/contacts/:id", c.directory.DeleteContact)

	// communications
	rg.POST("/students/:id/communications", c.communication.CreateCommunication)
	rg.GET("/students/:id/communications", c.communication.ListCommunications)
	rg.GET("/communications/follow-ups", c.communication.ListFollowUps)
	rg.PUT("/communications/:commId", c.communication.UpdateCommunication)
	rg.DELETE("/communications/:commId", c.communication.DeleteCommunication)
	rg.POST("/communications/:commId/attachment", c.communication.AttachFile)

	// progress reports
	rg.GET("/students/:id/reports", c.report.ListStudentReports)
	rg.POST("/students/:id/reports/schedule", c.report.RescheduleStudent)
	rg.GET("/reports", c.report.ListReports)
	rg.GET("/reports/quarters", c.report.GetSchoolYearQuarters)
	rg.PATCH("/reports/:reportId/complete", c.report.CompleteReport)

	// export
	rg.GET("/export/caseload.csv", c.export.ExportCaseloadCSV)
	rg.GET("/students/:id/export", c.export.ExportStudentRecord)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/reports/refresh-overdue", c.report.RefreshOverdue)
		admin.POST("/backup", c.export.CreateBackup)
		admin.POST("/backup/restore", c.export.RestoreBackup)
	}
}
