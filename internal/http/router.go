package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/langportal/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	perPage := cfg.DefaultPageSize

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")
	api.GET("/health", health.Status)

	dashboard := NewDashboardController(cfg.Dashboard)
	api.GET("/dashboard/last_study_session", dashboard.LastStudySession)
	api.GET("/dashboard/study_progress", dashboard.StudyProgress)
	api.GET("/dashboard/quick_stats", dashboard.QuickStats)

	wordsController := NewWordsController(cfg.Words, cfg.AuditLog, cfg.Analyzer, perPage)
	api.GET("/words", wordsController.List)
	api.POST("/words", wordsController.Create)
	api.GET("/words/:id", wordsController.Get)
	api.PUT("/words/:id", wordsController.Update)
	api.DELETE("/words/:id", wordsController.Delete)
	if cfg.Analyzer != nil {
		api.GET("/words/:id/analysis", wordsController.Analysis)
	}

	groupsController := NewGroupsController(cfg.Groups, cfg.Words, cfg.Sessions, cfg.AuditLog, perPage)
	api.GET("/groups", groupsController.List)
	api.POST("/groups", groupsController.Create)
	api.GET("/groups/:id", groupsController.Get)
	api.PUT("/groups/:id", groupsController.Update)
	api.DELETE("/groups/:id", groupsController.Delete)
	api.GET("/groups/:id/words", groupsController.Words)
	api.POST("/groups/:id/words", groupsController.AddWord)
	api.DELETE("/groups/:id/words/:word_id", groupsController.RemoveWord)
	api.GET("/groups/:id/study_sessions", groupsController.StudySessions)

	importController := NewImportController(cfg.Groups, cfg.TaskQueue, cfg.Importer, cfg.MaxImportBytes)
	api.POST("/groups/:id/import", importController.ImportGroupWords)

	sessionsController := NewSessionsController(cfg.Sessions, perPage)
	reviewsController := NewReviewsController(cfg.Reviews, perPage)
	api.GET("/study_sessions", sessionsController.List)
	api.POST("/study_sessions", sessionsController.Create)
	api.GET("/study_sessions/:id", sessionsController.Get)
	api.GET("/study_sessions/:id/words", sessionsController.Words)
	api.POST("/study_sessions/:id/words/:word_id/review", reviewsController.ReviewSessionWord)

	activitiesController := NewActivitiesController(cfg.Activities, cfg.Sessions, cfg.AuditLog, perPage)
	api.GET("/study_activities", activitiesController.List)
	api.POST("/study_activities", activitiesController.Create)
	api.GET("/study_activities/:id", activitiesController.Get)
	api.PUT("/study_activities/:id", activitiesController.Update)
	api.DELETE("/study_activities/:id", activitiesController.Delete)
	api.GET("/study_activities/:id/study_sessions", activitiesController.StudySessions)

	api.GET("/word_reviews", reviewsController.List)
	api.POST("/word_reviews", reviewsController.Create)
	api.GET("/word_reviews/:id", reviewsController.Get)
	api.DELETE("/word_reviews/:id", reviewsController.Delete)

	resetController := NewResetController(cfg.Reset, cfg.AuditLog)
	admin := api.Group("")
	if cfg.AdminGuard != nil {
		admin.Use(cfg.AdminGuard)
	}
	admin.POST("/reset_history", resetController.ResetHistory)
	admin.POST("/full_reset", resetController.FullReset)

	if cfg.AuditLog != nil {
		auditController := NewAuditController(cfg.AuditLog)
		api.GET("/audit/events", auditController.GetAuditEvents)
	}

	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
