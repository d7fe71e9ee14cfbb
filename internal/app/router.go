package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/config"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/middleware"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		api.GET("/subjects", c.content.ListSubjects)
		api.GET("/lessons", c.content.ListLessons)
		api.GET("/lessons/:id", c.content.GetLesson)
		api.GET("/exercises", c.exercise.List)
		api.GET("/exercises/:id", c.exercise.Get)
		api.GET("/quizzes", c.quiz.List)
		api.GET("/quizzes/:id", c.quiz.Get)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authed.GET("/profile", c.auth.Me)

		authed.GET("/exercises/attempts/my", c.exercise.MyAttempts)
		authed.POST("/exercises/:id/submit", c.exercise.Submit)

		authed.POST("/quizzes/:id/start", c.quiz.Start)
		authed.POST("/quizzes/:id/submit", c.quiz.Submit)

		authed.POST("/ai/chat", c.ai.Chat)
		authed.POST("/ai/generate-exercise", c.ai.Generate)
		authed.GET("/ai/generations", c.ai.History)

		authed.POST("/lessons/:id/video", middleware.RoleMiddleware(model.Teacher), c.content.UploadLessonVideo)
	}
}
