package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/service"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

type HealthController struct {
	DB        *gorm.DB
	Redis     *redis.Client
	AIService *service.AIService
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, aiService *service.AIService) *HealthController {
	return &HealthController{DB: db, Redis: rdb, AIService: aiService}
}

// @Summary Vérification de l'état du service
// @Tags Système
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	redisStatus := "up"
	if c.Redis == nil {
		redisStatus = "disabled"
	} else if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
		redisStatus = "down"
	}

	aiStatus := "configured"
	if !c.AIService.IsConfigured() {
		aiStatus = "not_configured"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"redis":    redisStatus,
			"ai":       aiStatus,
		},
	})
}
