package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/service"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

type AIController struct {
	AIService  *service.AIService
	Generation *service.GenerationService
}

func NewAIController(aiService *service.AIService, generation *service.GenerationService) *AIController {
	return &AIController{AIService: aiService, Generation: generation}
}

type chatRequest struct {
	Messages []service.AIChatMessage `json:"messages" binding:"required,min=1"`
}

// @Summary Discuter avec le tuteur IA
// @Tags IA
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body chatRequest true "Historique de la conversation"
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response "IA non configurée"
// @Router /api/ai/chat [post]
func (c *AIController) Chat(ctx *gin.Context) {
	var req chatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.AIService.Chat(ctx.Request.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, util.ErrAINotConfigured) {
			util.ServiceUnavailable(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"content": reply})
}

// @Summary Générer un exercice par IA
// @Tags IA
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.GenerateRequest true "Critères de génération"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response "Matière inconnue"
// @Failure 429 {object} util.Response "Quota journalier atteint"
// @Failure 503 {object} util.Response "IA non configurée"
// @Router /api/ai/generate-exercise [post]
func (c *AIController) Generate(ctx *gin.Context) {
	var req service.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	exercise, err := c.Generation.Generate(ctx.Request.Context(), claims.UserID, claims.Role, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrUnsupportedExerciseType):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAINotConfigured):
			util.ServiceUnavailable(ctx, err.Error())
		case errors.Is(err, util.ErrGenerationQuotaReached):
			util.Error(ctx, 429, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, exercise)
}

// @Summary Historique de mes générations
// @Tags IA
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Nombre maximum d'entrées"
// @Success 200 {object} util.Response
// @Router /api/ai/generations [get]
func (c *AIController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	limit := int(util.MustParseUint(ctx.Query("limit")))

	entries, err := c.Generation.History(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
