package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/repository"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/service"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

type ExerciseController struct {
	Service *service.ExerciseService
}

func NewExerciseController(svc *service.ExerciseService) *ExerciseController {
	return &ExerciseController{Service: svc}
}

// @Summary Liste des exercices
// @Tags Exercices
// @Produce json
// @Param subject query string false "Slug de la matière"
// @Param level query string false "Niveau scolaire"
// @Param difficulty query string false "Difficulté (easy, medium, hard)"
// @Success 200 {object} util.Response
// @Router /api/exercises [get]
func (c *ExerciseController) List(ctx *gin.Context) {
	filter := repository.ExerciseFilter{
		SubjectSlug: ctx.Query("subject"),
		Level:       ctx.Query("level"),
		Difficulty:  ctx.Query("difficulty"),
	}

	exercises, err := c.Service.List(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exercises)
}

// @Summary Détail d'un exercice (sans la correction)
// @Tags Exercices
// @Produce json
// @Param id path int true "ID de l'exercice"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id} [get]
func (c *ExerciseController) Get(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	exercise, err := c.Service.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exercise)
}

// @Summary Soumettre une réponse
// @Tags Exercices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de l'exercice"
// @Param body body service.SubmitRequest true "Réponse de l'élève"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id}/submit [post]
func (c *ExerciseController) Submit(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.Service.Submit(claims.UserID, id, req)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Historique de mes tentatives
// @Tags Exercices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/exercises/attempts/my [get]
func (c *ExerciseController) MyAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.Service.MyAttempts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
