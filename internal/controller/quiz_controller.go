package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/repository"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/service"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary Liste des quiz
// @Tags Quiz
// @Produce json
// @Param subject query string false "Slug de la matière"
// @Param level query string false "Niveau scolaire"
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	filter := repository.QuizFilter{
		SubjectSlug: ctx.Query("subject"),
		Level:       ctx.Query("level"),
	}

	quizzes, err := c.Service.List(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// @Summary Détail d'un quiz (sans les corrections)
// @Tags Quiz
// @Produce json
// @Param id path int true "ID du quiz"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	quiz, err := c.Service.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary Démarrer une tentative de quiz
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID du quiz"
// @Success 201 {object} util.Response
// @Router /api/quizzes/{id}/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.Service.Start(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary Soumettre une tentative de quiz
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID du quiz"
// @Param body body service.QuizSubmission true "Tentative et réponses de l'élève"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Tentative déjà terminée"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var submission service.QuizSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.Service.Submit(claims.UserID, quizID, submission)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAttemptAlreadyCompleted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
