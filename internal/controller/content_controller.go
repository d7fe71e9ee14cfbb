package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/repository"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/service"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

type ContentController struct {
	Service *service.ContentService
}

func NewContentController(svc *service.ContentService) *ContentController {
	return &ContentController{Service: svc}
}

// @Summary Liste des matières
// @Tags Contenu
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *ContentController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.Service.ListSubjects(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// @Summary Liste des leçons
// @Tags Contenu
// @Produce json
// @Param subject query string false "Slug de la matière"
// @Param level query string false "Niveau scolaire"
// @Param search query string false "Recherche sur le titre"
// @Success 200 {object} util.Response
// @Router /api/lessons [get]
func (c *ContentController) ListLessons(ctx *gin.Context) {
	filter := repository.LessonFilter{
		SubjectSlug: ctx.Query("subject"),
		Level:       ctx.Query("level"),
		Search:      ctx.Query("search"),
	}

	lessons, err := c.Service.ListLessons(filter, util.GetUserFromContext(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// @Summary Détail d'une leçon
// @Tags Contenu
// @Produce json
// @Param id path int true "ID de la leçon"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *ContentController) GetLesson(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	lesson, err := c.Service.GetLesson(id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Téléverser la vidéo d'une leçon
// @Tags Contenu
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la leçon"
// @Param video formData file true "Fichier vidéo"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/video [post]
func (c *ContentController) UploadLessonVideo(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	fileHeader, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "missing video file")
		return
	}

	lesson, err := c.Service.UploadLessonVideo(ctx.Request.Context(), id, fileHeader)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, lesson)
}
