package controller

import (
	"devlingo_backend/internal/service"
	"devlingo_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	NoteService *service.NoteService
}

func NewNoteController(noteService *service.NoteService) *NoteController {
	return &NoteController{NoteService: noteService}
}

// CreateNoteRequest defines a new dictionary entry
// swagger:model CreateNoteRequest
type CreateNoteRequest struct {
	Term       string `json:"term" binding:"required"`
	Definition string `json:"definition" binding:"required"`
}

// List godoc
// @Summary Personal dictionary
// @Tags notes
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Note} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/notes [get]
func (c *NoteController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	notes, err := c.NoteService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, notes)
}

// Create godoc
// @Summary Add a dictionary entry
// @Tags notes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateNoteRequest true "Term and definition"
// @Success 201 {object} util.Response{data=model.Note} "Created"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/notes [post]
func (c *NoteController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.NoteService.Create(claims.UserID, req.Term, req.Definition)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, note)
}

// Delete godoc
// @Summary Remove a dictionary entry
// @Tags notes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Note id"
// @Success 200 {object} util.Response "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Not Found"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/notes/{id} [delete]
func (c *NoteController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.NoteService.Delete(claims.UserID, ctx.Param("id"))
	if errors.Is(err, util.ErrNoteNotFound) {
		util.NotFound(ctx)
		return
	}
	if errors.Is(err, util.ErrPermissionDenied) {
		util.Forbidden(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
