package controller

import (
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/service"
	"devlingo_backend/internal/util"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

func currentUserID(ctx *gin.Context) uint {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// attemptOwner identifies whose hint counters a request touches: the
// user id when signed in, otherwise the anonymous session header (or
// the client IP as a last resort).
func attemptOwner(ctx *gin.Context) string {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return fmt.Sprintf("u:%d", claims.UserID)
	}
	if session := ctx.GetHeader("X-Session-ID"); session != "" {
		return "s:" + session
	}
	return "ip:" + ctx.ClientIP()
}

// ListTasks godoc
// @Summary Tasks for one difficulty tier
// @Description Task tree for the practice IDE; includes completion flags for signed-in users
// @Tags practice
// @Produce  json
// @Param   level query string true "Difficulty tier" Enums(junior, middle, senior)
// @Success 200 {object} util.Response{data=[]service.TaskView} "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/practice/tasks [get]
func (c *PracticeController) ListTasks(ctx *gin.Context) {
	level := ctx.Query("level")
	if !model.ValidLevel(level) {
		util.BadRequest(ctx, "level must be one of junior, middle, senior")
		return
	}

	tasks, err := c.PracticeService.ListTasks(model.TaskLevel(level), currentUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tasks)
}

// GetTask godoc
// @Summary One task
// @Tags practice
// @Produce  json
// @Param   taskId path string true "Task id"
// @Success 200 {object} util.Response{data=service.TaskView} "Success"
// @Failure 404 {object} util.Response "Not Found"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/practice/tasks/{taskId} [get]
func (c *PracticeController) GetTask(ctx *gin.Context) {
	task, err := c.PracticeService.GetTask(ctx.Param("taskId"), currentUserID(ctx))
	if errors.Is(err, util.ErrTaskNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

// Submit godoc
// @Summary Submit an answer
// @Description Evaluate a submission; pass/fail feedback is immediate, progress is recorded in the background
// @Tags practice
// @Accept  json
// @Produce  json
// @Param   taskId path string true "Task id"
// @Param   body body service.Submission true "Answer: option key, free text, or fragment list depending on task type"
// @Success 200 {object} util.Response{data=service.SubmitResult} "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 404 {object} util.Response "Not Found"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/practice/tasks/{taskId}/submit [post]
func (c *PracticeController) Submit(ctx *gin.Context) {
	var sub service.Submission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PracticeService.Submit(
		ctx.Request.Context(),
		ctx.Param("taskId"),
		sub,
		currentUserID(ctx),
		attemptOwner(ctx),
	)
	if errors.Is(err, util.ErrTaskNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
