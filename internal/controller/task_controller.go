package controller

import (
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"
	"devlingo_backend/internal/util"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TaskController is the admin authoring surface for practice tasks.
// Learners never hit these routes; they read tasks through the
// practice controller, which strips the answer key.
type TaskController struct {
	TaskRepo *repository.TaskRepository
}

func NewTaskController(taskRepo *repository.TaskRepository) *TaskController {
	return &TaskController{TaskRepo: taskRepo}
}

// TaskRequest defines the authoring payload
// swagger:model TaskRequest
type TaskRequest struct {
	Level     string            `json:"level" binding:"required,oneof=junior middle senior"`
	Category  string            `json:"category"`
	Type      string            `json:"type" binding:"required,oneof=choice input builder"`
	Title     string            `json:"title" binding:"required"`
	Prompt    string            `json:"prompt" binding:"required"`
	Options   map[string]string `json:"options"`
	Fragments []string          `json:"fragments"`
	Correct   string            `json:"correct" binding:"required"`
}

func (r *TaskRequest) toModel(task *model.Task) {
	task.Level = model.TaskLevel(r.Level)
	task.Category = r.Category
	task.Type = model.TaskType(r.Type)
	task.Title = r.Title
	task.Prompt = r.Prompt
	task.Correct = r.Correct

	task.Options = nil
	if len(r.Options) > 0 {
		task.Options, _ = json.Marshal(r.Options)
	}
	task.Fragments = nil
	if len(r.Fragments) > 0 {
		task.Fragments, _ = json.Marshal(r.Fragments)
	}
}

// List godoc
// @Summary List tasks (admin)
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page (default 1)"
// @Param   limit query int false "Page size (default 20)"
// @Param   level query string false "Filter by tier" Enums(junior, middle, senior)
// @Param   search query string false "Title search"
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/admin/tasks [get]
func (c *TaskController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tasks, total, err := c.TaskRepo.FindAll(page, limit, ctx.Query("level"), ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  tasks,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Create godoc
// @Summary Create a task (admin)
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body TaskRequest true "Task definition"
// @Success 201 {object} util.Response{data=model.Task} "Created"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/admin/tasks [post]
func (c *TaskController) Create(ctx *gin.Context) {
	var req TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var task model.Task
	req.toModel(&task)

	if err := c.TaskRepo.Create(&task); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, task)
}

// Update godoc
// @Summary Update a task (admin)
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Task id"
// @Param   body body TaskRequest true "Task definition"
// @Success 200 {object} util.Response{data=model.Task} "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 404 {object} util.Response "Not Found"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/admin/tasks/{id} [put]
func (c *TaskController) Update(ctx *gin.Context) {
	task, err := c.TaskRepo.FindByID(ctx.Param("id"))
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	var req TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req.toModel(task)

	if err := c.TaskRepo.Update(task); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

// Delete godoc
// @Summary Delete a task (admin)
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Task id"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not Found"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/admin/tasks/{id} [delete]
func (c *TaskController) Delete(ctx *gin.Context) {
	if _, err := c.TaskRepo.FindByID(ctx.Param("id")); err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	} else if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.TaskRepo.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
