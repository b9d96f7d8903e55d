package repository

import (
	"devlingo_backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// FindByLevel returns every task of one difficulty tier in a stable
// order. The whole tier is small and is served as one file tree by the
// practice IDE, so there is no pagination here.
func (r *TaskRepository) FindByLevel(level model.TaskLevel) ([]model.Task, error) {
	var tasks []model.Task
	err := r.DB.Where("level = ?", level).
		Order("category ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) FindByID(id string) (*model.Task, error) {
	var task model.Task
	err := r.DB.Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(task *model.Task) error {
	return r.DB.Create(task).Error
}

func (r *TaskRepository) Update(task *model.Task) error {
	return r.DB.Save(task).Error
}

func (r *TaskRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Task{}).Error
}

// FindAll returns a page of tasks for the admin console, optionally
// filtered by level and a title search.
func (r *TaskRepository) FindAll(page, limit int, level, search string) ([]model.Task, int64, error) {
	var tasks []model.Task
	var total int64

	query := r.DB.Model(&model.Task{})
	if level != "" {
		query = query.Where("level = ?", level)
	}
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tasks).Error
	return tasks, total, err
}
