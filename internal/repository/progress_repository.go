package repository

import (
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// CreateIfAbsent inserts a completion record unless one already exists
// for the (user, task) pair. The unique index on the pair plus the
// ON CONFLICT DO NOTHING clause make this safe under concurrent
// submits: exactly one caller observes created == true, and only that
// caller may award score.
func (r *ProgressRepository) CreateIfAbsent(userID uint, taskID string, date time.Time, level model.TaskLevel) (bool, error) {
	record := model.ProgressRecord{
		UserID: userID,
		TaskID: taskID,
		Date:   date.Format(util.DateFormat),
		Level:  level,
	}

	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "task_id"}},
		DoNothing: true,
	}).Create(&record)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindTaskIDsByUser returns the set of completed task ids for a user.
func (r *ProgressRepository) FindTaskIDsByUser(userID uint) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("user_id = ?", userID).
		Pluck("task_id", &ids).Error
	return ids, err
}

func (r *ProgressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountByUserAndLevel breaks a user's completions down per tier.
func (r *ProgressRepository) CountByUserAndLevel(userID uint) (map[model.TaskLevel]int, error) {
	type row struct {
		Level model.TaskLevel
		N     int
	}
	var rows []row
	err := r.DB.Model(&model.ProgressRecord{}).
		Select("level, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.TaskLevel]int, len(rows))
	for _, r := range rows {
		counts[r.Level] = r.N
	}
	return counts, nil
}

// DailyCounts feeds the contribution graph: completions per day since
// the cutoff, ordered by date.
func (r *ProgressRepository) DailyCounts(userID uint, since time.Time) ([]model.DailyActivity, error) {
	var buckets []model.DailyActivity
	err := r.DB.Model(&model.ProgressRecord{}).
		Select("date, COUNT(*) AS count").
		Where("user_id = ? AND date >= ?", userID, since.Format(util.DateFormat)).
		Group("date").
		Order("date ASC").
		Scan(&buckets).Error
	return buckets, err
}
