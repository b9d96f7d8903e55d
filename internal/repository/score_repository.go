package repository

import (
	"devlingo_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// IncrementScore adds delta to a user's leaderboard score with
// upsert-on-create semantics. The increment happens inside the database
// (score = score + delta), never as a client read-modify-write, so
// concurrent completions cannot lose updates.
func (r *ScoreRepository) IncrementScore(userID uint, delta int, username, avatarURL string) error {
	record := model.ScoreRecord{
		UserID:    userID,
		Username:  username,
		AvatarURL: avatarURL,
		Score:     delta,
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      gorm.Expr("score + ?", delta),
			"username":   username,
			"avatar_url": avatarURL,
		}),
	}).Create(&record).Error
}

// UpdateDisplayFields refreshes the denormalized name and avatar of an
// existing record without touching the score.
func (r *ScoreRepository) UpdateDisplayFields(userID uint, username, avatarURL string) error {
	return r.DB.Model(&model.ScoreRecord{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"username":   username,
			"avatar_url": avatarURL,
		}).Error
}

func (r *ScoreRepository) FindByUser(userID uint) (*model.ScoreRecord, error) {
	var record model.ScoreRecord
	err := r.DB.Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// TopN returns the first n score records ordered by score descending.
// Ties break by user id ascending so repeated calls always return the
// same order.
func (r *ScoreRepository) TopN(n int) ([]model.ScoreRecord, error) {
	var records []model.ScoreRecord
	err := r.DB.Order("score DESC, user_id ASC").Limit(n).Find(&records).Error
	return records, err
}

// CountGreaterThan is the count-only half of the rank computation: how
// many users score strictly above the given value. No rows are
// transferred beyond the single count.
func (r *ScoreRepository) CountGreaterThan(score int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ScoreRecord{}).
		Where("score > ?", score).
		Count(&count).Error
	return count, err
}
