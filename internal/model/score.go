package model

// ScoreRecord is the per-user leaderboard aggregate. Score always equals
// the number of that user's progress records; it is only ever changed by
// an atomic +1 upsert when a new record is created.
// swagger:model ScoreRecord
type ScoreRecord struct {
	UserID    uint   `gorm:"primaryKey" json:"userId"`
	Username  string `gorm:"size:100" json:"username"`
	AvatarURL string `gorm:"size:255" json:"avatarUrl"`
	Score     int    `gorm:"not null;default:0;index" json:"score"`
}

func (ScoreRecord) TableName() string {
	return "leaderboard_scores"
}
