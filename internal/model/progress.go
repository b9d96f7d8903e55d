package model

// ProgressRecord is durable proof that a user completed a task at least
// once. The composite unique index makes the first-completion check
// race-safe at the storage layer: concurrent submits for the same
// (user, task) pair can only ever create one row.
// swagger:model ProgressRecord
type ProgressRecord struct {
	BaseModel
	UserID uint      `gorm:"not null;uniqueIndex:idx_user_task" json:"userId"`
	TaskID string    `gorm:"size:36;not null;uniqueIndex:idx_user_task" json:"taskId"`
	Date   string    `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD, day of first completion
	Level  TaskLevel `gorm:"size:20" json:"level"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}

// DailyActivity is one bucket of the profile contribution graph.
type DailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
