package model

// Note is one entry of a user's personal dictionary on the resources
// page: a term and what it means.
// swagger:model Note
type Note struct {
	UUIDBase
	UserID     uint   `gorm:"not null;index" json:"userId"`
	Term       string `gorm:"size:255;not null" json:"term"`
	Definition string `gorm:"type:text;not null" json:"definition"`
}

func (Note) TableName() string {
	return "user_notes"
}
