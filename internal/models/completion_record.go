package models

import "time"

// CompletionRecord is the append-only audit row behind every balance credit.
// One record per completed DailyAssignment; never updated, deleted only by
// account purge.
type CompletionRecord struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	UserID   uint64    `gorm:"not null;index" json:"user_id"`
	TaskID   uint64    `gorm:"not null;index" json:"task_id"`
	DayKey   string    `gorm:"type:varchar(10);not null" json:"day_key"`
	Category string    `gorm:"type:varchar(50);not null" json:"category"`
	Reward   int64     `gorm:"not null" json:"reward"`
	Answer   string    `gorm:"type:text" json:"answer"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	User User           `gorm:"foreignKey:UserID" json:"-"`
	Task TaskDefinition `gorm:"foreignKey:TaskID" json:"-"`
}
