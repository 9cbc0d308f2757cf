package models

import "time"

// DailyAssignment binds one catalog task to one user for one day key.
// The two composite unique indexes carry the allocation invariants: a task
// is assigned at most once per (user, day) and no two assignments for a
// (user, day) share a category.
type DailyAssignment struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	UserID   uint64 `gorm:"not null;uniqueIndex:idx_assignments_user_day_task;uniqueIndex:idx_assignments_user_day_category" json:"user_id"`
	DayKey   string `gorm:"type:varchar(10);not null;uniqueIndex:idx_assignments_user_day_task;uniqueIndex:idx_assignments_user_day_category" json:"day_key"`
	TaskID   uint64 `gorm:"not null;uniqueIndex:idx_assignments_user_day_task" json:"task_id"`
	Category string `gorm:"type:varchar(50);not null;uniqueIndex:idx_assignments_user_day_category" json:"category"`

	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Answer      string     `gorm:"type:text" json:"answer"`

	// Relations
	User User           `gorm:"foreignKey:UserID" json:"-"`
	Task TaskDefinition `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
