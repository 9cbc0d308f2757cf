package models

import "time"

// TaskDefinition is read-only catalog data. The engine never writes it;
// content seeding happens outside this service.
type TaskDefinition struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Category  string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Reward    int64     `gorm:"not null" json:"reward"`
	Active    bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
