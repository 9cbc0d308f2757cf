package models

import "time"

type User struct {
	ID           uint64  `gorm:"primarykey" json:"id"`
	Phone        string  `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`
	Balance      int64   `gorm:"not null;default:0" json:"balance"`
	BonusBalance int64   `gorm:"not null;default:0" json:"bonus_balance"`
	ReferredByID *uint64 `gorm:"index" json:"referred_by_id,omitempty"`

	// Deletion lifecycle: both set on request, both cleared on cancel.
	DeleteRequestedAt *time.Time `json:"delete_requested_at,omitempty"`
	DeleteEffectiveAt *time.Time `gorm:"index" json:"delete_effective_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	ReferredBy  *User               `gorm:"foreignKey:ReferredByID" json:"-"`
	Assignments []DailyAssignment   `gorm:"foreignKey:UserID" json:"-"`
	Completions []CompletionRecord  `gorm:"foreignKey:UserID" json:"-"`
	Withdrawals []WithdrawalRequest `gorm:"foreignKey:UserID" json:"-"`
}
