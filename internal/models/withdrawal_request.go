package models

import "time"

type WithdrawalStatus string

const (
	WithdrawalStatusPending WithdrawalStatus = "pending"
	WithdrawalStatusPaid    WithdrawalStatus = "paid"
)

// WithdrawalRequest is the withdrawal sink: a request/approval record, not a
// money transfer. Status only ever advances pending -> paid.
type WithdrawalRequest struct {
	ID         uint64           `gorm:"primarykey" json:"id"`
	UserID     uint64           `gorm:"not null;index" json:"user_id"`
	Amount     int64            `gorm:"not null" json:"amount"`
	Phone      string           `gorm:"type:varchar(32);not null" json:"phone"`
	Method     string           `gorm:"type:varchar(30);not null" json:"method"`
	Status     WithdrawalStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Reference  string           `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	ReceiptRef string           `gorm:"type:varchar(100)" json:"receipt_ref,omitempty"`
	PaidAt     *time.Time       `json:"paid_at,omitempty"`
	CreatedAt  time.Time        `gorm:"index" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
