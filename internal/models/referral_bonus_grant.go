package models

import "time"

// ReferralBonusGrant records that the referrer was paid for referring this
// user. The unique pair index is the idempotence guard for the payout; the
// row's existence, not any flag on the user, decides whether a bonus is due.
type ReferralBonusGrant struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ReferrerID uint64    `gorm:"not null;uniqueIndex:idx_grants_pair;index" json:"referrer_id"`
	ReferredID uint64    `gorm:"not null;uniqueIndex:idx_grants_pair" json:"referred_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
