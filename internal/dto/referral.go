package dto

// RedeemBonusResponse is the balance pair after a bonus redemption
type RedeemBonusResponse struct {
	Balance      int64 `json:"balance"`
	BonusBalance int64 `json:"bonus_balance"`
}
