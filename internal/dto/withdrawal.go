package dto

// WithdrawalRequestInput is the body of a withdrawal request
type WithdrawalRequestInput struct {
	Amount int64  `json:"amount" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Method string `json:"method" binding:"required"`
}

// WithdrawalCreatedResponse confirms a recorded withdrawal request
type WithdrawalCreatedResponse struct {
	WithdrawalID uint64 `json:"withdrawal_id"`
	Reference    string `json:"reference"`
	Status       string `json:"status"`
}

// MarkPaidRequest carries the payout receipt reference
type MarkPaidRequest struct {
	ReceiptRef string `json:"receipt_ref" binding:"required"`
}
