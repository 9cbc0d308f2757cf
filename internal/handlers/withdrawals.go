package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulugbek-dev/taskearn-api/internal/dto"
	apierrors "github.com/ulugbek-dev/taskearn-api/internal/errors"
	"github.com/ulugbek-dev/taskearn-api/internal/middleware"
	"github.com/ulugbek-dev/taskearn-api/internal/services"
	"github.com/ulugbek-dev/taskearn-api/internal/utils"
)

type WithdrawalHandler struct {
	withdrawals *services.WithdrawalService
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

// Request records a withdrawal request against the user's balance
func (h *WithdrawalHandler) Request(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.WithdrawalRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	withdrawal, err := h.withdrawals.Request(userID, req.Amount, req.Phone, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			apierrors.BadRequest(c, "Amount must be positive")
		case errors.Is(err, services.ErrInsufficientBalance):
			apierrors.ConflictWithCode(c, apierrors.ErrCodeInsufficientBalance, "Balance does not cover the requested amount")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.WithdrawalCreatedResponse{
		WithdrawalID: withdrawal.ID,
		Reference:    withdrawal.Reference,
		Status:       string(withdrawal.Status),
	})
}

// List returns the user's withdrawal history, most recent first
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	requests, total, err := h.withdrawals.List(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to load withdrawals")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"withdrawals": requests,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// MarkPaid advances a pending withdrawal to paid. Mounted under the
// internal route group only.
func (h *WithdrawalHandler) MarkPaid(c *gin.Context) {
	withdrawalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid withdrawal id")
		return
	}

	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if err := h.withdrawals.MarkPaid(withdrawalID, req.ReceiptRef); err != nil {
		switch {
		case errors.Is(err, services.ErrWithdrawalNotFound):
			apierrors.NotFound(c, "Withdrawal not found")
		case errors.Is(err, services.ErrWithdrawalNotPending):
			apierrors.Conflict(c, "Withdrawal is not pending")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
