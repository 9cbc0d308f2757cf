package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulugbek-dev/taskearn-api/internal/dto"
	apierrors "github.com/ulugbek-dev/taskearn-api/internal/errors"
	"github.com/ulugbek-dev/taskearn-api/internal/middleware"
	"github.com/ulugbek-dev/taskearn-api/internal/services"
)

type ReferralHandler struct {
	referrals *services.ReferralService
}

func NewReferralHandler(referrals *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{referrals: referrals}
}

// Status returns the user's referral count and bonus balance
func (h *ReferralHandler) Status(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	status, err := h.referrals.Status(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load referral status")
		return
	}

	c.JSON(http.StatusOK, status)
}

// Redeem moves one redemption block from bonus balance to balance
func (h *ReferralHandler) Redeem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.referrals.Redeem(userID)
	if err != nil {
		if errors.Is(err, services.ErrBonusThresholdNotMet) {
			apierrors.ConflictWithCode(c, apierrors.ErrCodeBonusThreshold, "Bonus balance is below the redemption block")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.RedeemBonusResponse{
		Balance:      user.Balance,
		BonusBalance: user.BonusBalance,
	})
}
