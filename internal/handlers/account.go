package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/ulugbek-dev/taskearn-api/internal/errors"
	"github.com/ulugbek-dev/taskearn-api/internal/middleware"
	"github.com/ulugbek-dev/taskearn-api/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// RequestDeletion starts the delayed account deletion lifecycle
func (h *AccountHandler) RequestDeletion(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	effectiveAt, err := h.accounts.RequestDeletion(userID)
	if err != nil {
		if errors.Is(err, services.ErrDeletionAlreadyRequested) {
			apierrors.Conflict(c, "Deletion already requested")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"delete_effective_at": effectiveAt})
}

// CancelDeletion withdraws a pending deletion request
func (h *AccountHandler) CancelDeletion(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.accounts.CancelDeletion(userID); err != nil {
		if errors.Is(err, services.ErrNoDeletionRequest) {
			apierrors.Conflict(c, "No pending deletion request")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deletion request cancelled"})
}
