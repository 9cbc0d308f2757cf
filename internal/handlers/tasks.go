package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulugbek-dev/taskearn-api/internal/dto"
	apierrors "github.com/ulugbek-dev/taskearn-api/internal/errors"
	"github.com/ulugbek-dev/taskearn-api/internal/middleware"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
	"github.com/ulugbek-dev/taskearn-api/internal/services"
	"github.com/ulugbek-dev/taskearn-api/internal/utils"
)

type TaskHandler struct {
	allocator   *services.AllocatorService
	completions *services.CompletionService
	userRepo    repository.UserRepository
	loc         *time.Location
}

func NewTaskHandler(
	allocator *services.AllocatorService,
	completions *services.CompletionService,
	userRepo repository.UserRepository,
	loc *time.Location,
) *TaskHandler {
	return &TaskHandler{
		allocator:   allocator,
		completions: completions,
		userRepo:    userRepo,
		loc:         loc,
	}
}

// Today returns (allocating on first sight) the user's task set for the
// current day key, with quota and balance state.
func (h *TaskHandler) Today(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	now := time.Now()
	dayKey := utils.DayKey(now, h.loc)

	assignments, err := h.allocator.EnsureAssignments(userID, dayKey)
	if err != nil {
		apierrors.InternalError(c, "Failed to load today's tasks")
		return
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load user")
		return
	}

	resp := dto.TodayResponse{
		DayKey:  dayKey,
		ResetAt: utils.NextReset(now, h.loc),
		Balance: user.Balance,
		Tasks:   make([]dto.TodayTaskDTO, 0, len(assignments)),
	}
	for _, a := range assignments {
		completed := a.CompletedAt != nil
		if !completed {
			resp.Remaining++
		}
		resp.Tasks = append(resp.Tasks, dto.TodayTaskDTO{
			ID:        a.TaskID,
			Title:     a.Task.Title,
			Category:  a.Category,
			Reward:    a.Task.Reward,
			Completed: completed,
			Answer:    a.Answer,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Complete commits a task completion for the current day
func (h *TaskHandler) Complete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	var req dto.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	balance, err := h.completions.Complete(userID, taskID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnswerTooShort):
			apierrors.BadRequest(c, "Answer is too short")
		case errors.Is(err, services.ErrNotAssignedToday):
			apierrors.ConflictWithCode(c, apierrors.ErrCodeNotAssignedToday, "Task is not assigned to you today")
		case errors.Is(err, services.ErrAlreadyCompleted):
			apierrors.ConflictWithCode(c, apierrors.ErrCodeAlreadyCompleted, "Task is already completed")
		case errors.Is(err, services.ErrTaskUnavailable):
			apierrors.ConflictWithCode(c, apierrors.ErrCodeTaskUnavailable, "Task is no longer available")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	remaining, err := h.completions.Remaining(userID, utils.DayKey(time.Now(), h.loc))
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.CompleteTaskResponse{
		Balance:   balance,
		Remaining: remaining,
	})
}

// History returns the user's most recent completions
func (h *TaskHandler) History(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	items, err := h.completions.History(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"completions": items})
}
