package dto

import "time"

// TodayTaskDTO represents one of the user's assigned tasks for the day
type TodayTaskDTO struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Reward    int64  `json:"reward"`
	Completed bool   `json:"completed"`
	Answer    string `json:"answer,omitempty"`
}

// TodayResponse is the daily assignment set plus quota and balance state
type TodayResponse struct {
	DayKey    string         `json:"day_key"`
	ResetAt   time.Time      `json:"reset_at"`
	Remaining int            `json:"remaining"`
	Balance   int64          `json:"balance"`
	Tasks     []TodayTaskDTO `json:"tasks"`
}

// CompleteTaskRequest carries the completion answer payload
type CompleteTaskRequest struct {
	Answer string `json:"answer"`
}

// CompleteTaskResponse is the post-commit balance and remaining quota
type CompleteTaskResponse struct {
	Balance   int64 `json:"balance"`
	Remaining int   `json:"remaining"`
}
