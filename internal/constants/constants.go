package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HistoryPageSize bounds the completion history endpoint.
	HistoryPageSize = 50
)

// Daily allocation
const (
	// DailyTaskLimit is the maximum number of tasks assigned per user per day.
	DailyTaskLimit = 5

	// MinAnswerLength is the minimum accepted answer length for a completion.
	MinAnswerLength = 3
)

const DayKeyLayout = "2006-01-02"
