package models

// RawGenerateSummaryRequest is the unparsed generate-summary body. Dates are
// bound as strings so field-level errors can be aggregated before parsing.
type RawGenerateSummaryRequest struct {
	UserID    string `json:"userId"`
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
}

// GenerateSummaryResponse is the success payload of the generate endpoint.
type GenerateSummaryResponse struct {
	Success bool           `json:"success"`
	Summary *WeeklySummary `json:"summary"`
	Message string         `json:"message,omitempty"`
}

// ChatRequest is the chat-message body. ConversationID is optional; a new
// conversation is started when it is empty.
type ChatRequest struct {
	Message        string `json:"message"`
	UserID         string `json:"userId"`
	ConversationID string `json:"conversationId"`
}

// ChatResponse is the success payload of the chat endpoint.
type ChatResponse struct {
	Success        bool   `json:"success"`
	Response       string `json:"response"`
	ConversationID string `json:"conversationId"`
	TokensUsed     int    `json:"tokensUsed"`
}

// CreateMoodLogRequest creates a mood entry.
type CreateMoodLogRequest struct {
	Date  string   `json:"date" binding:"required"`
	Mood  int      `json:"mood" binding:"required"`
	Notes *string  `json:"notes"`
	Tags  []string `json:"tags"`
}

// UpsertHealthLogRequest writes the health record for a date, replacing any
// earlier record for the same date.
type UpsertHealthLogRequest struct {
	Date            string   `json:"date" binding:"required"`
	SleepHours      *float64 `json:"sleep_hours"`
	Steps           int      `json:"steps"`
	WaterGlasses    int      `json:"water_glasses"`
	ExerciseMinutes int      `json:"exercise_minutes"`
	Weight          *float64 `json:"weight"`
}

// CreateFinanceLogRequest appends a finance entry.
type CreateFinanceLogRequest struct {
	Date        string          `json:"date" binding:"required"`
	Category    FinanceCategory `json:"category" binding:"required"`
	Amount      float64         `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Type        EntryType       `json:"type" binding:"required"`
}

// CreateGoalRequest creates a goal.
type CreateGoalRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateGoalRequest updates goal fields; nil fields are left unchanged.
type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}
