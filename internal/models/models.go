package models

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the wire format for calendar dates (PostgREST `date` columns).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}

// DayKey collapses a timestamp to its calendar-day key.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// User represents a user in the system
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodLog is a single mood entry. Mood logs are append-only: once written
// there is no update path.
type MoodLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Mood      int       `json:"mood"` // 1-5 scale
	Notes     *string   `json:"notes,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the mood-scale invariant.
func (m *MoodLog) Validate() error {
	if m.Mood < 1 || m.Mood > 5 {
		return fmt.Errorf("mood must be between 1 and 5, got %d", m.Mood)
	}
	return nil
}

// HealthLog holds one day of health metrics. There is one logical record per
// user per day; a later write for the same date replaces the earlier one
// (upsert on user_id,date).
type HealthLog struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Date            time.Time `json:"date"`
	SleepHours      *float64  `json:"sleep_hours,omitempty"`
	Steps           int       `json:"steps"`
	WaterGlasses    int       `json:"water_glasses"`
	ExerciseMinutes int       `json:"exercise_minutes"`
	Weight          *float64  `json:"weight,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate checks non-negativity of the health metrics.
func (h *HealthLog) Validate() error {
	if h.SleepHours != nil && (*h.SleepHours < 0 || *h.SleepHours > 24) {
		return fmt.Errorf("sleep_hours must be between 0 and 24, got %.1f", *h.SleepHours)
	}
	if h.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", h.Steps)
	}
	if h.WaterGlasses < 0 {
		return fmt.Errorf("water_glasses must not be negative, got %d", h.WaterGlasses)
	}
	if h.ExerciseMinutes < 0 {
		return fmt.Errorf("exercise_minutes must not be negative, got %d", h.ExerciseMinutes)
	}
	if h.Weight != nil && *h.Weight <= 0 {
		return fmt.Errorf("weight must be positive, got %.1f", *h.Weight)
	}
	return nil
}

// FinanceCategory is the wellness spending category.
type FinanceCategory string

const (
	CategoryGym         FinanceCategory = "gym"
	CategorySupplements FinanceCategory = "supplements"
	CategoryTherapy     FinanceCategory = "therapy"
	CategoryWellness    FinanceCategory = "wellness"
	CategoryMedical     FinanceCategory = "medical"
	CategoryOther       FinanceCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c FinanceCategory) Valid() bool {
	switch c {
	case CategoryGym, CategorySupplements, CategoryTherapy, CategoryWellness, CategoryMedical, CategoryOther:
		return true
	}
	return false
}

// EntryType distinguishes expenses from income.
type EntryType string

const (
	EntryExpense EntryType = "expense"
	EntryIncome  EntryType = "income"
)

// FinanceLog is a single finance entry. Finance logs are append-only and
// multiple records per day are allowed. The canonical representation stores
// a positive magnitude in Amount with the direction carried by Type; sign is
// never inferred from magnitude.
type FinanceLog struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Date        time.Time       `json:"date"`
	Category    FinanceCategory `json:"category"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Type        EntryType       `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Normalize coerces Amount to the canonical positive magnitude. Some clients
// send expenses as negative amounts; the Type field is authoritative.
func (f *FinanceLog) Normalize() {
	f.Amount = math.Abs(f.Amount)
}

// Validate checks category and type enums.
func (f *FinanceLog) Validate() error {
	if !f.Category.Valid() {
		return fmt.Errorf("unknown finance category %q", f.Category)
	}
	if f.Type != EntryExpense && f.Type != EntryIncome {
		return fmt.Errorf("type must be %q or %q, got %q", EntryExpense, EntryIncome, f.Type)
	}
	return nil
}

// Goal is a user-defined wellness goal.
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// MessageType identifies who authored a chat message.
type MessageType string

const (
	MessageUser      MessageType = "user"
	MessageAssistant MessageType = "assistant"
)

// ChatInteraction is one persisted chat message, user or assistant.
type ChatInteraction struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	ConversationID string      `json:"conversation_id"`
	MessageType    MessageType `json:"message_type"`
	Content        string      `json:"content"`
	TokensUsed     int         `json:"tokens_used"`
	ModelUsed      string      `json:"model_used,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}
