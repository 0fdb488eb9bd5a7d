// Package repository provides data access over Supabase PostgREST for the
// wellness log tables and the weekly summary store.
package repository

import (
	"context"
	"time"

	"github.com/sagewell/backend/internal/models"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "not found" }

// MoodLogRepository defines data access for mood entries. Mood logs are
// append-only.
type MoodLogRepository interface {
	Create(ctx context.Context, log *models.MoodLog) (*models.MoodLog, error)
	GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodLog, error)
	// ActiveUserIDs returns the distinct users with at least one mood entry
	// on or after since. Used by the weekly generation sweep.
	ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error)
}

// HealthLogRepository defines data access for daily health metrics. There is
// one logical row per user per day; writes upsert on (user_id, date).
type HealthLogRepository interface {
	UpsertByDate(ctx context.Context, log *models.HealthLog) (*models.HealthLog, error)
	GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.HealthLog, error)
}

// FinanceLogRepository defines data access for finance entries. Finance logs
// are append-only and multiple rows per day are allowed.
type FinanceLogRepository interface {
	Create(ctx context.Context, log *models.FinanceLog) (*models.FinanceLog, error)
	GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.FinanceLog, error)
}

// GoalRepository defines data access for wellness goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Goal, error)
	Update(ctx context.Context, id string, goal *models.Goal) (*models.Goal, error)
	Delete(ctx context.Context, id string) error
}

// SummaryRepository defines data access for generated weekly summaries.
// There is one row per (user_id, week_start); Upsert replaces the prior row
// on regeneration.
type SummaryRepository interface {
	Upsert(ctx context.Context, summary *models.WeeklySummary) (*models.WeeklySummary, error)
	GetByUserAndWeekStart(ctx context.Context, userID string, weekStart time.Time) (*models.WeeklySummary, error)
	GetLatest(ctx context.Context, userID string) (*models.WeeklySummary, error)
	List(ctx context.Context, userID string, limit int) ([]models.WeeklySummary, error)
}

// ChatRepository defines data access for persisted chat messages.
type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatInteraction) (*models.ChatInteraction, error)
	GetRecentByConversation(ctx context.Context, userID, conversationID string, limit int) ([]models.ChatInteraction, error)
}
