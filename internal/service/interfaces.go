// Package service implements the business logic between the HTTP handlers
// and the repositories: weekly summary orchestration, the chat companion,
// and the wellness log write policies.
package service

import (
	"context"
	"time"

	"github.com/sagewell/backend/internal/models"
)

// SummaryService orchestrates weekly summary generation.
type SummaryService interface {
	// Generate produces the summary for the given user and week, joining an
	// in-flight generation for the same (user, week) instead of starting a
	// second one. Regeneration replaces the stored summary.
	Generate(ctx context.Context, userID string, weekStart, weekEnd time.Time) (*models.WeeklySummary, error)
	GetLatest(ctx context.Context, userID string) (*models.WeeklySummary, error)
	List(ctx context.Context, userID string, limit int) ([]models.WeeklySummary, error)
}

// ChatService handles chat companion messages.
type ChatService interface {
	Send(ctx context.Context, userID, message, conversationID string) (*models.ChatResponse, error)
}

// MoodService manages mood entries. Mood logs are append-only.
type MoodService interface {
	Create(ctx context.Context, userID string, req *models.CreateMoodLogRequest) (*models.MoodLog, error)
	GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodLog, error)
}

// HealthService manages daily health records with upsert-by-date semantics.
type HealthService interface {
	Upsert(ctx context.Context, userID string, req *models.UpsertHealthLogRequest) (*models.HealthLog, error)
	GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.HealthLog, error)
}

// FinanceService manages finance entries. Amounts are normalized to the
// canonical positive magnitude on write.
type FinanceService interface {
	Create(ctx context.Context, userID string, req *models.CreateFinanceLogRequest) (*models.FinanceLog, error)
	GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.FinanceLog, error)
}

// GoalService manages wellness goals.
type GoalService interface {
	Create(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error)
	List(ctx context.Context, userID string) ([]models.Goal, error)
	Update(ctx context.Context, userID, goalID string, req *models.UpdateGoalRequest) (*models.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
}

// Notifier receives a best-effort signal when a summary has been generated.
// Failures are logged, never propagated.
type Notifier interface {
	SummaryGenerated(ctx context.Context, summary *models.WeeklySummary)
}
