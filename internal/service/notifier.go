package service

import (
	"context"

	"github.com/sagewell/backend/internal/logger"
	"github.com/sagewell/backend/internal/models"
)

// logNotifier announces generated summaries in the log stream. Push
// delivery to devices happens out of band; the backend only records that
// the summary became available.
type logNotifier struct{}

// NewLogNotifier creates a Notifier that logs summary availability.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) SummaryGenerated(ctx context.Context, summary *models.WeeklySummary) {
	logger.Ctx(ctx).Info("weekly summary ready",
		logger.String("user_id", summary.UserID),
		logger.String("week_start", models.DayKey(summary.WeekStart)),
		logger.Int("overall_score", summary.OverallScore),
	)
}
