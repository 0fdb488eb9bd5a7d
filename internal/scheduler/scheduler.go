// Package scheduler runs the weekly summary sweep: every Sunday at 10:00 it
// generates the just-closed Monday-Sunday week for each active user.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sagewell/backend/internal/logger"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/repository"
	"github.com/sagewell/backend/internal/service"
)

// weeklySpec fires Sundays at 10:00 server time.
const weeklySpec = "0 10 * * 0"

// activeWindowDays bounds how far back a user's last mood entry may be for
// them to be included in the sweep.
const activeWindowDays = 28

// Scheduler drives periodic summary generation.
type Scheduler struct {
	cron           *cron.Cron
	summaryService service.SummaryService
	moodRepo       repository.MoodLogRepository
}

// New creates the scheduler. Start must be called to begin the cadence.
func New(summaryService service.SummaryService, moodRepo repository.MoodLogRepository) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		summaryService: summaryService,
		moodRepo:       moodRepo,
	}
}

// Start registers the weekly job and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(weeklySpec, func() {
		s.RunWeeklySweep(context.Background(), time.Now())
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunWeeklySweep generates the last completed week's summary for every
// active user. Per-user failures are logged and do not stop the sweep.
func (s *Scheduler) RunWeeklySweep(ctx context.Context, now time.Time) {
	log := logger.Ctx(ctx)

	weekStart, weekEnd := models.LastCompletedWeek(now)
	log.Info("weekly summary sweep started",
		logger.String("week_start", models.DayKey(weekStart)),
		logger.String("week_end", models.DayKey(weekEnd)),
	)

	userIDs, err := s.moodRepo.ActiveUserIDs(ctx, now.AddDate(0, 0, -activeWindowDays))
	if err != nil {
		log.Error("could not list active users", logger.Err(err))
		return
	}

	var generated, failed int
	for _, userID := range userIDs {
		if _, err := s.summaryService.Generate(ctx, userID, weekStart, weekEnd); err != nil {
			failed++
			log.Warn("summary generation failed for user",
				logger.String("user_id", userID),
				logger.Err(err),
			)
			continue
		}
		generated++
	}

	log.Info("weekly summary sweep finished",
		logger.Int("users", len(userIDs)),
		logger.Int("generated", generated),
		logger.Int("failed", failed),
	)
}
