package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sagewell/backend/internal/insights"
	"github.com/sagewell/backend/internal/llm"
	"github.com/sagewell/backend/internal/logger"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/repository"
)

// GenerationState is the lifecycle of a (user, week) summary.
type GenerationState string

const (
	StateNotGenerated GenerationState = "not_generated"
	StateGenerating   GenerationState = "generating"
	StateGenerated    GenerationState = "generated"
)

const (
	fetchAttempts = 3
	fetchBackoff  = 100 * time.Millisecond
	priorWeekDays = 7
)

type summaryService struct {
	moodRepo    repository.MoodLogRepository
	healthRepo  repository.HealthLogRepository
	financeRepo repository.FinanceLogRepository
	summaryRepo repository.SummaryRepository

	completer llm.Completer // optional; nil means rule-based reports only
	notifier  Notifier      // optional

	group  singleflight.Group
	mu     sync.Mutex
	states map[string]GenerationState
}

// NewSummaryService creates the weekly summary orchestrator. completer and
// notifier may be nil.
func NewSummaryService(
	moodRepo repository.MoodLogRepository,
	healthRepo repository.HealthLogRepository,
	financeRepo repository.FinanceLogRepository,
	summaryRepo repository.SummaryRepository,
	completer llm.Completer,
	notifier Notifier,
) SummaryService {
	return &summaryService{
		moodRepo:    moodRepo,
		healthRepo:  healthRepo,
		financeRepo: financeRepo,
		summaryRepo: summaryRepo,
		completer:   completer,
		notifier:    notifier,
		states:      make(map[string]GenerationState),
	}
}

func generationKey(userID string, weekStart time.Time) string {
	return userID + "|" + models.DayKey(weekStart)
}

// State reports the lifecycle state for a (user, week).
func (s *summaryService) State(userID string, weekStart time.Time) GenerationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[generationKey(userID, weekStart)]; ok {
		return state
	}
	return StateNotGenerated
}

func (s *summaryService) setState(key string, state GenerationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == StateNotGenerated {
		delete(s.states, key)
		return
	}
	s.states[key] = state
}

func (s *summaryService) Generate(ctx context.Context, userID string, weekStart, weekEnd time.Time) (*models.WeeklySummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if weekEnd.Before(weekStart) {
		return nil, fmt.Errorf("%w: weekEnd precedes weekStart", ErrValidation)
	}

	key := generationKey(userID, weekStart)

	// Concurrent callers for the same (user, week) join the in-flight
	// generation and receive the same summary.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		s.setState(key, StateGenerating)

		// The pipeline outlives the first caller; a joined caller may still
		// be waiting after the initiator's request context is canceled.
		summary, genErr := s.generate(context.WithoutCancel(ctx), userID, weekStart, weekEnd)
		if genErr != nil {
			s.setState(key, StateNotGenerated)
			return nil, genErr
		}

		s.setState(key, StateGenerated)
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.WeeklySummary), nil
}

func (s *summaryService) generate(ctx context.Context, userID string, weekStart, weekEnd time.Time) (*models.WeeklySummary, error) {
	log := logger.Ctx(ctx).With(
		logger.String("user_id", userID),
		logger.String("week_start", models.DayKey(weekStart)),
	)

	var (
		moodLogs    []models.MoodLog
		healthLogs  []models.HealthLog
		financeLogs []models.FinanceLog
	)
	err := s.fetchWithRetry(ctx, func() error {
		var err error
		if moodLogs, err = s.moodRepo.GetByUserAndDateRange(ctx, userID, weekStart, weekEnd); err != nil {
			return err
		}
		if healthLogs, err = s.healthRepo.GetByUserAndDateRange(ctx, userID, weekStart, weekEnd); err != nil {
			return err
		}
		financeLogs, err = s.financeRepo.GetByUserAndDateRange(ctx, userID, weekStart, weekEnd)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching weekly logs: %v", ErrUpstream, err)
	}

	stats := insights.Aggregate(moodLogs, healthLogs, financeLogs, weekStart, weekEnd)

	previous := s.previousWeekStats(ctx, userID, weekStart)
	trends := insights.ClassifyTrends(stats, previous)

	report := s.buildReport(ctx, log, stats, trends, previous, moodLogs)

	summary := models.NewWeeklySummary(userID, stats, trends, *report)
	persisted, err := s.summaryRepo.Upsert(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("%w: persisting summary: %v", ErrUpstream, err)
	}

	log.Info("weekly summary generated",
		logger.Int("overall_score", persisted.OverallScore),
		logger.Int("days_logged", persisted.DaysLogged),
	)

	if s.notifier != nil {
		s.notifier.SummaryGenerated(ctx, persisted)
	}
	return persisted, nil
}

// previousWeekStats loads the stored summary for the week before weekStart.
// Absence or a read failure both mean "no baseline": trends come out stable
// rather than failing the whole generation.
func (s *summaryService) previousWeekStats(ctx context.Context, userID string, weekStart time.Time) *models.WeeklyStats {
	prior, err := s.summaryRepo.GetByUserAndWeekStart(ctx, userID, weekStart.AddDate(0, 0, -priorWeekDays))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Ctx(ctx).Warn("could not load prior week summary",
				logger.String("user_id", userID),
				logger.Err(err),
			)
		}
		return nil
	}
	stats := prior.Stats()
	return &stats
}

// buildReport asks the completion backend for a report and falls back to the
// rule-based generator on any failure, including structural violations in
// the returned JSON. The fallback cannot fail.
func (s *summaryService) buildReport(
	ctx context.Context,
	log logger.Logger,
	stats models.WeeklyStats,
	trends models.TrendSet,
	previous *models.WeeklyStats,
	moodLogs []models.MoodLog,
) *models.SummaryReport {
	if s.completer != nil {
		completion, err := s.completer.Complete(ctx, []llm.Message{
			{Role: llm.RoleSystem, Content: llm.SummarySystemPrompt},
			{Role: llm.RoleUser, Content: llm.BuildSummaryPrompt(stats, trends, previous)},
		})
		if err == nil {
			report, parseErr := llm.ParseReport(completion.Content)
			if parseErr == nil {
				return report
			}
			err = parseErr
		}
		log.Warn("completion report rejected, using rule-based generator",
			logger.Err(err),
		)
	}

	report := insights.GenerateReport(stats, trends, moodLogs)
	return &report
}

func (s *summaryService) fetchWithRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == fetchAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * fetchBackoff):
		}
	}
	return err
}

func (s *summaryService) GetLatest(ctx context.Context, userID string) (*models.WeeklySummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return s.summaryRepo.GetLatest(ctx, userID)
}

func (s *summaryService) List(ctx context.Context, userID string, limit int) ([]models.WeeklySummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return s.summaryRepo.List(ctx, userID, limit)
}
