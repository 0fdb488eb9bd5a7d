package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sagewell/backend/internal/models"
)

type sweepMoodRepo struct {
	active []string
	err    error
}

func (m *sweepMoodRepo) Create(ctx context.Context, log *models.MoodLog) (*models.MoodLog, error) {
	return log, nil
}

func (m *sweepMoodRepo) GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodLog, error) {
	return nil, nil
}

func (m *sweepMoodRepo) ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error) {
	return m.active, m.err
}

type sweepSummaryService struct {
	calls   []string
	weeks   []time.Time
	failFor map[string]bool
}

func (s *sweepSummaryService) Generate(ctx context.Context, userID string, weekStart, weekEnd time.Time) (*models.WeeklySummary, error) {
	s.calls = append(s.calls, userID)
	s.weeks = append(s.weeks, weekStart)
	if s.failFor[userID] {
		return nil, errors.New("boom")
	}
	return &models.WeeklySummary{UserID: userID, WeekStart: weekStart, WeekEnd: weekEnd}, nil
}

func (s *sweepSummaryService) GetLatest(ctx context.Context, userID string) (*models.WeeklySummary, error) {
	return nil, nil
}

func (s *sweepSummaryService) List(ctx context.Context, userID string, limit int) ([]models.WeeklySummary, error) {
	return nil, nil
}

func TestRunWeeklySweepGeneratesForEachActiveUser(t *testing.T) {
	svc := &sweepSummaryService{}
	sched := New(svc, &sweepMoodRepo{active: []string{"u1", "u2", "u3"}})

	now := time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC) // Sunday 10:00
	sched.RunWeeklySweep(context.Background(), now)

	if len(svc.calls) != 3 {
		t.Fatalf("generated for %d users, want 3", len(svc.calls))
	}

	wantStart, _ := models.LastCompletedWeek(now)
	for i, weekStart := range svc.weeks {
		if !weekStart.Equal(wantStart) {
			t.Errorf("call %d weekStart = %v, want %v", i, weekStart, wantStart)
		}
	}
}

func TestRunWeeklySweepContinuesPastFailures(t *testing.T) {
	svc := &sweepSummaryService{failFor: map[string]bool{"u2": true}}
	sched := New(svc, &sweepMoodRepo{active: []string{"u1", "u2", "u3"}})

	sched.RunWeeklySweep(context.Background(), time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC))

	if len(svc.calls) != 3 {
		t.Errorf("sweep stopped early: %d calls, want 3", len(svc.calls))
	}
}

func TestRunWeeklySweepHandlesListFailure(t *testing.T) {
	svc := &sweepSummaryService{}
	sched := New(svc, &sweepMoodRepo{err: errors.New("store down")})

	sched.RunWeeklySweep(context.Background(), time.Now())

	if len(svc.calls) != 0 {
		t.Errorf("sweep generated despite listing failure: %d calls", len(svc.calls))
	}
}
