package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/repository"
)

type moodService struct {
	repo repository.MoodLogRepository
}

// NewMoodService creates the mood log service.
func NewMoodService(repo repository.MoodLogRepository) MoodService {
	return &moodService{repo: repo}
}

func (s *moodService) Create(ctx context.Context, userID string, req *models.CreateMoodLogRequest) (*models.MoodLog, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	log := &models.MoodLog{
		UserID: userID,
		Date:   date,
		Mood:   req.Mood,
		Notes:  req.Notes,
		Tags:   req.Tags,
	}
	if err := log.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.repo.Create(ctx, log)
}

func (s *moodService) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodLog, error) {
	return s.repo.GetByUserAndDateRange(ctx, userID, start, end)
}

type healthService struct {
	repo repository.HealthLogRepository
}

// NewHealthService creates the health log service. Writes replace the
// existing record for the same date.
func NewHealthService(repo repository.HealthLogRepository) HealthService {
	return &healthService{repo: repo}
}

func (s *healthService) Upsert(ctx context.Context, userID string, req *models.UpsertHealthLogRequest) (*models.HealthLog, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	log := &models.HealthLog{
		UserID:          userID,
		Date:            date,
		SleepHours:      req.SleepHours,
		Steps:           req.Steps,
		WaterGlasses:    req.WaterGlasses,
		ExerciseMinutes: req.ExerciseMinutes,
		Weight:          req.Weight,
	}
	if err := log.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.repo.UpsertByDate(ctx, log)
}

func (s *healthService) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.HealthLog, error) {
	return s.repo.GetByUserAndDateRange(ctx, userID, start, end)
}

type financeService struct {
	repo repository.FinanceLogRepository
}

// NewFinanceService creates the finance log service. Entries are append-only
// and amounts are normalized to positive magnitudes with the direction
// carried by the type field.
func NewFinanceService(repo repository.FinanceLogRepository) FinanceService {
	return &financeService{repo: repo}
}

func (s *financeService) Create(ctx context.Context, userID string, req *models.CreateFinanceLogRequest) (*models.FinanceLog, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	log := &models.FinanceLog{
		UserID:      userID,
		Date:        date,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Type:        req.Type,
	}
	if err := log.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	log.Normalize()

	return s.repo.Create(ctx, log)
}

func (s *financeService) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.FinanceLog, error) {
	return s.repo.GetByUserAndDateRange(ctx, userID, start, end)
}
