package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/pkg/supabase"
)

type healthLogRepository struct {
	client *supabase.Client
}

// NewHealthLogRepository creates a health log repository backed by Supabase.
func NewHealthLogRepository(client *supabase.Client) HealthLogRepository {
	return &healthLogRepository{client: client}
}

type healthRow struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Date            string    `json:"date"`
	SleepHours      *float64  `json:"sleep_hours"`
	Steps           int       `json:"steps"`
	WaterGlasses    int       `json:"water_glasses"`
	ExerciseMinutes int       `json:"exercise_minutes"`
	Weight          *float64  `json:"weight"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (r healthRow) toModel() (models.HealthLog, error) {
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.HealthLog{}, fmt.Errorf("health log %s: %w", r.ID, err)
	}
	return models.HealthLog{
		ID:              r.ID,
		UserID:          r.UserID,
		Date:            date,
		SleepHours:      r.SleepHours,
		Steps:           r.Steps,
		WaterGlasses:    r.WaterGlasses,
		ExerciseMinutes: r.ExerciseMinutes,
		Weight:          r.Weight,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}

func (r *healthLogRepository) UpsertByDate(ctx context.Context, log *models.HealthLog) (*models.HealthLog, error) {
	data := map[string]interface{}{
		"user_id":          log.UserID,
		"date":             models.DayKey(log.Date),
		"sleep_hours":      log.SleepHours,
		"steps":            log.Steps,
		"water_glasses":    log.WaterGlasses,
		"exercise_minutes": log.ExerciseMinutes,
		"weight":           log.Weight,
		"updated_at":       time.Now().UTC(),
	}

	body, err := r.client.Upsert(ctx, "health_logs", data, "user_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert health log: %w", err)
	}

	rows, err := decodeHealthRows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no health log returned")
	}
	return &rows[0], nil
}

func (r *healthLogRepository) GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.HealthLog, error) {
	params := supabase.Filters{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", models.DayKey(start), models.DayKey(end)),
		"order":   "date.asc",
	}

	body, err := r.client.Select(ctx, "health_logs", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get health logs: %w", err)
	}
	return decodeHealthRows(body)
}

func decodeHealthRows(body []byte) ([]models.HealthLog, error) {
	var rows []healthRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	logs := make([]models.HealthLog, 0, len(rows))
	for _, row := range rows {
		log, err := row.toModel()
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}
