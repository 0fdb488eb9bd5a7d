package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/pkg/supabase"
)

type moodLogRepository struct {
	client *supabase.Client
}

// NewMoodLogRepository creates a mood log repository backed by Supabase.
func NewMoodLogRepository(client *supabase.Client) MoodLogRepository {
	return &moodLogRepository{client: client}
}

// moodRow mirrors the mood_logs table. PostgREST serializes date columns as
// plain YYYY-MM-DD strings, so the date field is converted explicitly.
type moodRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Mood      int       `json:"mood"`
	Notes     *string   `json:"notes"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

func (r moodRow) toModel() (models.MoodLog, error) {
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.MoodLog{}, fmt.Errorf("mood log %s: %w", r.ID, err)
	}
	return models.MoodLog{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      date,
		Mood:      r.Mood,
		Notes:     r.Notes,
		Tags:      r.Tags,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (r *moodLogRepository) Create(ctx context.Context, log *models.MoodLog) (*models.MoodLog, error) {
	data := map[string]interface{}{
		"user_id": log.UserID,
		"date":    models.DayKey(log.Date),
		"mood":    log.Mood,
	}
	if log.Notes != nil {
		data["notes"] = *log.Notes
	}
	if len(log.Tags) > 0 {
		data["tags"] = log.Tags
	}

	body, err := r.client.Insert(ctx, "mood_logs", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood log: %w", err)
	}

	rows, err := decodeMoodRows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no mood log returned")
	}
	return &rows[0], nil
}

func (r *moodLogRepository) GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodLog, error) {
	params := supabase.Filters{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", models.DayKey(start), models.DayKey(end)),
		"order":   "date.asc,created_at.asc",
	}

	body, err := r.client.Select(ctx, "mood_logs", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood logs: %w", err)
	}
	return decodeMoodRows(body)
}

func (r *moodLogRepository) ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error) {
	params := supabase.Filters{
		"select": "user_id",
		"date":   fmt.Sprintf("gte.%s", models.DayKey(since)),
	}

	body, err := r.client.Select(ctx, "mood_logs", params)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	var rows []struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if seen[row.UserID] {
			continue
		}
		seen[row.UserID] = true
		ids = append(ids, row.UserID)
	}
	return ids, nil
}

func decodeMoodRows(body []byte) ([]models.MoodLog, error) {
	var rows []moodRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	logs := make([]models.MoodLog, 0, len(rows))
	for _, row := range rows {
		log, err := row.toModel()
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}
