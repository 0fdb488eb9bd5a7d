package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/pkg/supabase"
)

type financeLogRepository struct {
	client *supabase.Client
}

// NewFinanceLogRepository creates a finance log repository backed by Supabase.
func NewFinanceLogRepository(client *supabase.Client) FinanceLogRepository {
	return &financeLogRepository{client: client}
}

type financeRow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r financeRow) toModel() (models.FinanceLog, error) {
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.FinanceLog{}, fmt.Errorf("finance log %s: %w", r.ID, err)
	}
	return models.FinanceLog{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        date,
		Category:    models.FinanceCategory(r.Category),
		Amount:      r.Amount,
		Description: r.Description,
		Type:        models.EntryType(r.Type),
		CreatedAt:   r.CreatedAt,
	}, nil
}

func (r *financeLogRepository) Create(ctx context.Context, log *models.FinanceLog) (*models.FinanceLog, error) {
	data := map[string]interface{}{
		"user_id":     log.UserID,
		"date":        models.DayKey(log.Date),
		"category":    log.Category,
		"amount":      log.Amount,
		"description": log.Description,
		"type":        log.Type,
	}

	body, err := r.client.Insert(ctx, "finance_logs", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create finance log: %w", err)
	}

	rows, err := decodeFinanceRows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no finance log returned")
	}
	return &rows[0], nil
}

func (r *financeLogRepository) GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.FinanceLog, error) {
	params := supabase.Filters{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", models.DayKey(start), models.DayKey(end)),
		"order":   "date.asc,created_at.asc",
	}

	body, err := r.client.Select(ctx, "finance_logs", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get finance logs: %w", err)
	}
	return decodeFinanceRows(body)
}

func decodeFinanceRows(body []byte) ([]models.FinanceLog, error) {
	var rows []financeRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	logs := make([]models.FinanceLog, 0, len(rows))
	for _, row := range rows {
		log, err := row.toModel()
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}
