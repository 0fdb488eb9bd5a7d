package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/pkg/supabase"
)

type summaryRepository struct {
	client *supabase.Client
}

// NewSummaryRepository creates a weekly summary repository backed by
// Supabase.
func NewSummaryRepository(client *supabase.Client) SummaryRepository {
	return &summaryRepository{client: client}
}

// summaryRow mirrors the weekly_summaries table. week_start and week_end are
// date columns; the list and struct fields are jsonb.
type summaryRow struct {
	ID                  string                 `json:"id"`
	UserID              string                 `json:"user_id"`
	WeekStart           string                 `json:"week_start"`
	WeekEnd             string                 `json:"week_end"`
	OverallScore        int                    `json:"overall_score"`
	WeeklyHighlight     string                 `json:"weekly_highlight"`
	AreasOfImprovement  []string               `json:"areas_of_improvement"`
	Achievements        []string               `json:"achievements"`
	MoodInsights        string                 `json:"mood_insights"`
	HealthInsights      string                 `json:"health_insights"`
	FinanceInsights     string                 `json:"finance_insights"`
	Recommendations     models.Recommendations `json:"recommendations"`
	NextWeekGoals       []string               `json:"next_week_goals"`
	MotivationalMessage string                 `json:"motivational_message"`
	Trends              models.TrendSet        `json:"trends"`
	MoodAverage         float64                `json:"mood_average"`
	SleepAverage        float64                `json:"sleep_average"`
	StepsTotal          int                    `json:"steps_total"`
	ExerciseTotal       int                    `json:"exercise_total"`
	ExpensesTotal       float64                `json:"expenses_total"`
	DaysLogged          int                    `json:"days_logged"`
	CreatedAt           time.Time              `json:"created_at"`
}

func (r summaryRow) toModel() (models.WeeklySummary, error) {
	weekStart, err := models.ParseDate(r.WeekStart)
	if err != nil {
		return models.WeeklySummary{}, fmt.Errorf("summary %s: %w", r.ID, err)
	}
	weekEnd, err := models.ParseDate(r.WeekEnd)
	if err != nil {
		return models.WeeklySummary{}, fmt.Errorf("summary %s: %w", r.ID, err)
	}
	return models.WeeklySummary{
		ID:                  r.ID,
		UserID:              r.UserID,
		WeekStart:           weekStart,
		WeekEnd:             weekEnd,
		OverallScore:        r.OverallScore,
		WeeklyHighlight:     r.WeeklyHighlight,
		AreasOfImprovement:  r.AreasOfImprovement,
		Achievements:        r.Achievements,
		MoodInsights:        r.MoodInsights,
		HealthInsights:      r.HealthInsights,
		FinanceInsights:     r.FinanceInsights,
		Recommendations:     r.Recommendations,
		NextWeekGoals:       r.NextWeekGoals,
		MotivationalMessage: r.MotivationalMessage,
		Trends:              r.Trends,
		MoodAverage:         r.MoodAverage,
		SleepAverage:        r.SleepAverage,
		StepsTotal:          r.StepsTotal,
		ExerciseTotal:       r.ExerciseTotal,
		ExpensesTotal:       r.ExpensesTotal,
		DaysLogged:          r.DaysLogged,
		CreatedAt:           r.CreatedAt,
	}, nil
}

func (r *summaryRepository) Upsert(ctx context.Context, summary *models.WeeklySummary) (*models.WeeklySummary, error) {
	data := map[string]interface{}{
		"user_id":              summary.UserID,
		"week_start":           models.DayKey(summary.WeekStart),
		"week_end":             models.DayKey(summary.WeekEnd),
		"overall_score":        summary.OverallScore,
		"weekly_highlight":     summary.WeeklyHighlight,
		"areas_of_improvement": summary.AreasOfImprovement,
		"achievements":         summary.Achievements,
		"mood_insights":        summary.MoodInsights,
		"health_insights":      summary.HealthInsights,
		"finance_insights":     summary.FinanceInsights,
		"recommendations":      summary.Recommendations,
		"next_week_goals":      summary.NextWeekGoals,
		"motivational_message": summary.MotivationalMessage,
		"trends":               summary.Trends,
		"mood_average":         summary.MoodAverage,
		"sleep_average":        summary.SleepAverage,
		"steps_total":          summary.StepsTotal,
		"exercise_total":       summary.ExerciseTotal,
		"expenses_total":       summary.ExpensesTotal,
		"days_logged":          summary.DaysLogged,
	}

	body, err := r.client.Upsert(ctx, "weekly_summaries", data, "user_id,week_start")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert weekly summary: %w", err)
	}

	rows, err := decodeSummaryRows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no weekly summary returned")
	}
	return &rows[0], nil
}

func (r *summaryRepository) GetByUserAndWeekStart(ctx context.Context, userID string, weekStart time.Time) (*models.WeeklySummary, error) {
	params := supabase.Filters{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"week_start": fmt.Sprintf("eq.%s", models.DayKey(weekStart)),
		"limit":      "1",
	}

	body, err := r.client.Select(ctx, "weekly_summaries", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly summary: %w", err)
	}

	rows, err := decodeSummaryRows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *summaryRepository) GetLatest(ctx context.Context, userID string) (*models.WeeklySummary, error) {
	params := supabase.Filters{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"order":   "week_start.desc",
		"limit":   "1",
	}

	body, err := r.client.Select(ctx, "weekly_summaries", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest weekly summary: %w", err)
	}

	rows, err := decodeSummaryRows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *summaryRepository) List(ctx context.Context, userID string, limit int) ([]models.WeeklySummary, error) {
	params := supabase.Filters{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"order":   "week_start.desc",
	}
	if limit > 0 {
		params["limit"] = fmt.Sprintf("%d", limit)
	}

	body, err := r.client.Select(ctx, "weekly_summaries", params)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly summaries: %w", err)
	}
	return decodeSummaryRows(body)
}

func decodeSummaryRows(body []byte) ([]models.WeeklySummary, error) {
	var rows []summaryRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	summaries := make([]models.WeeklySummary, 0, len(rows))
	for _, row := range rows {
		summary, err := row.toModel()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
