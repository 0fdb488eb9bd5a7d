package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/pkg/supabase"
)

type goalRepository struct {
	client *supabase.Client
}

// NewGoalRepository creates a goal repository backed by Supabase.
func NewGoalRepository(client *supabase.Client) GoalRepository {
	return &goalRepository{client: client}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	data := map[string]interface{}{
		"user_id":      goal.UserID,
		"title":        goal.Title,
		"description":  goal.Description,
		"is_completed": goal.IsCompleted,
	}

	body, err := r.client.Insert(ctx, "goals", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	var goals []models.Goal
	if err := json.Unmarshal(body, &goals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("no goal returned")
	}
	return &goals[0], nil
}

func (r *goalRepository) GetByUserID(ctx context.Context, userID string) ([]models.Goal, error) {
	params := supabase.Filters{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"order":   "created_at.desc",
	}

	body, err := r.client.Select(ctx, "goals", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}

	var goals []models.Goal
	if err := json.Unmarshal(body, &goals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, id string, goal *models.Goal) (*models.Goal, error) {
	data := make(map[string]interface{})
	if goal.Title != "" {
		data["title"] = goal.Title
	}
	if goal.Description != "" {
		data["description"] = goal.Description
	}
	data["is_completed"] = goal.IsCompleted

	params := supabase.Filters{"id": fmt.Sprintf("eq.%s", id)}
	body, err := r.client.UpdateWhere(ctx, "goals", params, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	var goals []models.Goal
	if err := json.Unmarshal(body, &goals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(goals) == 0 {
		return nil, ErrNotFound
	}
	return &goals[0], nil
}

func (r *goalRepository) Delete(ctx context.Context, id string) error {
	params := supabase.Filters{"id": fmt.Sprintf("eq.%s", id)}
	if err := r.client.DeleteWhere(ctx, "goals", params); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
