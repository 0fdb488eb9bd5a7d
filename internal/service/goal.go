package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/repository"
)

type goalService struct {
	repo repository.GoalRepository
}

// NewGoalService creates the goal service.
func NewGoalService(repo repository.GoalRepository) GoalService {
	return &goalService{repo: repo}
}

func (s *goalService) Create(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	return s.repo.Create(ctx, &models.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
}

func (s *goalService) List(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *goalService) Update(ctx context.Context, userID, goalID string, req *models.UpdateGoalRequest) (*models.Goal, error) {
	existing, err := s.findOwned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.IsCompleted != nil {
		existing.IsCompleted = *req.IsCompleted
	}

	return s.repo.Update(ctx, goalID, existing)
}

func (s *goalService) Delete(ctx context.Context, userID, goalID string) error {
	if _, err := s.findOwned(ctx, userID, goalID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, goalID)
}

// findOwned loads the goal and checks it belongs to userID. Ownership
// violations surface as not-found to avoid leaking other users' ids.
func (s *goalService) findOwned(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	goals, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID == goalID {
			return &goals[i], nil
		}
	}
	return nil, repository.ErrNotFound
}
