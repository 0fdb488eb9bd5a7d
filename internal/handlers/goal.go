package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagewell/backend/internal/apierror"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/service"
)

type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "goal", "")
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// ListGoals handles GET /api/v1/goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "goal", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// UpdateGoal handles PATCH /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	goalID := c.Param("id")

	var req models.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), userID, goalID, &req)
	if err != nil {
		respondServiceError(c, err, "goal", goalID)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal handles DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	goalID := c.Param("id")

	if err := h.goalService.Delete(c.Request.Context(), userID, goalID); err != nil {
		respondServiceError(c, err, "goal", goalID)
		return
	}

	c.Status(http.StatusNoContent)
}
