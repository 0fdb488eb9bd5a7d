package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagewell/backend/internal/apierror"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/service"
)

type HealthHandler struct {
	healthService service.HealthService
}

// NewHealthHandler creates a new health log handler
func NewHealthHandler(healthService service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// UpsertHealthLog handles PUT /api/v1/health-logs. A second write for the
// same date replaces the first.
func (h *HealthHandler) UpsertHealthLog(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.UpsertHealthLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	log, err := h.healthService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "health log", "")
		return
	}

	c.JSON(http.StatusOK, log)
}

// GetHealthLogs handles GET /api/v1/health-logs?start=&end=
func (h *HealthHandler) GetHealthLogs(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	logs, err := h.healthService.GetRange(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err, "health log", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"health_logs": logs})
}
