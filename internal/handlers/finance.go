package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagewell/backend/internal/apierror"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/service"
)

type FinanceHandler struct {
	financeService service.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// CreateFinanceLog handles POST /api/v1/finance-logs
func (h *FinanceHandler) CreateFinanceLog(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.CreateFinanceLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	log, err := h.financeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "finance log", "")
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetFinanceLogs handles GET /api/v1/finance-logs?start=&end=
func (h *FinanceHandler) GetFinanceLogs(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	logs, err := h.financeService.GetRange(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err, "finance log", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"finance_logs": logs})
}
