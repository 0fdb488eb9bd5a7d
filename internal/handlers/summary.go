package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sagewell/backend/internal/apierror"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/service"
)

type SummaryHandler struct {
	summaryService service.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GenerateSummary handles POST /api/v1/summaries/generate
func (h *SummaryHandler) GenerateSummary(c *gin.Context) {
	var raw models.RawGenerateSummaryRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	var fieldErrors []apierror.FieldError
	var weekStart, weekEnd time.Time

	if raw.UserID == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "userId",
			Message: "is required",
			Code:    "required",
		})
	}

	if raw.WeekStart == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "weekStart",
			Message: "is required",
			Code:    "required",
		})
	} else {
		ws, err := models.ParseDate(raw.WeekStart)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "weekStart",
				Message: "must be a valid YYYY-MM-DD date",
				Code:    "invalid_format",
			})
		} else {
			weekStart = ws
		}
	}

	if raw.WeekEnd == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "weekEnd",
			Message: "is required",
			Code:    "required",
		})
	} else {
		we, err := models.ParseDate(raw.WeekEnd)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "weekEnd",
				Message: "must be a valid YYYY-MM-DD date",
				Code:    "invalid_format",
			})
		} else {
			weekEnd = we
		}
	}

	if len(fieldErrors) == 0 && weekEnd.Before(weekStart) {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "weekEnd",
			Message: "must not precede weekStart",
			Code:    "invalid_range",
		})
	}

	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	summary, err := h.summaryService.Generate(c.Request.Context(), raw.UserID, weekStart, weekEnd)
	if err != nil {
		respondServiceError(c, err, "summary", raw.UserID)
		return
	}

	c.JSON(http.StatusOK, models.GenerateSummaryResponse{
		Success: true,
		Summary: summary,
	})
}

// GetLatestSummary handles GET /api/v1/summaries/latest?userId=
func (h *SummaryHandler) GetLatestSummary(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "userId", Message: "is required", Code: "required"},
		}))
		return
	}

	summary, err := h.summaryService.GetLatest(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "summary", userID)
		return
	}

	c.JSON(http.StatusOK, models.GenerateSummaryResponse{
		Success: true,
		Summary: summary,
	})
}

// ListSummaries handles GET /api/v1/summaries?userId=&limit=
func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "userId", Message: "is required", Code: "required"},
		}))
		return
	}

	limit := 12
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "limit", Message: "must be an integer between 1 and 100", Code: "invalid_format"},
			}))
			return
		}
		limit = n
	}

	summaries, err := h.summaryService.List(c.Request.Context(), userID, limit)
	if err != nil {
		respondServiceError(c, err, "summary", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"summaries": summaries,
	})
}
