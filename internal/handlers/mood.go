package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sagewell/backend/internal/apierror"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/service"
)

// defaultRangeDays is the lookback window when a list request carries no
// explicit range.
const defaultRangeDays = 30

type MoodHandler struct {
	moodService service.MoodService
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(moodService service.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

// CreateMoodLog handles POST /api/v1/mood-logs
func (h *MoodHandler) CreateMoodLog(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.CreateMoodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	log, err := h.moodService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "mood log", "")
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetMoodLogs handles GET /api/v1/mood-logs?start=&end=
func (h *MoodHandler) GetMoodLogs(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	logs, err := h.moodService.GetRange(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err, "mood log", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"mood_logs": logs})
}

// dateRangeQuery parses optional start/end query parameters, defaulting to
// the last defaultRangeDays days. Writes a validation problem and returns
// ok=false on malformed input.
func dateRangeQuery(c *gin.Context) (start, end time.Time, ok bool) {
	var fieldErrors []apierror.FieldError

	end = time.Now().UTC().Truncate(24 * time.Hour)
	start = end.AddDate(0, 0, -defaultRangeDays)

	if raw := c.Query("start"); raw != "" {
		t, err := models.ParseDate(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "start",
				Message: "must be a valid YYYY-MM-DD date",
				Code:    "invalid_format",
			})
		} else {
			start = t
		}
	}
	if raw := c.Query("end"); raw != "" {
		t, err := models.ParseDate(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "end",
				Message: "must be a valid YYYY-MM-DD date",
				Code:    "invalid_format",
			})
		} else {
			end = t
		}
	}

	if len(fieldErrors) == 0 && end.Before(start) {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "end",
			Message: "must not precede start",
			Code:    "invalid_range",
		})
	}

	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
