package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sagewell/backend/internal/apierror"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/service"
)

type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage handles POST /api/v1/chat/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	var fieldErrors []apierror.FieldError
	if req.UserID == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "userId",
			Message: "is required",
			Code:    "required",
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "message",
			Message: "is required",
			Code:    "required",
		})
	}
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	resp, err := h.chatService.Send(c.Request.Context(), req.UserID, req.Message, req.ConversationID)
	if err != nil {
		respondServiceError(c, err, "chat message", req.ConversationID)
		return
	}

	c.JSON(http.StatusOK, resp)
}
