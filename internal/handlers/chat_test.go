package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sagewell/backend/internal/apierror"
	"github.com/sagewell/backend/internal/models"
)

type mockChatService struct {
	sendFunc func(ctx context.Context, userID, message, conversationID string) (*models.ChatResponse, error)
}

func (m *mockChatService) Send(ctx context.Context, userID, message, conversationID string) (*models.ChatResponse, error) {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, userID, message, conversationID)
	}
	return &models.ChatResponse{
		Success:        true,
		Response:       "reply",
		ConversationID: conversationID,
		TokensUsed:     42,
	}, nil
}

func newChatRouter(svc *mockChatService) *gin.Engine {
	r := gin.New()
	h := NewChatHandler(svc)
	r.POST("/api/v1/chat/messages", h.SendMessage)
	return r
}

func TestSendMessageValidRequest(t *testing.T) {
	r := newChatRouter(&mockChatService{})

	w := postJSON(t, r, "/api/v1/chat/messages", map[string]string{
		"userId":         "u1",
		"message":        "hello",
		"conversationId": "conv-1",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp models.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Response != "reply" || resp.TokensUsed != 42 {
		t.Errorf("response = %+v", resp)
	}
}

func TestSendMessageAggregatesFieldErrors(t *testing.T) {
	r := newChatRouter(&mockChatService{})

	w := postJSON(t, r, "/api/v1/chat/messages", map[string]string{
		"message": "  ",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var problem apierror.ProblemDetails
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if len(problem.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2 (userId and message): %+v", len(problem.Errors), problem.Errors)
	}
}
