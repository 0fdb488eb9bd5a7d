package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sagewell/backend/internal/models"
)

type mockChatRepo struct {
	mu        sync.Mutex
	created   []models.ChatInteraction
	createErr error
	history   []models.ChatInteraction
}

func (m *mockChatRepo) Create(ctx context.Context, msg *models.ChatInteraction) (*models.ChatInteraction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	stored := *msg
	stored.ID = fmt.Sprintf("msg-%d", len(m.created)+1)
	m.created = append(m.created, stored)
	return &stored, nil
}

func (m *mockChatRepo) GetRecentByConversation(ctx context.Context, userID, conversationID string, limit int) ([]models.ChatInteraction, error) {
	return m.history, nil
}

func TestSendValidation(t *testing.T) {
	svc := NewChatService(&mockChatRepo{}, nil)

	if _, err := svc.Send(context.Background(), "", "hello", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty user: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Send(context.Background(), "u1", "   ", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("blank message: err = %v, want ErrValidation", err)
	}
}

func TestSendPersistsBothMessages(t *testing.T) {
	repo := &mockChatRepo{}
	svc := NewChatService(repo, nil)

	resp, err := svc.Send(context.Background(), "u1", "I've been stressed lately", "conv-1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !resp.Success {
		t.Error("Success = false")
	}
	if resp.ConversationID != "conv-1" {
		t.Errorf("ConversationID = %q, want conv-1", resp.ConversationID)
	}

	if len(repo.created) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(repo.created))
	}
	if repo.created[0].MessageType != models.MessageUser || repo.created[0].Content != "I've been stressed lately" {
		t.Errorf("first persisted message = %+v, want the user message", repo.created[0])
	}
	if repo.created[1].MessageType != models.MessageAssistant || repo.created[1].Content != resp.Response {
		t.Errorf("second persisted message = %+v, want the assistant reply", repo.created[1])
	}
	if repo.created[1].TokensUsed != resp.TokensUsed {
		t.Errorf("persisted tokens %d != response tokens %d", repo.created[1].TokensUsed, resp.TokensUsed)
	}
}

func TestSendMintsConversationID(t *testing.T) {
	svc := NewChatService(&mockChatRepo{}, nil)

	resp, err := svc.Send(context.Background(), "u1", "hello there", "")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.ConversationID == "" {
		t.Error("ConversationID not minted for new conversation")
	}
}

func TestSendCompanionReplyIsDeterministic(t *testing.T) {
	svc := NewChatService(&mockChatRepo{}, nil)

	first, err := svc.Send(context.Background(), "u1", "I can't sleep", "conv-1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	second, err := svc.Send(context.Background(), "u1", "I can't sleep", "conv-1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if first.Response != second.Response {
		t.Errorf("companion reply not deterministic:\n%s\nvs\n%s", first.Response, second.Response)
	}
}

func TestSendFallsBackWhenCompleterFails(t *testing.T) {
	repo := &mockChatRepo{}
	svc := NewChatService(repo, &stubCompleter{err: errors.New("provider down")})

	resp, err := svc.Send(context.Background(), "u1", "feeling overwhelmed", "conv-1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.Response == "" {
		t.Fatal("empty fallback response")
	}
	if repo.created[1].ModelUsed != "companion" {
		t.Errorf("ModelUsed = %q, want companion fallback", repo.created[1].ModelUsed)
	}
}

func TestSendUsesCompleterWhenAvailable(t *testing.T) {
	repo := &mockChatRepo{}
	completer := &stubCompleter{content: "You're doing great, keep going."}
	svc := NewChatService(repo, completer)

	resp, err := svc.Send(context.Background(), "u1", "how am I doing?", "conv-1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.Response != "You're doing great, keep going." {
		t.Errorf("Response = %q, want the completer content", resp.Response)
	}
	if resp.TokensUsed != 120 {
		t.Errorf("TokensUsed = %d, want 120", resp.TokensUsed)
	}
	if completer.calls != 1 {
		t.Errorf("completer calls = %d, want 1", completer.calls)
	}
}

func TestSendUpstreamErrorWhenPersistFails(t *testing.T) {
	repo := &mockChatRepo{createErr: errors.New("store down")}
	svc := NewChatService(repo, nil)

	if _, err := svc.Send(context.Background(), "u1", "hello", "conv-1"); !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}
