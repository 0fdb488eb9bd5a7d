package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sagewell/backend/internal/llm"
	"github.com/sagewell/backend/internal/logger"
	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/internal/repository"
)

// historyLimit caps how many prior messages are replayed into the prompt.
const historyLimit = 10

type chatService struct {
	chatRepo  repository.ChatRepository
	completer llm.Completer // optional remote backend
	fallback  llm.Completer // always available, never fails
}

// NewChatService creates the chat companion service. completer may be nil,
// in which case every reply comes from the deterministic companion.
func NewChatService(chatRepo repository.ChatRepository, completer llm.Completer) ChatService {
	return &chatService{
		chatRepo:  chatRepo,
		completer: completer,
		fallback:  llm.NewCompanion(),
	}
}

func (s *chatService) Send(ctx context.Context, userID, message, conversationID string) (*models.ChatResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	log := logger.Ctx(ctx).With(
		logger.String("conversation_id", conversationID),
	)

	history, err := s.chatRepo.GetRecentByConversation(ctx, userID, conversationID, historyLimit)
	if err != nil {
		// A missing history degrades the reply, it does not block it.
		log.Warn("could not load conversation history", logger.Err(err))
		history = nil
	}

	if _, err := s.chatRepo.Create(ctx, &models.ChatInteraction{
		UserID:         userID,
		ConversationID: conversationID,
		MessageType:    models.MessageUser,
		Content:        message,
	}); err != nil {
		return nil, fmt.Errorf("%w: persisting user message: %v", ErrUpstream, err)
	}

	completion := s.reply(ctx, log, message, history)

	if _, err := s.chatRepo.Create(ctx, &models.ChatInteraction{
		UserID:         userID,
		ConversationID: conversationID,
		MessageType:    models.MessageAssistant,
		Content:        completion.Content,
		TokensUsed:     completion.TokensUsed,
		ModelUsed:      completion.Model,
	}); err != nil {
		return nil, fmt.Errorf("%w: persisting assistant message: %v", ErrUpstream, err)
	}

	return &models.ChatResponse{
		Success:        true,
		Response:       completion.Content,
		ConversationID: conversationID,
		TokensUsed:     completion.TokensUsed,
	}, nil
}

// reply obtains a completion from the configured backend, falling back to
// the deterministic companion on any failure.
func (s *chatService) reply(ctx context.Context, log logger.Logger, message string, history []models.ChatInteraction) *llm.Completion {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: llm.ChatSystemPrompt})
	for _, msg := range history {
		role := llm.RoleUser
		if msg.MessageType == models.MessageAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	if s.completer != nil {
		completion, err := s.completer.Complete(ctx, messages)
		if err == nil {
			return completion
		}
		log.Warn("completion backend failed, using companion", logger.Err(err))
	}

	completion, _ := s.fallback.Complete(ctx, messages)
	return completion
}
