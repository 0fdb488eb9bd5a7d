package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sagewell/backend/internal/models"
	"github.com/sagewell/backend/pkg/supabase"
)

type chatRepository struct {
	client *supabase.Client
}

// NewChatRepository creates a chat interaction repository backed by Supabase.
func NewChatRepository(client *supabase.Client) ChatRepository {
	return &chatRepository{client: client}
}

func (r *chatRepository) Create(ctx context.Context, msg *models.ChatInteraction) (*models.ChatInteraction, error) {
	data := map[string]interface{}{
		"user_id":         msg.UserID,
		"conversation_id": msg.ConversationID,
		"message_type":    msg.MessageType,
		"content":         msg.Content,
		"tokens_used":     msg.TokensUsed,
	}
	if msg.ModelUsed != "" {
		data["model_used"] = msg.ModelUsed
	}

	body, err := r.client.Insert(ctx, "ai_interactions", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat interaction: %w", err)
	}

	var msgs []models.ChatInteraction
	if err := json.Unmarshal(body, &msgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("no chat interaction returned")
	}
	return &msgs[0], nil
}

func (r *chatRepository) GetRecentByConversation(ctx context.Context, userID, conversationID string, limit int) ([]models.ChatInteraction, error) {
	params := supabase.Filters{
		"user_id":         fmt.Sprintf("eq.%s", userID),
		"conversation_id": fmt.Sprintf("eq.%s", conversationID),
		"order":           "created_at.desc",
	}
	if limit > 0 {
		params["limit"] = fmt.Sprintf("%d", limit)
	}

	body, err := r.client.Select(ctx, "ai_interactions", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat interactions: %w", err)
	}

	var msgs []models.ChatInteraction
	if err := json.Unmarshal(body, &msgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// Rows come back newest-first; return them oldest-first for prompt
	// assembly.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
