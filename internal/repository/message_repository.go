package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
)

type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create сохраняет сообщение.
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	err := r.db.GetContext(ctx, msg, `
		INSERT INTO messages (conversation_id, sender_id, sender_name, receiver_id, message, read)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, conversation_id, sender_id, sender_name, receiver_id, message, read, created_at
	`, msg.ConversationID, msg.SenderID, msg.SenderName, msg.ReceiverID, msg.Message)
	if err != nil {
		return fmt.Errorf("message repository: create %w", err)
	}
	return nil
}

// ListByConversation возвращает сообщения диалога в хронологическом порядке.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC LIMIT 1000
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("message repository: list by conversation %w", err)
	}
	return messages, nil
}

// ListUserConversations собирает сводки диалогов пользователя:
// последнее сообщение и количество непрочитанных.
func (r *MessageRepository) ListUserConversations(ctx context.Context, userID uuid.UUID) ([]models.ConversationSummary, error) {
	var messages []models.Message
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC LIMIT 1000
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("message repository: list conversations %w", err)
	}

	byConv := make(map[string]*models.ConversationSummary)
	order := make([]string, 0)
	for _, msg := range messages {
		summary, ok := byConv[msg.ConversationID]
		if !ok {
			summary = &models.ConversationSummary{
				ConversationID:  msg.ConversationID,
				LastMessage:     msg.Message,
				LastMessageTime: msg.CreatedAt,
			}
			byConv[msg.ConversationID] = summary
			order = append(order, msg.ConversationID)
		}
		if msg.ReceiverID == userID && !msg.Read {
			summary.Unread++
		}
	}

	result := make([]models.ConversationSummary, 0, len(order))
	for _, id := range order {
		result = append(result, *byConv[id])
	}
	return result, nil
}

// MarkConversationRead помечает входящие сообщения диалога прочитанными.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, conversationID string, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages SET read = TRUE
		WHERE conversation_id = $1 AND receiver_id = $2 AND read = FALSE
	`, conversationID, userID)
	if err != nil {
		return fmt.Errorf("message repository: mark read %w", err)
	}
	return nil
}
