package models

import (
	"time"

	"github.com/google/uuid"
)

// Message описывает сообщение между клиентом и мастером.
// conversation_id собирается на клиенте как job_id + customer_id + pro_id.
type Message struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	SenderID       uuid.UUID `db:"sender_id" json:"sender_id"`
	SenderName     string    `db:"sender_name" json:"sender_name"`
	ReceiverID     uuid.UUID `db:"receiver_id" json:"receiver_id"`
	Message        string    `db:"message" json:"message"`
	Read           bool      `db:"read" json:"read"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ConversationSummary сводка по диалогу для списка бесед.
type ConversationSummary struct {
	ConversationID  string    `json:"conversation_id"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	Unread          int       `json:"unread"`
}
