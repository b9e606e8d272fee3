package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/fixitnow-backend/internal/logger"
	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
	"github.com/ignatzorin/fixitnow-backend/internal/validation"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
	ListUserConversations(ctx context.Context, userID uuid.UUID) ([]models.ConversationSummary, error)
	MarkConversationRead(ctx context.Context, conversationID string, userID uuid.UUID) error
}

type UserRepositoryForMessages interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// MessageNotifier доставляет событие нового сообщения онлайн-получателю.
type MessageNotifier interface {
	NotifyUser(userID uuid.UUID, event string, data any) error
}

// MessageService обрабатывает переписку клиента и мастера.
type MessageService struct {
	messages MessageRepository
	users    UserRepositoryForMessages
	notifier MessageNotifier
}

func NewMessageService(messages MessageRepository, users UserRepositoryForMessages, notifier MessageNotifier) *MessageService {
	return &MessageService{messages: messages, users: users, notifier: notifier}
}

// SendMessage сохраняет сообщение и пушит его получателю, если тот онлайн.
// Недоставленный пуш не считается ошибкой: история хранится в БД.
func (s *MessageService) SendMessage(ctx context.Context, senderID uuid.UUID, conversationID string, receiverID uuid.UUID, text string) (*models.Message, error) {
	if err := validation.ValidateNonEmpty("conversation_id", conversationID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("сообщение", text, 1, validation.MaxMessageLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderName:     sender.Name,
		ReceiverID:     receiverID,
		Message:        text,
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyUser(receiverID, "message.new", msg); err != nil {
			logger.Log.WithField("receiver_id", receiverID).Warnf("не удалось отправить пуш: %v", err)
		}
	}

	return msg, nil
}

// GetConversation возвращает сообщения диалога и помечает входящие
// прочитанными для запрашивающего.
func (s *MessageService) GetConversation(ctx context.Context, userID uuid.UUID, conversationID string) ([]models.Message, error) {
	messages, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.messages.MarkConversationRead(ctx, conversationID, userID); err != nil {
		logger.Log.WithField("conversation_id", conversationID).Warnf("не удалось пометить прочитанными: %v", err)
	}

	return messages, nil
}

// ListConversations возвращает сводки диалогов пользователя.
func (s *MessageService) ListConversations(ctx context.Context, userID uuid.UUID) ([]models.ConversationSummary, error) {
	return s.messages.ListUserConversations(ctx, userID)
}
