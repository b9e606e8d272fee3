package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/fixitnow-backend/internal/dto"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send POST /messages
func (h *MessageHandler) Send(c *gin.Context) {
	senderID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		common.RespondBadRequest(c, "неверный receiver_id")
		return
	}

	msg, err := h.messages.SendMessage(c.Request.Context(), senderID, req.ConversationID, receiverID, req.Message)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetConversation GET /messages/:conversationId
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	conversationID := c.Param("conversationId")
	if conversationID == "" {
		common.RespondBadRequest(c, "параметр conversationId обязателен")
		return
	}

	messages, err := h.messages.GetConversation(c.Request.Context(), userID, conversationID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ListConversations GET /conversations
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	conversations, err := h.messages.ListConversations(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}
