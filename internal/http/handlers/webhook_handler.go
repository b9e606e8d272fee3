package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fixitnow-backend/internal/dto"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

// Лимит тела вебхука, защита от раздутых запросов.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	checkout *service.CheckoutService
}

func NewWebhookHandler(checkout *service.CheckoutService) *WebhookHandler {
	return &WebhookHandler{checkout: checkout}
}

// Stripe POST /webhook/stripe
// Событие без валидной подписи отклоняется. Событие про неизвестную
// транзакцию подтверждается, чтобы провайдер не ретраил его бесконечно.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать тело запроса")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		common.RespondBadRequest(c, "отсутствует подпись вебхука")
		return
	}

	if err := h.checkout.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAckResponse{Status: "success"})
}
