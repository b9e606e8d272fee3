package dto

import (
	"time"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
)

// ErrorResponse - единый формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse - единый формат успешного ответа с сообщением.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse возвращается после регистрации и входа.
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// CheckoutStatusResponse - статус покупки кредитов для опроса клиентом.
type CheckoutStatusResponse struct {
	SessionID     string  `json:"session_id"`
	PaymentStatus string  `json:"payment_status"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Credits       float64 `json:"credits"`
}

// WebhookAckResponse подтверждает приём вебхука провайдеру.
type WebhookAckResponse struct {
	Status string `json:"status"`
}
