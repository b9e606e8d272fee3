// Package stripe оборачивает SDK Stripe в узкий интерфейс платёжного
// провайдера: создание checkout-сессии, опрос статуса и разбор вебхуков.
// Остальной код работает только с типами этого пакета.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	stripesdk "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// CheckoutSession результат создания сессии у провайдера.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// SessionStatus статус оплаты, наблюдаемый у провайдера.
type SessionStatus struct {
	SessionID     string
	PaymentStatus string
	AmountTotal   float64
	Metadata      map[string]string
}

// WebhookEvent разобранное и проверенное по подписи событие вебхука.
type WebhookEvent struct {
	EventType     string
	SessionID     string
	PaymentStatus string
	Metadata      map[string]string
}

// Client вызывает Stripe API с ключом из конфигурации.
type Client struct {
	webhookSecret string
}

// NewClient настраивает глобальный API-ключ SDK и возвращает клиент.
func NewClient(secretKey, webhookSecret string) *Client {
	stripesdk.Key = secretKey
	return &Client{webhookSecret: webhookSecret}
}

// CreateSession создаёт Stripe Checkout Session на фиксированную сумму пакета.
// Сумма и валюта задаются сервером, клиентские значения сюда не попадают.
func (c *Client) CreateSession(ctx context.Context, amount float64, currency, successURL, cancelURL string, metadata map[string]string) (*CheckoutSession, error) {
	params := &stripesdk.CheckoutSessionParams{
		Mode: stripesdk.String(string(stripesdk.CheckoutSessionModePayment)),
		LineItems: []*stripesdk.CheckoutSessionLineItemParams{
			{
				PriceData: &stripesdk.CheckoutSessionLineItemPriceDataParams{
					Currency: stripesdk.String(currency),
					ProductData: &stripesdk.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripesdk.String("Лид-кредиты FixItNow"),
					},
					UnitAmount: stripesdk.Int64(int64(amount * 100)),
				},
				Quantity: stripesdk.Int64(1),
			},
		},
		SuccessURL: stripesdk.String(successURL),
		CancelURL:  stripesdk.String(cancelURL),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: создание сессии: %w", err)
	}

	return &CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// GetStatus возвращает текущий статус оплаты сессии.
func (c *Client) GetStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	params := &stripesdk.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: статус сессии %s: %w", sessionID, err)
	}

	return &SessionStatus{
		SessionID:     sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   float64(sess.AmountTotal) / 100,
		Metadata:      sess.Metadata,
	}, nil
}

// VerifyAndParseWebhook проверяет подпись вебхука и извлекает данные сессии.
// Вебхук без валидной подписи не принимается.
func (c *Client) VerifyAndParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("stripe: проверка подписи вебхука: %w", err)
	}

	parsed := &WebhookEvent{EventType: string(event.Type)}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed", "checkout.session.expired":
		var sess stripesdk.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("stripe: разбор сессии из события %s: %w", event.Type, err)
		}
		parsed.SessionID = sess.ID
		parsed.PaymentStatus = string(sess.PaymentStatus)
		parsed.Metadata = sess.Metadata
	}

	return parsed, nil
}
