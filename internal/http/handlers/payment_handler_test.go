package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaymentHandler_CreateCheckout_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &PaymentHandler{}
	r.POST("/payments/create-checkout", handler.CreateCheckout)

	req, _ := http.NewRequest("POST", "/payments/create-checkout",
		strings.NewReader(`{"package_id":"starter","origin_url":"https://app.example.com"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentHandler_History_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &PaymentHandler{}
	r.GET("/payments/history", handler.History)

	req, _ := http.NewRequest("GET", "/payments/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookHandler_Stripe_MissingSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &WebhookHandler{}
	r.POST("/webhook/stripe", handler.Stripe)

	req, _ := http.NewRequest("POST", "/webhook/stripe", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
