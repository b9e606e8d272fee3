package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fixitnow-backend/internal/dto"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

type PaymentHandler struct {
	checkout *service.CheckoutService
	ledger   *service.LedgerService
}

func NewPaymentHandler(checkout *service.CheckoutService, ledger *service.LedgerService) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, ledger: ledger}
}

// Packages GET /payments/packages
func (h *PaymentHandler) Packages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"packages": h.checkout.Packages()})
}

// CreateCheckout POST /payments/create-checkout
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	proID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	result, err := h.checkout.CreateCheckoutSession(c.Request.Context(), proID, req.PackageID, req.OriginURL)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckoutStatus GET /payments/checkout-status/:sessionId
// Идемпотентный опрос: кредиты зачисляются не более одного раза.
func (h *PaymentHandler) CheckoutStatus(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		common.RespondBadRequest(c, "параметр sessionId обязателен")
		return
	}

	txn, err := h.checkout.CheckStatus(c.Request.Context(), sessionID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutStatusResponse{
		SessionID:     sessionID,
		PaymentStatus: txn.PaymentStatus,
		Status:        txn.Status,
		Amount:        txn.Amount,
		Credits:       txn.Credits,
	})
}

// History GET /payments/history
func (h *PaymentHandler) History(c *gin.Context) {
	proID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)

	payments, err := h.ledger.ListPayments(c.Request.Context(), proID, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
