package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/fixitnow-backend/internal/dto"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

type QuoteHandler struct {
	ledger *service.LedgerService
}

func NewQuoteHandler(ledger *service.LedgerService) *QuoteHandler {
	return &QuoteHandler{ledger: ledger}
}

// Create POST /quotes
// Отклик мастера: лид-фи списывается атомарно с созданием отклика.
func (h *QuoteHandler) Create(c *gin.Context) {
	proID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		common.RespondBadRequest(c, "неверный job_id")
		return
	}

	quote, err := h.ledger.SubmitQuote(c.Request.Context(), proID, service.QuoteInput{
		JobID:             jobID,
		Message:           req.Message,
		Price:             req.Price,
		EstimatedDuration: req.EstimatedDuration,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// List GET /quotes?job_id=&pro_id=
func (h *QuoteHandler) List(c *gin.Context) {
	var jobID, proID *uuid.UUID

	if jobIDStr := c.Query("job_id"); jobIDStr != "" {
		parsed, err := uuid.Parse(jobIDStr)
		if err != nil {
			common.RespondBadRequest(c, "неверный job_id")
			return
		}
		jobID = &parsed
	}
	if proIDStr := c.Query("pro_id"); proIDStr != "" {
		parsed, err := uuid.Parse(proIDStr)
		if err != nil {
			common.RespondBadRequest(c, "неверный pro_id")
			return
		}
		proID = &parsed
	}

	quotes, err := h.ledger.ListQuotes(c.Request.Context(), jobID, proID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

// Get GET /quotes/:id
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	quote, err := h.ledger.GetQuote(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// UpdateStatus PUT /quotes/:id/status
// Решение клиента: pending -> accepted|rejected, переход одноразовый.
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	quote, err := h.ledger.UpdateQuoteStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
