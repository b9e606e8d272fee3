package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/fixitnow-backend/internal/dto"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

type ReviewHandler struct {
	ledger *service.LedgerService
}

func NewReviewHandler(ledger *service.LedgerService) *ReviewHandler {
	return &ReviewHandler{ledger: ledger}
}

// Create POST /reviews
// Отзыв сразу пересчитывает рейтинг мастера.
func (h *ReviewHandler) Create(c *gin.Context) {
	customerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		common.RespondBadRequest(c, "неверный job_id")
		return
	}
	proID, err := uuid.Parse(req.ProID)
	if err != nil {
		common.RespondBadRequest(c, "неверный pro_id")
		return
	}

	review, err := h.ledger.RecordReview(c.Request.Context(), customerID, jobID, proID, req.Rating, req.Comment)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListByPro GET /reviews/pro/:proId
func (h *ReviewHandler) ListByPro(c *gin.Context) {
	proID, err := common.ParseUUIDParam(c, "proId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	reviews, err := h.ledger.ListReviews(c.Request.Context(), proID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
