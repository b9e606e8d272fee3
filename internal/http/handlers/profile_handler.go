package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fixitnow-backend/internal/dto"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	ledger   *service.LedgerService
}

func NewProfileHandler(profiles *service.ProfileService, ledger *service.LedgerService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, ledger: ledger}
}

// Search GET /pros?category=&location=
func (h *ProfileHandler) Search(c *gin.Context) {
	pros, err := h.profiles.SearchPros(c.Request.Context(), c.Query("category"), c.Query("location"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pros": pros})
}

// Get GET /pros/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	proID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	pro, err := h.profiles.GetPro(c.Request.Context(), proID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, pro)
}

// UpdateProfile PUT /pros/profile
// Мастер обновляет собственный профиль.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	proID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), proID, service.ProfileInput{
		Bio:             req.Bio,
		Services:        req.Services,
		ServiceAreas:    req.ServiceAreas,
		HourlyRate:      req.HourlyRate,
		YearsExperience: req.YearsExperience,
		BudgetActive:    req.BudgetActive,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SetBudget PUT /pros/:id/budget?budget=
// Недельный бюджет передаётся query-параметром.
func (h *ProfileHandler) SetBudget(c *gin.Context) {
	proID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	currentID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	// Бюджет меняет только сам мастер
	if currentID != proID {
		common.RespondError(c, http.StatusForbidden, "недостаточно прав")
		return
	}

	budgetStr := c.Query("budget")
	if budgetStr == "" {
		common.RespondBadRequest(c, "параметр budget обязателен")
		return
	}
	budget, err := strconv.ParseFloat(budgetStr, 64)
	if err != nil {
		common.RespondBadRequest(c, "параметр budget должен быть числом")
		return
	}

	if err := h.ledger.SetWeeklyBudget(c.Request.Context(), proID, budget); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "недельный бюджет обновлён", gin.H{"weekly_budget": budget})
}
