package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fixitnow-backend/internal/dto"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/repository"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Analytics GET /admin/analytics
func (h *AdminHandler) Analytics(c *gin.Context) {
	analytics, err := h.admin.GetAnalytics(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// GetSettings GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.admin.GetSettings(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings PUT /admin/settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	settings, err := h.admin.UpdateSettings(c.Request.Context(), repository.SettingsUpdate{
		LeadFee:            req.LeadFee,
		PlatformCommission: req.PlatformCommission,
		MinQuoteAmount:     req.MinQuoteAmount,
		MaxQuoteAmount:     req.MaxQuoteAmount,
		WeeklyBudgetMin:    req.WeeklyBudgetMin,
		AutoApprovePros:    req.AutoApprovePros,
		EnableStripe:       req.EnableStripe,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// ListCategories GET /admin/categories
// Админ видит и отключённые категории.
func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.admin.ListCategories(c.Request.Context(), false)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category, err := h.admin.CreateCategory(c.Request.Context(), service.CategoryInput{
		Name:         req.Name,
		Value:        req.Value,
		Icon:         req.Icon,
		Color:        req.Color,
		IsActive:     isActive,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory PUT /admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	err = h.admin.UpdateCategory(c.Request.Context(), id, repository.CategoryUpdate{
		Name:         req.Name,
		Icon:         req.Icon,
		Color:        req.Color,
		IsActive:     req.IsActive,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "категория обновлена", nil)
}

// DeleteCategory DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.admin.DeleteCategory(c.Request.Context(), id); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "категория удалена", nil)
}
