package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

type CategoryHandler struct {
	admin *service.AdminService
}

func NewCategoryHandler(admin *service.AdminService) *CategoryHandler {
	return &CategoryHandler{admin: admin}
}

// List GET /categories
// Публичная выдача: только активные категории.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.admin.ListCategories(c.Request.Context(), true)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
