package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

// SeedHandler наполняет базу демо-данными. Подключается только вне production.
type SeedHandler struct {
	seed *service.SeedService
}

func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed POST /dev/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	if err := h.seed.Seed(c.Request.Context()); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "демо-данные загружены", nil)
}
