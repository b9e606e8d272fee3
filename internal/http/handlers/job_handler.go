package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/fixitnow-backend/internal/dto"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

type JobHandler struct {
	jobs *service.JobService
}

func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	job, err := h.jobs.CreateJob(c.Request.Context(), userID, service.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Zipcode:     req.Zipcode,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Timeline:    req.Timeline,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// List GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	filter := models.JobFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Zipcode:  c.Query("zipcode"),
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			common.RespondBadRequest(c, "неверный customer_id")
			return
		}
		filter.CustomerID = &customerID
	}

	jobs, err := h.jobs.ListJobs(c.Request.Context(), filter)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// Get GET /jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	job, err := h.jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateStatus PUT /jobs/:id/status
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	if err := h.jobs.UpdateJobStatus(c.Request.Context(), id, req.Status); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "статус заявки обновлён", nil)
}
