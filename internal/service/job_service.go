package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
	"github.com/ignatzorin/fixitnow-backend/internal/validation"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type UserRepositoryForJobs interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// JobService управляет заявками клиентов.
type JobService struct {
	jobs  JobRepository
	users UserRepositoryForJobs
}

func NewJobService(jobs JobRepository, users UserRepositoryForJobs) *JobService {
	return &JobService{jobs: jobs, users: users}
}

// JobInput - данные новой заявки от клиента.
type JobInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	Zipcode     string
	BudgetMin   *float64
	BudgetMax   *float64
	Timeline    string
}

// CreateJob создаёт заявку со статусом open. Имя и телефон клиента
// денормализуются в заявку, чтобы мастер видел контакты без join'а.
func (s *JobService) CreateJob(ctx context.Context, customerID uuid.UUID, in JobInput) (*models.Job, error) {
	if err := validation.ValidateLength("заголовок заявки", in.Title, validation.MinJobTitleLength, validation.MaxJobTitleLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("описание заявки", in.Description, validation.MinJobDescriptionLength, validation.MaxJobDescriptionLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("категория", in.Category); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateZipcode(in.Zipcode); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.BudgetMin != nil && in.BudgetMax != nil && *in.BudgetMin > *in.BudgetMax {
		return nil, apperror.New(apperror.ErrCodeValidation, "минимальный бюджет не может быть больше максимального")
	}

	customer, err := s.users.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}

	timeline := in.Timeline
	if timeline == "" {
		timeline = models.TimelineFlexible
	}

	job := &models.Job{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Location:      in.Location,
		Zipcode:       in.Zipcode,
		BudgetMin:     in.BudgetMin,
		BudgetMax:     in.BudgetMax,
		Timeline:      timeline,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetJob возвращает заявку по ID.
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, apperror.ErrJobNotFound
	}
	return job, err
}

// ListJobs возвращает заявки по фильтрам.
func (s *JobService) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	return s.jobs.List(ctx, filter)
}

// UpdateJobStatus меняет статус заявки. Допустимы любые из известных
// статусов: клиент может и отменить, и переоткрыть заявку.
func (s *JobService) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case models.JobStatusOpen, models.JobStatusInProgress, models.JobStatusCompleted, models.JobStatusCancelled:
	default:
		return apperror.New(apperror.ErrCodeValidation, "неизвестный статус заявки")
	}

	if err := s.jobs.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return apperror.ErrJobNotFound
		}
		return err
	}
	return nil
}
