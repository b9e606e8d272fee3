package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/fixitnow-backend/internal/logger"
	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fixitnow-backend/internal/repository"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type QuoteRepository interface {
	CreateWithLeadFee(ctx context.Context, quote *models.Quote, leadFee float64) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, jobID, proID *uuid.UUID) ([]models.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*models.Quote, error)
}

type UserRepositoryForLedger interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProProfile, error)
	SetWeeklyBudget(ctx context.Context, proID uuid.UUID, budget float64) error
}

type ReviewRepositoryForLedger interface {
	CreateAndRecalc(ctx context.Context, review *models.Review) error
	ListByPro(ctx context.Context, proID uuid.UUID) ([]models.Review, error)
}

type PaymentRepositoryForLedger interface {
	ListByPro(ctx context.Context, proID uuid.UUID, limit, offset int) ([]models.PaymentTransaction, error)
}

// LedgerConfig - параметры движка, передаются при конструировании,
// без модульных глобалов.
type LedgerConfig struct {
	LeadFee float64
}

// LedgerService реализует бюджетный гейт откликов, списание лид-фи,
// агрегацию рейтинга и управление недельным бюджетом.
type LedgerService struct {
	quotes   QuoteRepository
	users    UserRepositoryForLedger
	reviews  ReviewRepositoryForLedger
	payments PaymentRepositoryForLedger
	cfg      LedgerConfig
}

func NewLedgerService(
	quotes QuoteRepository,
	users UserRepositoryForLedger,
	reviews ReviewRepositoryForLedger,
	payments PaymentRepositoryForLedger,
	cfg LedgerConfig,
) *LedgerService {
	return &LedgerService{quotes: quotes, users: users, reviews: reviews, payments: payments, cfg: cfg}
}

// QuoteInput - данные отклика от мастера.
type QuoteInput struct {
	JobID             uuid.UUID
	Message           string
	Price             float64
	EstimatedDuration string
}

// SubmitQuote создаёт отклик, если недельный бюджет мастера выдерживает
// лид-фи. Гейт жёсткий: weekly_spent + fee > weekly_budget -> отказ без
// каких-либо изменений. Списание, отклик, счётчик заявки и запись о
// платеже фиксируются как единое целое.
func (s *LedgerService) SubmitQuote(ctx context.Context, proID uuid.UUID, in QuoteInput) (*models.Quote, error) {
	if in.Price <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "цена должна быть положительной")
	}
	if in.Message == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "сообщение отклика обязательно")
	}

	proUser, err := s.users.GetByID(ctx, proID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrProNotFound
		}
		return nil, err
	}

	profile, err := s.users.GetProfile(ctx, proID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrProNotFound
		}
		return nil, err
	}

	quote := &models.Quote{
		JobID:             in.JobID,
		ProID:             proID,
		ProName:           proUser.Name,
		ProPhone:          proUser.Phone,
		ProRating:         profile.Rating,
		Message:           in.Message,
		Price:             in.Price,
		EstimatedDuration: in.EstimatedDuration,
	}

	if err := s.quotes.CreateWithLeadFee(ctx, quote, s.cfg.LeadFee); err != nil {
		switch {
		case errors.Is(err, repository.ErrBudgetExceeded):
			return nil, apperror.ErrBudgetExceeded
		case errors.Is(err, common.ErrNotFound):
			// Профиль проверен выше, значит не нашлась заявка
			return nil, apperror.ErrJobNotFound
		default:
			return nil, err
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"quote_id": quote.ID,
		"pro_id":   proID,
		"lead_fee": s.cfg.LeadFee,
	}).Info("отклик создан, лид-фи списано")

	return quote, nil
}

// UpdateQuoteStatus выполняет переход pending -> accepted|rejected.
// Лид-фи при отклонении не возвращается - осознанное бизнес-правило.
func (s *LedgerService) UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, newStatus string) (*models.Quote, error) {
	if newStatus != models.QuoteStatusAccepted && newStatus != models.QuoteStatusRejected {
		return nil, apperror.New(apperror.ErrCodeValidation, "статус должен быть accepted или rejected")
	}

	quote, err := s.quotes.UpdateStatus(ctx, quoteID, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			return nil, apperror.ErrQuoteNotFound
		case errors.Is(err, repository.ErrInvalidTransition):
			return nil, apperror.New(apperror.ErrCodeInvalidTransition, "статус отклика уже финальный")
		default:
			return nil, err
		}
	}
	return quote, nil
}

// GetQuote возвращает отклик по ID.
func (s *LedgerService) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, apperror.ErrQuoteNotFound
	}
	return quote, err
}

// ListQuotes возвращает отклики по заявке и/или мастеру.
func (s *LedgerService) ListQuotes(ctx context.Context, jobID, proID *uuid.UUID) ([]models.Quote, error) {
	return s.quotes.List(ctx, jobID, proID)
}

// RecordReview сохраняет отзыв и пересчитывает рейтинг мастера как
// среднее по всем его отзывам. total_jobs увеличивается на каждый отзыв
// независимо от статуса заявки - поведение исходной платформы.
func (s *LedgerService) RecordReview(ctx context.Context, customerID uuid.UUID, jobID, proID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.New(apperror.ErrCodeValidation, "рейтинг должен быть от 1 до 5")
	}

	customer, err := s.users.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}

	review := &models.Review{
		JobID:        jobID,
		CustomerID:   customerID,
		CustomerName: customer.Name,
		ProID:        proID,
		Rating:       rating,
		Comment:      comment,
	}

	if err := s.reviews.CreateAndRecalc(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews возвращает отзывы о мастере.
func (s *LedgerService) ListReviews(ctx context.Context, proID uuid.UUID) ([]models.Review, error) {
	return s.reviews.ListByPro(ctx, proID)
}

// SetWeeklyBudget напрямую выставляет недельный бюджет. weekly_spent
// не проверяется и не меняется: перерасход доживёт до следующего
// списания, где его остановит гейт.
func (s *LedgerService) SetWeeklyBudget(ctx context.Context, proID uuid.UUID, budget float64) error {
	if budget < 0 {
		return apperror.New(apperror.ErrCodeValidation, "бюджет не может быть отрицательным")
	}

	if err := s.users.SetWeeklyBudget(ctx, proID, budget); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return apperror.ErrProfileNotFound
		}
		return err
	}
	return nil
}

// ListPayments возвращает историю платежей мастера.
func (s *LedgerService) ListPayments(ctx context.Context, proID uuid.UUID, limit, offset int) ([]models.PaymentTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.payments.ListByPro(ctx, proID, limit, offset)
}
