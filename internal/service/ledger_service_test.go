package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fixitnow-backend/internal/repository"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProProfile), args.Error(1)
}

func (m *mockUserRepo) SetWeeklyBudget(ctx context.Context, proID uuid.UUID, budget float64) error {
	args := m.Called(ctx, proID, budget)
	return args.Error(0)
}

type mockQuoteRepo struct {
	mock.Mock
}

func (m *mockQuoteRepo) CreateWithLeadFee(ctx context.Context, quote *models.Quote, leadFee float64) error {
	args := m.Called(ctx, quote, leadFee)
	return args.Error(0)
}

func (m *mockQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) List(ctx context.Context, jobID, proID *uuid.UUID) ([]models.Quote, error) {
	args := m.Called(ctx, jobID, proID)
	return args.Get(0).([]models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*models.Quote, error) {
	args := m.Called(ctx, id, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) CreateAndRecalc(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) ListByPro(ctx context.Context, proID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, proID)
	return args.Get(0).([]models.Review), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) ListByPro(ctx context.Context, proID uuid.UUID, limit, offset int) ([]models.PaymentTransaction, error) {
	args := m.Called(ctx, proID, limit, offset)
	return args.Get(0).([]models.PaymentTransaction), args.Error(1)
}

// gatedQuoteRepo воспроизводит бюджетный гейт хранилища в памяти:
// условное списание под мьютексом, как условный UPDATE в Postgres.
type gatedQuoteRepo struct {
	mu           sync.Mutex
	weeklyBudget float64
	weeklySpent  float64
	created      int
}

func (g *gatedQuoteRepo) CreateWithLeadFee(ctx context.Context, quote *models.Quote, leadFee float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.weeklySpent+leadFee > g.weeklyBudget {
		return repository.ErrBudgetExceeded
	}
	g.weeklySpent += leadFee
	g.created++
	quote.ID = uuid.New()
	quote.Status = models.QuoteStatusPending
	return nil
}

func (g *gatedQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	return nil, common.ErrNotFound
}

func (g *gatedQuoteRepo) List(ctx context.Context, jobID, proID *uuid.UUID) ([]models.Quote, error) {
	return nil, nil
}

func (g *gatedQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*models.Quote, error) {
	return nil, common.ErrNotFound
}

func newLedgerWithGate(t *testing.T, budget, leadFee float64) (*LedgerService, *gatedQuoteRepo, uuid.UUID) {
	t.Helper()

	proID := uuid.New()
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, proID).Return(&models.User{ID: proID, Name: "Мастер", Role: models.RolePro}, nil)
	users.On("GetProfile", mock.Anything, proID).Return(&models.ProProfile{UserID: proID, WeeklyBudget: budget}, nil)

	gate := &gatedQuoteRepo{weeklyBudget: budget}
	svc := NewLedgerService(gate, users, new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: leadFee})
	return svc, gate, proID
}

func TestLedgerService_SubmitQuote_BudgetGate(t *testing.T) {
	// Бюджет 20, лид-фи 10: два отклика проходят, третий блокируется
	svc, gate, proID := newLedgerWithGate(t, 20, 10)
	ctx := context.Background()
	in := QuoteInput{JobID: uuid.New(), Message: "Сделаю за день", Price: 150}

	first, err := svc.SubmitQuote(ctx, proID, in)
	assert.NoError(t, err)
	assert.Equal(t, models.QuoteStatusPending, first.Status)

	_, err = svc.SubmitQuote(ctx, proID, in)
	assert.NoError(t, err)

	_, err = svc.SubmitQuote(ctx, proID, in)
	assert.Error(t, err)
	assert.True(t, apperror.IsBudgetExceeded(err))

	assert.Equal(t, 2, gate.created)
	assert.Equal(t, 20.0, gate.weeklySpent)
}

func TestLedgerService_SubmitQuote_ExactBudgetAllowed(t *testing.T) {
	// weekly_spent + fee == weekly_budget проходит, строгое неравенство в гейте
	svc, gate, proID := newLedgerWithGate(t, 10, 10)
	ctx := context.Background()

	_, err := svc.SubmitQuote(ctx, proID, QuoteInput{JobID: uuid.New(), Message: "ok", Price: 50})
	assert.NoError(t, err)
	assert.Equal(t, 10.0, gate.weeklySpent)
}

func TestLedgerService_SubmitQuote_ConcurrentGate(t *testing.T) {
	// 10 конкурентных откликов при бюджете на 3: ровно 3 списания
	svc, gate, proID := newLedgerWithGate(t, 30, 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, blocked := 0, 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitQuote(ctx, proID, QuoteInput{JobID: uuid.New(), Message: "ok", Price: 100})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if apperror.IsBudgetExceeded(err) {
				blocked++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 7, blocked)
	assert.Equal(t, 30.0, gate.weeklySpent)
}

func TestLedgerService_SubmitQuote_Validation(t *testing.T) {
	svc, _, proID := newLedgerWithGate(t, 100, 10)
	ctx := context.Background()

	_, err := svc.SubmitQuote(ctx, proID, QuoteInput{JobID: uuid.New(), Message: "ok", Price: 0})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.SubmitQuote(ctx, proID, QuoteInput{JobID: uuid.New(), Message: "", Price: 50})
	assert.True(t, apperror.IsValidation(err))
}

func TestLedgerService_SubmitQuote_ProNotFound(t *testing.T) {
	proID := uuid.New()
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, proID).Return(nil, common.ErrNotFound)

	svc := NewLedgerService(new(mockQuoteRepo), users, new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	_, err := svc.SubmitQuote(context.Background(), proID, QuoteInput{JobID: uuid.New(), Message: "ok", Price: 50})
	assert.True(t, apperror.IsNotFound(err))
}

func TestLedgerService_SubmitQuote_JobNotFound(t *testing.T) {
	proID := uuid.New()
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, proID).Return(&models.User{ID: proID, Role: models.RolePro}, nil)
	users.On("GetProfile", mock.Anything, proID).Return(&models.ProProfile{UserID: proID, WeeklyBudget: 100}, nil)

	quotes := new(mockQuoteRepo)
	quotes.On("CreateWithLeadFee", mock.Anything, mock.Anything, 10.0).Return(common.ErrNotFound)

	svc := NewLedgerService(quotes, users, new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	_, err := svc.SubmitQuote(context.Background(), proID, QuoteInput{JobID: uuid.New(), Message: "ok", Price: 50})
	assert.True(t, apperror.IsNotFound(err))
}

func TestLedgerService_UpdateQuoteStatus_Accept(t *testing.T) {
	quoteID := uuid.New()
	quotes := new(mockQuoteRepo)
	quotes.On("UpdateStatus", mock.Anything, quoteID, models.QuoteStatusAccepted).
		Return(&models.Quote{ID: quoteID, Status: models.QuoteStatusAccepted}, nil)

	svc := NewLedgerService(quotes, new(mockUserRepo), new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	quote, err := svc.UpdateQuoteStatus(context.Background(), quoteID, models.QuoteStatusAccepted)
	assert.NoError(t, err)
	assert.Equal(t, models.QuoteStatusAccepted, quote.Status)
}

func TestLedgerService_UpdateQuoteStatus_InvalidValue(t *testing.T) {
	svc := NewLedgerService(new(mockQuoteRepo), new(mockUserRepo), new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	_, err := svc.UpdateQuoteStatus(context.Background(), uuid.New(), "pending")
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.UpdateQuoteStatus(context.Background(), uuid.New(), "done")
	assert.True(t, apperror.IsValidation(err))
}

func TestLedgerService_UpdateQuoteStatus_AlreadyFinal(t *testing.T) {
	quoteID := uuid.New()
	quotes := new(mockQuoteRepo)
	quotes.On("UpdateStatus", mock.Anything, quoteID, models.QuoteStatusRejected).
		Return(nil, repository.ErrInvalidTransition)

	svc := NewLedgerService(quotes, new(mockUserRepo), new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	_, err := svc.UpdateQuoteStatus(context.Background(), quoteID, models.QuoteStatusRejected)
	assert.True(t, apperror.IsInvalidTransition(err))
}

func TestLedgerService_RecordReview_Success(t *testing.T) {
	customerID := uuid.New()
	proID := uuid.New()

	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, customerID).Return(&models.User{ID: customerID, Name: "Анна"}, nil)

	reviews := new(mockReviewRepo)
	reviews.On("CreateAndRecalc", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.Rating == 5 && r.CustomerName == "Анна" && r.ProID == proID
	})).Return(nil)

	svc := NewLedgerService(new(mockQuoteRepo), users, reviews, new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	review, err := svc.RecordReview(context.Background(), customerID, uuid.New(), proID, 5, "Отличная работа")
	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	reviews.AssertExpectations(t)
}

// recalcReviewRepo воспроизводит пересчёт рейтинга хранилища в памяти:
// среднее по всем отзывам мастера плюс счётчик total_jobs.
type recalcReviewRepo struct {
	reviews   []models.Review
	rating    float64
	totalJobs int
}

func (r *recalcReviewRepo) CreateAndRecalc(ctx context.Context, review *models.Review) error {
	review.ID = uuid.New()
	r.reviews = append(r.reviews, *review)

	sum := 0
	for _, rev := range r.reviews {
		sum += rev.Rating
	}
	r.rating = float64(sum) / float64(len(r.reviews))
	r.totalJobs++
	return nil
}

func (r *recalcReviewRepo) ListByPro(ctx context.Context, proID uuid.UUID) ([]models.Review, error) {
	return r.reviews, nil
}

func TestLedgerService_RecordReview_RatingIsMeanOfAll(t *testing.T) {
	customerID := uuid.New()
	proID := uuid.New()

	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, customerID).Return(&models.User{ID: customerID, Name: "Анна"}, nil)

	reviews := &recalcReviewRepo{}
	svc := NewLedgerService(new(mockQuoteRepo), users, reviews, new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	for _, rating := range []int{5, 3, 4} {
		_, err := svc.RecordReview(context.Background(), customerID, uuid.New(), proID, rating, "")
		assert.NoError(t, err)
	}

	// Среднее по всем отзывам, без округления; total_jobs растёт на каждый отзыв
	assert.Equal(t, 4.0, reviews.rating)
	assert.Equal(t, 3, reviews.totalJobs)
}

func TestLedgerService_RecordReview_InvalidRating(t *testing.T) {
	svc := NewLedgerService(new(mockQuoteRepo), new(mockUserRepo), new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.RecordReview(context.Background(), uuid.New(), uuid.New(), uuid.New(), rating, "")
		assert.True(t, apperror.IsValidation(err), "rating %d должен отклоняться", rating)
	}
}

func TestLedgerService_SetWeeklyBudget(t *testing.T) {
	proID := uuid.New()
	users := new(mockUserRepo)
	users.On("SetWeeklyBudget", mock.Anything, proID, 150.0).Return(nil)

	svc := NewLedgerService(new(mockQuoteRepo), users, new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	assert.NoError(t, svc.SetWeeklyBudget(context.Background(), proID, 150))
	users.AssertExpectations(t)
}

func TestLedgerService_SetWeeklyBudget_Negative(t *testing.T) {
	svc := NewLedgerService(new(mockQuoteRepo), new(mockUserRepo), new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	err := svc.SetWeeklyBudget(context.Background(), uuid.New(), -5)
	assert.True(t, apperror.IsValidation(err))
}

func TestLedgerService_SetWeeklyBudget_ProfileNotFound(t *testing.T) {
	proID := uuid.New()
	users := new(mockUserRepo)
	users.On("SetWeeklyBudget", mock.Anything, proID, 50.0).Return(common.ErrNotFound)

	svc := NewLedgerService(new(mockQuoteRepo), users, new(mockReviewRepo), new(mockPaymentRepo), LedgerConfig{LeadFee: 10})

	err := svc.SetWeeklyBudget(context.Background(), proID, 50)
	assert.True(t, apperror.IsNotFound(err))
}

func TestLedgerService_ListPayments_DefaultLimit(t *testing.T) {
	proID := uuid.New()
	payments := new(mockPaymentRepo)
	payments.On("ListByPro", mock.Anything, proID, 20, 0).Return([]models.PaymentTransaction{}, nil)

	svc := NewLedgerService(new(mockQuoteRepo), new(mockUserRepo), new(mockReviewRepo), payments, LedgerConfig{LeadFee: 10})

	_, err := svc.ListPayments(context.Background(), proID, 0, -3)
	assert.NoError(t, err)
	payments.AssertExpectations(t)
}
