package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/payments/stripe"
	"github.com/ignatzorin/fixitnow-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type mockCheckoutPayments struct {
	mock.Mock
}

func (m *mockCheckoutPayments) CreatePending(ctx context.Context, txn *models.PaymentTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *mockCheckoutPayments) GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentTransaction), args.Error(1)
}

func (m *mockCheckoutPayments) MarkPaidAndCredit(ctx context.Context, sessionID string) (*models.PaymentTransaction, bool, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.PaymentTransaction), args.Bool(1), args.Error(2)
}

func (m *mockCheckoutPayments) MarkFailed(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockCheckoutUsers struct {
	mock.Mock
}

func (m *mockCheckoutUsers) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProProfile), args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CreateSession(ctx context.Context, amount float64, currency, successURL, cancelURL string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, amount, currency, successURL, cancelURL, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

func (m *mockProvider) GetStatus(ctx context.Context, sessionID string) (*stripe.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.SessionStatus), args.Error(1)
}

func (m *mockProvider) VerifyAndParseWebhook(payload []byte, signature string) (*stripe.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.WebhookEvent), args.Error(1)
}

func testPackages() map[string]models.PaymentPackage {
	return map[string]models.PaymentPackage{
		"starter": {Name: "Starter", Amount: 50, Credits: 50},
		"basic":   {Name: "Basic", Amount: 100, Credits: 110},
	}
}

func newCheckout(payments *mockCheckoutPayments, users *mockCheckoutUsers, provider *mockProvider) *CheckoutService {
	return NewCheckoutService(payments, users, provider, CheckoutConfig{Packages: testPackages()})
}

func TestCheckoutService_CreateSession_UnknownPackage(t *testing.T) {
	payments := new(mockCheckoutPayments)
	users := new(mockCheckoutUsers)
	provider := new(mockProvider)
	svc := newCheckout(payments, users, provider)

	_, err := svc.CreateCheckoutSession(context.Background(), uuid.New(), "mega", "https://app.example.com")
	assert.True(t, apperror.IsValidation(err))

	// Ни провайдер, ни база не трогаются
	provider.AssertNotCalled(t, "CreateSession")
	payments.AssertNotCalled(t, "CreatePending")
}

func TestCheckoutService_CreateSession_GatewayDown(t *testing.T) {
	proID := uuid.New()
	payments := new(mockCheckoutPayments)
	users := new(mockCheckoutUsers)
	users.On("GetProfile", mock.Anything, proID).Return(&models.ProProfile{UserID: proID}, nil)

	provider := new(mockProvider)
	provider.On("CreateSession", mock.Anything, 50.0, "usd", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	svc := newCheckout(payments, users, provider)

	_, err := svc.CreateCheckoutSession(context.Background(), proID, "starter", "https://app.example.com")
	assert.Error(t, err)
	assert.Equal(t, apperror.ErrCodeGatewayUnavailable, apperror.CodeOf(err))

	// Провайдер упал - pending-записи быть не должно
	payments.AssertNotCalled(t, "CreatePending")
}

func TestCheckoutService_CreateSession_Success(t *testing.T) {
	proID := uuid.New()
	payments := new(mockCheckoutPayments)
	users := new(mockCheckoutUsers)
	users.On("GetProfile", mock.Anything, proID).Return(&models.ProProfile{UserID: proID}, nil)

	provider := new(mockProvider)
	provider.On("CreateSession", mock.Anything, 100.0, "usd",
		"https://app.example.com/payment-success?session_id={CHECKOUT_SESSION_ID}",
		"https://app.example.com/payment-cancelled",
		map[string]string{"pro_id": proID.String(), "package_id": "basic"}).
		Return(&stripe.CheckoutSession{SessionID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil)

	// Сумма и кредиты берутся из каталога, не из запроса
	payments.On("CreatePending", mock.Anything, mock.MatchedBy(func(txn *models.PaymentTransaction) bool {
		return txn.Amount == 100 && txn.Credits == 110 && *txn.SessionID == "cs_test_1" && txn.ProID == proID
	})).Return(nil)

	svc := newCheckout(payments, users, provider)

	result, err := svc.CreateCheckoutSession(context.Background(), proID, "basic", "https://app.example.com")
	assert.NoError(t, err)
	assert.Equal(t, "cs_test_1", result.SessionID)
	assert.NotEmpty(t, result.CheckoutURL)
	payments.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestCheckoutService_CheckStatus_AlreadyPaidSkipsProvider(t *testing.T) {
	payments := new(mockCheckoutPayments)
	paid := &models.PaymentTransaction{PaymentStatus: models.PaymentStatusPaid, Status: models.TransactionStatusCompleted}
	payments.On("GetBySessionID", mock.Anything, "cs_1").Return(paid, nil)

	provider := new(mockProvider)
	svc := newCheckout(payments, new(mockCheckoutUsers), provider)

	txn, err := svc.CheckStatus(context.Background(), "cs_1")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, txn.PaymentStatus)
	provider.AssertNotCalled(t, "GetStatus")
	payments.AssertNotCalled(t, "MarkPaidAndCredit")
}

func TestCheckoutService_CheckStatus_PaidObserved(t *testing.T) {
	payments := new(mockCheckoutPayments)
	pending := &models.PaymentTransaction{PaymentStatus: models.PaymentStatusPending}
	paid := &models.PaymentTransaction{PaymentStatus: models.PaymentStatusPaid, Credits: 110}

	payments.On("GetBySessionID", mock.Anything, "cs_2").Return(pending, nil).Once()
	payments.On("MarkPaidAndCredit", mock.Anything, "cs_2").Return(paid, true, nil)

	provider := new(mockProvider)
	provider.On("GetStatus", mock.Anything, "cs_2").
		Return(&stripe.SessionStatus{SessionID: "cs_2", PaymentStatus: models.PaymentStatusPaid}, nil)

	svc := newCheckout(payments, new(mockCheckoutUsers), provider)

	txn, err := svc.CheckStatus(context.Background(), "cs_2")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, txn.PaymentStatus)
	payments.AssertExpectations(t)
}

func TestCheckoutService_CheckStatus_UnknownSession(t *testing.T) {
	payments := new(mockCheckoutPayments)
	payments.On("GetBySessionID", mock.Anything, "cs_missing").Return(nil, common.ErrNotFound)

	svc := newCheckout(payments, new(mockCheckoutUsers), new(mockProvider))

	_, err := svc.CheckStatus(context.Background(), "cs_missing")
	assert.True(t, apperror.IsNotFound(err))
}

func TestCheckoutService_CheckStatus_GatewayDown(t *testing.T) {
	payments := new(mockCheckoutPayments)
	pending := &models.PaymentTransaction{PaymentStatus: models.PaymentStatusPending}
	payments.On("GetBySessionID", mock.Anything, "cs_3").Return(pending, nil)

	provider := new(mockProvider)
	provider.On("GetStatus", mock.Anything, "cs_3").Return(nil, errors.New("timeout"))

	svc := newCheckout(payments, new(mockCheckoutUsers), provider)

	_, err := svc.CheckStatus(context.Background(), "cs_3")
	assert.Equal(t, apperror.ErrCodeGatewayUnavailable, apperror.CodeOf(err))
	payments.AssertNotCalled(t, "MarkPaidAndCredit")
}

func TestCheckoutService_HandleWebhook_BadSignature(t *testing.T) {
	provider := new(mockProvider)
	provider.On("VerifyAndParseWebhook", mock.Anything, "bad").Return(nil, errors.New("signature mismatch"))

	svc := newCheckout(new(mockCheckoutPayments), new(mockCheckoutUsers), provider)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "bad")
	assert.True(t, apperror.IsValidation(err))
}

func TestCheckoutService_HandleWebhook_PaidCreditsOnce(t *testing.T) {
	payments := new(mockCheckoutPayments)
	paid := &models.PaymentTransaction{PaymentStatus: models.PaymentStatusPaid, Credits: 50}
	payments.On("MarkPaidAndCredit", mock.Anything, "cs_4").Return(paid, true, nil).Once()
	// Повторный вебхук: условный UPDATE не сработал, applied=false
	payments.On("MarkPaidAndCredit", mock.Anything, "cs_4").Return(paid, false, nil).Once()

	provider := new(mockProvider)
	provider.On("VerifyAndParseWebhook", mock.Anything, "sig").Return(&stripe.WebhookEvent{
		EventType:     "checkout.session.completed",
		SessionID:     "cs_4",
		PaymentStatus: models.PaymentStatusPaid,
	}, nil)

	svc := newCheckout(payments, new(mockCheckoutUsers), provider)

	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	payments.AssertExpectations(t)
}

func TestCheckoutService_HandleWebhook_UnknownTransactionAcked(t *testing.T) {
	payments := new(mockCheckoutPayments)
	payments.On("MarkPaidAndCredit", mock.Anything, "cs_ghost").Return(nil, false, common.ErrNotFound)

	provider := new(mockProvider)
	provider.On("VerifyAndParseWebhook", mock.Anything, "sig").Return(&stripe.WebhookEvent{
		EventType:     "checkout.session.completed",
		SessionID:     "cs_ghost",
		PaymentStatus: models.PaymentStatusPaid,
	}, nil)

	svc := newCheckout(payments, new(mockCheckoutUsers), provider)

	// Неизвестная транзакция подтверждается без ошибки
	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
}

func TestCheckoutService_HandleWebhook_FailedMarks(t *testing.T) {
	payments := new(mockCheckoutPayments)
	failed := &models.PaymentTransaction{PaymentStatus: models.PaymentStatusFailed}
	payments.On("MarkFailed", mock.Anything, "cs_5").Return(nil)
	payments.On("GetBySessionID", mock.Anything, "cs_5").Return(failed, nil)

	provider := new(mockProvider)
	provider.On("VerifyAndParseWebhook", mock.Anything, "sig").Return(&stripe.WebhookEvent{
		EventType:     "checkout.session.async_payment_failed",
		SessionID:     "cs_5",
		PaymentStatus: models.PaymentStatusFailed,
	}, nil)

	svc := newCheckout(payments, new(mockCheckoutUsers), provider)

	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	payments.AssertExpectations(t)
}

func TestCheckoutService_HandleWebhook_EventWithoutSession(t *testing.T) {
	payments := new(mockCheckoutPayments)
	provider := new(mockProvider)
	provider.On("VerifyAndParseWebhook", mock.Anything, "sig").Return(&stripe.WebhookEvent{
		EventType: "payment_intent.created",
	}, nil)

	svc := newCheckout(payments, new(mockCheckoutUsers), provider)

	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	payments.AssertNotCalled(t, "MarkPaidAndCredit")
}

func TestCheckoutService_Packages_SortedByAmount(t *testing.T) {
	svc := newCheckout(new(mockCheckoutPayments), new(mockCheckoutUsers), new(mockProvider))

	views := svc.Packages()
	assert.Len(t, views, 2)
	assert.Equal(t, "starter", views[0].ID)
	assert.Equal(t, "basic", views[1].ID)
}
