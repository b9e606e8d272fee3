package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/fixitnow-backend/internal/logger"
	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/payments/stripe"
	"github.com/ignatzorin/fixitnow-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

// PaymentProvider - узкий контракт внешнего платёжного шлюза.
type PaymentProvider interface {
	CreateSession(ctx context.Context, amount float64, currency, successURL, cancelURL string, metadata map[string]string) (*stripe.CheckoutSession, error)
	GetStatus(ctx context.Context, sessionID string) (*stripe.SessionStatus, error)
	VerifyAndParseWebhook(payload []byte, signature string) (*stripe.WebhookEvent, error)
}

type PaymentRepositoryForCheckout interface {
	CreatePending(ctx context.Context, txn *models.PaymentTransaction) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	MarkPaidAndCredit(ctx context.Context, sessionID string) (*models.PaymentTransaction, bool, error)
	MarkFailed(ctx context.Context, sessionID string) error
}

type UserRepositoryForCheckout interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProProfile, error)
}

// CheckoutConfig - параметры покупки кредитов.
type CheckoutConfig struct {
	Packages map[string]models.PaymentPackage
	Currency string
	Timeout  time.Duration
}

// CheckoutSessionResult отдаётся клиенту после создания сессии.
type CheckoutSessionResult struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CheckoutService управляет покупкой лид-кредитов через внешний шлюз:
// создание сессии, сверка статуса по опросу и по вебхуку.
type CheckoutService struct {
	payments PaymentRepositoryForCheckout
	users    UserRepositoryForCheckout
	provider PaymentProvider
	cfg      CheckoutConfig
}

func NewCheckoutService(
	payments PaymentRepositoryForCheckout,
	users UserRepositoryForCheckout,
	provider PaymentProvider,
	cfg CheckoutConfig,
) *CheckoutService {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &CheckoutService{payments: payments, users: users, provider: provider, cfg: cfg}
}

// PackageView - пакет каталога вместе с его идентификатором.
type PackageView struct {
	ID string `json:"id"`
	models.PaymentPackage
}

// Packages возвращает серверный каталог пакетов в стабильном порядке.
func (s *CheckoutService) Packages() []PackageView {
	views := make([]PackageView, 0, len(s.cfg.Packages))
	for id, pkg := range s.cfg.Packages {
		views = append(views, PackageView{ID: id, PaymentPackage: pkg})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Amount < views[j].Amount })
	return views
}

// CreateCheckoutSession создаёт сессию оплаты у провайдера и pending-запись
// транзакции. Сумма и кредиты берутся только из серверного каталога.
// Если провайдер недоступен, состояние не меняется вовсе.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, proID uuid.UUID, packageID, originURL string) (*CheckoutSessionResult, error) {
	pkg, ok := s.cfg.Packages[packageID]
	if !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный пакет кредитов")
	}
	if originURL == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "origin_url обязателен")
	}

	if _, err := s.users.GetProfile(ctx, proID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	sess, err := s.provider.CreateSession(callCtx, pkg.Amount, s.cfg.Currency,
		originURL+"/payment-success?session_id={CHECKOUT_SESSION_ID}",
		originURL+"/payment-cancelled",
		map[string]string{
			"pro_id":     proID.String(),
			"package_id": packageID,
		})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeGatewayUnavailable, "платёжный шлюз недоступен")
	}

	txn := &models.PaymentTransaction{
		SessionID: &sess.SessionID,
		ProID:     proID,
		PackageID: &packageID,
		Amount:    pkg.Amount,
		Credits:   pkg.Credits,
	}
	if err := s.payments.CreatePending(ctx, txn); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"session_id": sess.SessionID,
		"pro_id":     proID,
		"package_id": packageID,
		"amount":     pkg.Amount,
	}).Info("создана checkout-сессия")

	return &CheckoutSessionResult{SessionID: sess.SessionID, CheckoutURL: sess.URL}, nil
}

// CheckStatus опрашивает провайдера и сверяет локальную транзакцию с
// наблюдаемым статусом. Эндпоинт опроса безопасно вызывать сколько угодно
// раз: кредиты зачисляются не более одного раза.
func (s *CheckoutService) CheckStatus(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	txn, err := s.payments.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrTransactionNotFound
		}
		return nil, err
	}

	// Уже финальный статус - провайдера не беспокоим
	if txn.PaymentStatus == models.PaymentStatusPaid {
		return txn, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	status, err := s.provider.GetStatus(callCtx, sessionID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeGatewayUnavailable, "платёжный шлюз недоступен")
	}

	return s.reconcile(ctx, sessionID, status.PaymentStatus)
}

// HandleWebhook проверяет подпись события и применяет его к локальной
// транзакции. Невалидная подпись отклоняется; событие про неизвестную
// транзакцию подтверждается без изменений, чтобы провайдер не ретраил
// его бесконечно.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.VerifyAndParseWebhook(payload, signature)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, "невалидная подпись вебхука")
	}

	if event.SessionID == "" {
		logger.Log.WithField("event_type", event.EventType).Debug("вебхук без сессии, пропускаем")
		return nil
	}

	if _, err := s.reconcile(ctx, event.SessionID, event.PaymentStatus); err != nil {
		if apperror.IsNotFound(err) {
			logger.Log.WithFields(logrus.Fields{
				"session_id": event.SessionID,
				"event_type": event.EventType,
			}).Warn("вебхук о неизвестной транзакции")
			return nil
		}
		return err
	}
	return nil
}

// reconcile - единственная точка применения наблюдаемого статуса
// провайдера к локальной транзакции. Используется и опросом, и вебхуком,
// поэтому их гонка не может зачислить кредиты дважды.
func (s *CheckoutService) reconcile(ctx context.Context, sessionID, observedStatus string) (*models.PaymentTransaction, error) {
	switch observedStatus {
	case models.PaymentStatusPaid:
		txn, applied, err := s.payments.MarkPaidAndCredit(ctx, sessionID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, apperror.ErrTransactionNotFound
			}
			return nil, err
		}
		if applied {
			logger.Log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"pro_id":     txn.ProID,
				"credits":    txn.Credits,
			}).Info("оплата подтверждена, кредиты зачислены")
		}
		return txn, nil
	case models.PaymentStatusFailed, "expired":
		if err := s.payments.MarkFailed(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	txn, err := s.payments.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("checkout service: reconcile %w", err)
	}
	return txn, nil
}
