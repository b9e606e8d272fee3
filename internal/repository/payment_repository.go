package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePending сохраняет транзакцию покупки кредитов в статусе pending,
// привязанную к session_id внешнего провайдера.
func (r *PaymentRepository) CreatePending(ctx context.Context, txn *models.PaymentTransaction) error {
	err := r.db.GetContext(ctx, txn, `
		INSERT INTO payment_transactions (session_id, pro_id, package_id, payment_type, amount, credits, payment_status, status)
		VALUES ($1, $2, $3, 'credit_purchase', $4, $5, 'pending', 'initiated')
		RETURNING id, session_id, pro_id, job_id, package_id, payment_type, amount, credits, payment_status, status, created_at, updated_at
	`, txn.SessionID, txn.ProID, txn.PackageID, txn.Amount, txn.Credits)
	if err != nil {
		return fmt.Errorf("payment repository: create pending %w", err)
	}
	return nil
}

// GetBySessionID возвращает транзакцию по корреляционному ключу провайдера.
func (r *PaymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	return common.GetByField[models.PaymentTransaction](ctx, r.db, "payment_transactions", "session_id", sessionID, common.ErrNotFound)
}

// MarkPaidAndCredit помечает транзакцию оплаченной и зачисляет кредиты
// в weekly_budget мастера. Возвращает applied=false, если транзакция уже
// была оплачена ранее.
//
// Переход payment_status прочь от не-paid значения выполняется одним
// условным UPDATE: при гонке опроса статуса и вебхука кредит зачислится
// ровно один раз. Зачисление - всегда дельта, не присваивание.
func (r *PaymentRepository) MarkPaidAndCredit(ctx context.Context, sessionID string) (*models.PaymentTransaction, bool, error) {
	var txn models.PaymentTransaction
	applied := false

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &txn, `
			UPDATE payment_transactions
			SET payment_status = 'paid', status = 'completed', updated_at = NOW()
			WHERE session_id = $1 AND payment_status <> 'paid'
			RETURNING id, session_id, pro_id, job_id, package_id, payment_type, amount, credits, payment_status, status, created_at, updated_at
		`, sessionID)
		if errors.Is(err, sql.ErrNoRows) {
			// Либо транзакции нет, либо она уже оплачена - кредит не трогаем
			existing, getErr := r.GetBySessionID(ctx, sessionID)
			if getErr != nil {
				return getErr
			}
			txn = *existing
			return nil
		}
		if err != nil {
			return fmt.Errorf("payment repository: mark paid %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE pro_profiles SET weekly_budget = weekly_budget + $2 WHERE user_id = $1
		`, txn.ProID, txn.Credits)
		if err != nil {
			return fmt.Errorf("payment repository: credit budget %w", err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &txn, applied, nil
}

// MarkFailed помечает транзакцию неуспешной, если она ещё не оплачена.
func (r *PaymentRepository) MarkFailed(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET payment_status = 'failed', updated_at = NOW()
		WHERE session_id = $1 AND payment_status = 'pending'
	`, sessionID)
	if err != nil {
		return fmt.Errorf("payment repository: mark failed %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// Уже paid или failed - ничего не меняем
		return nil
	}
	return nil
}

// ListByPro возвращает историю платежей мастера.
func (r *PaymentRepository) ListByPro(ctx context.Context, proID uuid.UUID, limit, offset int) ([]models.PaymentTransaction, error) {
	txns := make([]models.PaymentTransaction, 0)
	err := r.db.SelectContext(ctx, &txns, `
		SELECT * FROM payment_transactions
		WHERE pro_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, proID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list by pro %w", err)
	}
	return txns, nil
}
