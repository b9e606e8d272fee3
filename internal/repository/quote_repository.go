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

var (
	// ErrBudgetExceeded возвращается, когда списание лид-фи превысило бы недельный бюджет.
	ErrBudgetExceeded = errors.New("weekly budget exceeded")
	// ErrInvalidTransition возвращается при недопустимой смене статуса отклика.
	ErrInvalidTransition = errors.New("invalid quote status transition")
)

type QuoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// CreateWithLeadFee атомарно создаёт отклик и списывает лид-фи.
//
// Проверка бюджета и инкремент weekly_spent выполняются одним условным
// UPDATE: два конкурентных отклика одного мастера не смогут вдвоём пройти
// гейт и вместе превысить бюджет. Отклик, счётчик откликов заявки и
// запись о списании фиксируются в той же транзакции: частичное списание
// снаружи не наблюдаемо.
func (r *QuoteRepository) CreateWithLeadFee(ctx context.Context, quote *models.Quote, leadFee float64) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE pro_profiles
			SET weekly_spent = weekly_spent + $2
			WHERE user_id = $1 AND weekly_spent + $2 <= weekly_budget
		`, quote.ProID, leadFee)
		if err != nil {
			return fmt.Errorf("quote repository: charge lead fee %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			// Либо профиля нет, либо бюджет исчерпан
			var one int
			err := tx.GetContext(ctx, &one, `SELECT 1 FROM pro_profiles WHERE user_id = $1`, quote.ProID)
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("quote repository: check profile %w", err)
			}
			return ErrBudgetExceeded
		}

		err = tx.GetContext(ctx, quote, `
			INSERT INTO quotes (job_id, pro_id, pro_name, pro_phone, pro_rating, message, price, estimated_duration, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
			RETURNING id, job_id, pro_id, pro_name, pro_phone, pro_rating, message, price, estimated_duration, status, created_at
		`, quote.JobID, quote.ProID, quote.ProName, quote.ProPhone, quote.ProRating,
			quote.Message, quote.Price, quote.EstimatedDuration)
		if err != nil {
			return fmt.Errorf("quote repository: insert quote %w", err)
		}

		res, err = tx.ExecContext(ctx,
			`UPDATE jobs SET quotes_count = quotes_count + 1 WHERE id = $1`, quote.JobID)
		if err != nil {
			return fmt.Errorf("quote repository: increment quotes count %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return common.ErrNotFound
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO payment_transactions (pro_id, job_id, payment_type, amount, payment_status, status)
			VALUES ($1, $2, 'lead_fee', $3, 'paid', 'completed')
		`, quote.ProID, quote.JobID, leadFee)
		if err != nil {
			return fmt.Errorf("quote repository: record lead fee %w", err)
		}

		return nil
	})
}

// GetByID возвращает отклик по ID.
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	return common.GetByField[models.Quote](ctx, r.db, "quotes", "id", id, common.ErrNotFound)
}

// List возвращает отклики с фильтрами по заявке и/или мастеру.
func (r *QuoteRepository) List(ctx context.Context, jobID, proID *uuid.UUID) ([]models.Quote, error) {
	query := `SELECT * FROM quotes WHERE 1=1`
	args := make([]interface{}, 0, 2)
	idx := 1

	if jobID != nil {
		query += fmt.Sprintf(" AND job_id = $%d", idx)
		args = append(args, *jobID)
		idx++
	}
	if proID != nil {
		query += fmt.Sprintf(" AND pro_id = $%d", idx)
		args = append(args, *proID)
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	quotes := make([]models.Quote, 0)
	if err := r.db.SelectContext(ctx, &quotes, query, args...); err != nil {
		return nil, fmt.Errorf("quote repository: list %w", err)
	}
	return quotes, nil
}

// UpdateStatus выполняет одноразовый переход pending -> accepted|rejected.
// Любой другой переход завершается ErrInvalidTransition. Лид-фи при
// отклонении не возвращается: плата берётся за сам лид, не за исход.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.GetContext(ctx, &quote, `
		UPDATE quotes SET status = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING id, job_id, pro_id, pro_name, pro_phone, pro_rating, message, price, estimated_duration, status, created_at
	`, id, newStatus)
	if err == nil {
		return &quote, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quote repository: update status %w", err)
	}

	// Условие не сработало: различаем отсутствие отклика и повторный переход
	var current string
	err = r.db.GetContext(ctx, &current, `SELECT status FROM quotes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("quote repository: check status %w", err)
	}
	return nil, ErrInvalidTransition
}
