package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateAndRecalc вставляет отзыв и в той же транзакции пересчитывает
// рейтинг мастера как среднее по всем его отзывам. Точное среднее,
// без округления. total_jobs увеличивается на каждый отзыв.
func (r *ReviewRepository) CreateAndRecalc(ctx context.Context, review *models.Review) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, review, `
			INSERT INTO reviews (job_id, customer_id, customer_name, pro_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, job_id, customer_id, customer_name, pro_id, rating, comment, created_at
		`, review.JobID, review.CustomerID, review.CustomerName, review.ProID, review.Rating, review.Comment)
		if err != nil {
			return fmt.Errorf("review repository: insert %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE pro_profiles
			SET rating = (SELECT AVG(rating)::double precision FROM reviews WHERE pro_id = $1),
			    total_jobs = total_jobs + 1
			WHERE user_id = $1
		`, review.ProID)
		if err != nil {
			return fmt.Errorf("review repository: recalc rating %w", err)
		}

		return nil
	})
}

// ListByPro возвращает отзывы о мастере, свежие первыми.
func (r *ReviewRepository) ListByPro(ctx context.Context, proID uuid.UUID) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT * FROM reviews WHERE pro_id = $1 ORDER BY created_at DESC LIMIT 100
	`, proID)
	if err != nil {
		return nil, fmt.Errorf("review repository: list by pro %w", err)
	}
	return reviews, nil
}
