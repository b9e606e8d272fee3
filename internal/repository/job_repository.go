package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type JobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create сохраняет заявку со статусом open и нулевым счётчиком откликов.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	err := r.db.GetContext(ctx, job, `
		INSERT INTO jobs (customer_id, customer_name, customer_phone, title, description, category, location, zipcode, budget_min, budget_max, timeline, status, quotes_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'open', 0)
		RETURNING id, customer_id, customer_name, customer_phone, title, description, category, location, zipcode, budget_min, budget_max, timeline, status, quotes_count, created_at
	`, job.CustomerID, job.CustomerName, job.CustomerPhone, job.Title, job.Description,
		job.Category, job.Location, job.Zipcode, job.BudgetMin, job.BudgetMax, job.Timeline)
	if err != nil {
		return fmt.Errorf("job repository: create %w", err)
	}
	return nil
}

// GetByID возвращает заявку по ID.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return common.GetByField[models.Job](ctx, r.db, "jobs", "id", id, common.ErrNotFound)
}

// List возвращает заявки по фильтрам, свежие первыми.
func (r *JobRepository) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	query := `SELECT * FROM jobs WHERE 1=1`
	args := make([]interface{}, 0, 4)
	idx := 1

	addFilter := func(cond string, value interface{}) {
		query += fmt.Sprintf(" AND %s = $%d", cond, idx)
		args = append(args, value)
		idx++
	}

	if filter.Status != "" {
		addFilter("status", filter.Status)
	}
	if filter.Category != "" {
		addFilter("category", filter.Category)
	}
	if filter.Zipcode != "" {
		addFilter("zipcode", filter.Zipcode)
	}
	if filter.CustomerID != nil {
		addFilter("customer_id", *filter.CustomerID)
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	jobs := make([]models.Job, 0)
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("job repository: list %w", err)
	}
	return jobs, nil
}

// UpdateStatus меняет статус заявки.
func (r *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("job repository: update status %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
