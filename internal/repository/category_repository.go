package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List возвращает категории услуг; activeOnly скрывает отключённые.
func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error) {
	query := `SELECT * FROM service_categories`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY display_order, name`

	categories := make([]models.ServiceCategory, 0)
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("category repository: list %w", err)
	}
	return categories, nil
}

// Create добавляет категорию; коллизия slug -> ErrAlreadyExists.
func (r *CategoryRepository) Create(ctx context.Context, category *models.ServiceCategory) error {
	err := r.db.GetContext(ctx, category, `
		INSERT INTO service_categories (name, value, icon, color, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, value, icon, color, is_active, display_order, created_at
	`, category.Name, category.Value, category.Icon, category.Color, category.IsActive, category.DisplayOrder)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("category repository: create %w", err)
	}
	return nil
}

// CategoryUpdate - разрешённые поля обновления категории.
type CategoryUpdate struct {
	Name         *string
	Icon         *string
	Color        *string
	IsActive     *bool
	DisplayOrder *int
}

// Update меняет только разрешённые поля; slug неизменяем после создания.
func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, upd CategoryUpdate) error {
	sets := ""
	args := []interface{}{}
	idx := 1

	addSet := func(column string, value interface{}) {
		if sets != "" {
			sets += ", "
		}
		sets += fmt.Sprintf("%s = $%d", column, idx)
		args = append(args, value)
		idx++
	}

	if upd.Name != nil {
		addSet("name", *upd.Name)
	}
	if upd.Icon != nil {
		addSet("icon", *upd.Icon)
	}
	if upd.Color != nil {
		addSet("color", *upd.Color)
	}
	if upd.IsActive != nil {
		addSet("is_active", *upd.IsActive)
	}
	if upd.DisplayOrder != nil {
		addSet("display_order", *upd.DisplayOrder)
	}

	if sets == "" {
		return nil
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE service_categories SET %s WHERE id = $%d", sets, idx), args...)
	if err != nil {
		return fmt.Errorf("category repository: update %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete удаляет категорию.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("category repository: delete %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
