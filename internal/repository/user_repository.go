package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser создаёт пользователя; для мастера профиль создаётся в той же транзакции
// с нулевыми балансами.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, user, `
			INSERT INTO users (email, password_hash, name, phone, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, email, password_hash, name, phone, role, is_active, created_at
		`, user.Email, user.PasswordHash, user.Name, user.Phone, user.Role)
		if err != nil {
			if common.IsUniqueViolation(err) {
				return common.ErrAlreadyExists
			}
			return fmt.Errorf("user repository: create user %w", err)
		}

		if user.Role == models.RolePro {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO pro_profiles (user_id, weekly_budget, weekly_spent, budget_active, rating, total_jobs)
				VALUES ($1, 0, 0, TRUE, 0, 0)
			`, user.ID)
			if err != nil {
				return fmt.Errorf("user repository: create pro profile %w", err)
			}
		}

		return nil
	})
}

// GetByID возвращает пользователя по ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "id", id, common.ErrNotFound)
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "email", email, common.ErrNotFound)
}

// GetProfile возвращает профиль мастера.
func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProProfile, error) {
	return common.GetByField[models.ProProfile](ctx, r.db, "pro_profiles", "user_id", userID, common.ErrNotFound)
}

// ProfileUpdate - разрешённый набор полей для обновления профиля мастера.
// Свободные key/value payload не принимаются: только типизированные поля.
type ProfileUpdate struct {
	Bio             *string
	Services        []string
	ServiceAreas    []string
	HourlyRate      *float64
	YearsExperience *int
	BudgetActive    *bool
}

// UpdateProfile обновляет только разрешённые поля профиля.
// Бюджетные счётчики weekly_budget/weekly_spent этим путём не меняются.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) error {
	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	idx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if upd.Bio != nil {
		addSet("bio", *upd.Bio)
	}
	if upd.Services != nil {
		addSet("services", models.StringArray(upd.Services))
	}
	if upd.ServiceAreas != nil {
		addSet("service_areas", models.StringArray(upd.ServiceAreas))
	}
	if upd.HourlyRate != nil {
		addSet("hourly_rate", *upd.HourlyRate)
	}
	if upd.YearsExperience != nil {
		addSet("years_experience", *upd.YearsExperience)
	}
	if upd.BudgetActive != nil {
		addSet("budget_active", *upd.BudgetActive)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE pro_profiles SET %s WHERE user_id = $%d", strings.Join(sets, ", "), idx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("user repository: update profile %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// SetWeeklyBudget напрямую выставляет недельный бюджет мастера.
// weekly_spent не трогаем: перерасход остаётся до следующей попытки
// списания, где его заблокирует бюджетный гейт.
func (r *UserRepository) SetWeeklyBudget(ctx context.Context, proID uuid.UUID, budget float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pro_profiles SET weekly_budget = $2 WHERE user_id = $1`, proID, budget)
	if err != nil {
		return fmt.Errorf("user repository: set weekly budget %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// SearchPros ищет мастеров по категории услуг и локации.
func (r *UserRepository) SearchPros(ctx context.Context, category, location string) ([]models.ProSearchResult, error) {
	query := `
		SELECT p.*, u.name, u.phone
		FROM pro_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.is_active = TRUE
	`
	args := make([]interface{}, 0, 2)
	idx := 1

	if category != "" {
		query += fmt.Sprintf(" AND $%d = ANY(p.services)", idx)
		args = append(args, category)
		idx++
	}
	if location != "" {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM unnest(p.service_areas) area WHERE area ILIKE $%d)", idx)
		args = append(args, "%"+location+"%")
	}
	query += " ORDER BY p.rating DESC LIMIT 100"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("user repository: search pros %w", err)
	}
	defer rows.Close()

	results := make([]models.ProSearchResult, 0)
	for rows.Next() {
		var res models.ProSearchResult
		if err := rows.StructScan(&res); err != nil {
			return nil, fmt.Errorf("user repository: scan pro %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// ResetWeeklySpent обнуляет недельные траты всех мастеров (еженедельный сброс).
func (r *UserRepository) ResetWeeklySpent(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE pro_profiles SET weekly_spent = 0 WHERE weekly_spent > 0`)
	if err != nil {
		return 0, fmt.Errorf("user repository: reset weekly spent %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
