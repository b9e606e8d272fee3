package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetSettings возвращает единственную запись настроек платформы.
func (r *AdminRepository) GetSettings(ctx context.Context) (*models.PlatformSettings, error) {
	return common.GetByField[models.PlatformSettings](ctx, r.db, "platform_settings", "id", 1, common.ErrNotFound)
}

// SettingsUpdate - разрешённые поля обновления настроек.
type SettingsUpdate struct {
	LeadFee            *float64
	PlatformCommission *float64
	MinQuoteAmount     *float64
	MaxQuoteAmount     *float64
	WeeklyBudgetMin    *float64
	AutoApprovePros    *bool
	EnableStripe       *bool
}

// UpdateSettings меняет только разрешённые поля настроек.
func (r *AdminRepository) UpdateSettings(ctx context.Context, upd SettingsUpdate) error {
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

	if upd.LeadFee != nil {
		addSet("lead_fee", *upd.LeadFee)
	}
	if upd.PlatformCommission != nil {
		addSet("platform_commission", *upd.PlatformCommission)
	}
	if upd.MinQuoteAmount != nil {
		addSet("min_quote_amount", *upd.MinQuoteAmount)
	}
	if upd.MaxQuoteAmount != nil {
		addSet("max_quote_amount", *upd.MaxQuoteAmount)
	}
	if upd.WeeklyBudgetMin != nil {
		addSet("weekly_budget_min", *upd.WeeklyBudgetMin)
	}
	if upd.AutoApprovePros != nil {
		addSet("auto_approve_pros", *upd.AutoApprovePros)
	}
	if upd.EnableStripe != nil {
		addSet("enable_stripe", *upd.EnableStripe)
	}

	if sets == "" {
		return nil
	}
	sets += ", updated_at = NOW()"

	_, err := r.db.ExecContext(ctx, fmt.Sprintf("UPDATE platform_settings SET %s WHERE id = 1", sets), args...)
	if err != nil {
		return fmt.Errorf("admin repository: update settings %w", err)
	}
	return nil
}

// GetAnalytics собирает агрегаты для панели администратора.
func (r *AdminRepository) GetAnalytics(ctx context.Context) (*models.AdminAnalytics, error) {
	var analytics models.AdminAnalytics
	err := r.db.GetContext(ctx, &analytics, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM users WHERE role = 'customer') AS total_customers,
			(SELECT COUNT(*) FROM users WHERE role = 'pro') AS total_pros,
			(SELECT COUNT(*) FROM pro_profiles WHERE budget_active) AS active_pros,
			(SELECT COUNT(*) FROM jobs) AS total_jobs,
			(SELECT COUNT(*) FROM jobs WHERE status = 'open') AS open_jobs,
			(SELECT COUNT(*) FROM jobs WHERE status = 'completed') AS completed_jobs,
			(SELECT COUNT(*) FROM quotes) AS total_quotes,
			(SELECT COALESCE(SUM(amount), 0) FROM payment_transactions WHERE payment_status = 'paid') AS total_revenue,
			(SELECT COALESCE(SUM(amount), 0) FROM payment_transactions
				WHERE payment_status = 'paid' AND created_at >= date_trunc('month', NOW())) AS revenue_this_month
	`)
	if err != nil {
		return nil, fmt.Errorf("admin repository: analytics %w", err)
	}
	return &analytics, nil
}
