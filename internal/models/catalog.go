package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategory представляет категорию услуг.
type ServiceCategory struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Value        string    `db:"value" json:"value"`
	Icon         string    `db:"icon" json:"icon"`
	Color        string    `db:"color" json:"color"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PlatformSettings настройки платформы, управляются администратором.
// Лид-фи, используемое бюджетным гейтом, берётся из конфигурации при
// старте процесса; эта запись служит источником для следующего запуска.
type PlatformSettings struct {
	ID                 int       `db:"id" json:"-"`
	LeadFee            float64   `db:"lead_fee" json:"lead_fee"`
	PlatformCommission float64   `db:"platform_commission" json:"platform_commission"`
	MinQuoteAmount     float64   `db:"min_quote_amount" json:"min_quote_amount"`
	MaxQuoteAmount     float64   `db:"max_quote_amount" json:"max_quote_amount"`
	WeeklyBudgetMin    float64   `db:"weekly_budget_min" json:"weekly_budget_min"`
	AutoApprovePros    bool      `db:"auto_approve_pros" json:"auto_approve_pros"`
	EnableStripe       bool      `db:"enable_stripe" json:"enable_stripe"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// AdminAnalytics агрегаты для панели администратора.
type AdminAnalytics struct {
	TotalUsers       int     `db:"total_users" json:"total_users"`
	TotalCustomers   int     `db:"total_customers" json:"total_customers"`
	TotalPros        int     `db:"total_pros" json:"total_pros"`
	ActivePros       int     `db:"active_pros" json:"active_pros"`
	TotalJobs        int     `db:"total_jobs" json:"total_jobs"`
	OpenJobs         int     `db:"open_jobs" json:"open_jobs"`
	CompletedJobs    int     `db:"completed_jobs" json:"completed_jobs"`
	TotalQuotes      int     `db:"total_quotes" json:"total_quotes"`
	TotalRevenue     float64 `db:"total_revenue" json:"total_revenue"`
	RevenueThisMonth float64 `db:"revenue_this_month" json:"revenue_this_month"`
}
