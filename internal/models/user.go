package models

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей
const (
	RoleCustomer = "customer"
	RolePro      = "pro"
	RoleAdmin    = "admin"
)

// User описывает пользователя платформы.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Phone        string    `db:"phone" json:"phone"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ProProfile описывает профиль мастера с бюджетом на лиды и рейтингом.
// weekly_spent никогда не должен превысить weekly_budget в результате
// списания за новый отклик (ранее накопленный перерасход допустим).
type ProProfile struct {
	UserID                  uuid.UUID      `db:"user_id" json:"user_id"`
	Bio                     *string        `db:"bio" json:"bio,omitempty"`
	Services                StringArray    `db:"services" json:"services"`
	ServiceAreas            StringArray    `db:"service_areas" json:"service_areas"`
	HourlyRate              *float64       `db:"hourly_rate" json:"hourly_rate,omitempty"`
	YearsExperience         *int           `db:"years_experience" json:"years_experience,omitempty"`
	BackgroundCheckVerified bool           `db:"background_check_verified" json:"background_check_verified"`
	WeeklyBudget            float64        `db:"weekly_budget" json:"weekly_budget"`
	WeeklySpent             float64        `db:"weekly_spent" json:"weekly_spent"`
	BudgetActive            bool           `db:"budget_active" json:"budget_active"`
	Rating                  float64        `db:"rating" json:"rating"`
	TotalJobs               int            `db:"total_jobs" json:"total_jobs"`
	CreatedAt               time.Time      `db:"created_at" json:"created_at"`
}

// ProSearchResult профиль мастера вместе с контактами из users.
type ProSearchResult struct {
	ProProfile
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
