package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы заявок
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// Сроки выполнения
const (
	TimelineUrgent    = "urgent"
	TimelineFlexible  = "flexible"
	TimelineScheduled = "scheduled"
)

// Job описывает заявку клиента на выполнение работ.
type Job struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CustomerID    uuid.UUID `db:"customer_id" json:"customer_id"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	CustomerPhone string    `db:"customer_phone" json:"customer_phone"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Category      string    `db:"category" json:"category"`
	Location      string    `db:"location" json:"location"`
	Zipcode       string    `db:"zipcode" json:"zipcode"`
	BudgetMin     *float64  `db:"budget_min" json:"budget_min,omitempty"`
	BudgetMax     *float64  `db:"budget_max" json:"budget_max,omitempty"`
	Timeline      string    `db:"timeline" json:"timeline"`
	Status        string    `db:"status" json:"status"`
	QuotesCount   int       `db:"quotes_count" json:"quotes_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// JobFilter задаёт фильтры для выборки заявок.
type JobFilter struct {
	Status     string
	Category   string
	Zipcode    string
	CustomerID *uuid.UUID
}
