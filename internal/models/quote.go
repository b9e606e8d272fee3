package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы откликов. Переходы только pending -> accepted и pending -> rejected.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

// Quote описывает отклик мастера на заявку с предложенной ценой.
// Создание отклика списывает лид-фи с недельного бюджета мастера;
// при отклонении отклика списание не возвращается.
type Quote struct {
	ID                uuid.UUID `db:"id" json:"id"`
	JobID             uuid.UUID `db:"job_id" json:"job_id"`
	ProID             uuid.UUID `db:"pro_id" json:"pro_id"`
	ProName           string    `db:"pro_name" json:"pro_name"`
	ProPhone          string    `db:"pro_phone" json:"pro_phone"`
	ProRating         float64   `db:"pro_rating" json:"pro_rating"`
	Message           string    `db:"message" json:"message"`
	Price             float64   `db:"price" json:"price"`
	EstimatedDuration string    `db:"estimated_duration" json:"estimated_duration"`
	Status            string    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// ValidQuoteTransition проверяет допустимость смены статуса отклика.
func ValidQuoteTransition(from, to string) bool {
	if from != QuoteStatusPending {
		return false
	}
	return to == QuoteStatusAccepted || to == QuoteStatusRejected
}
