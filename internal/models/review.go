package models

import (
	"time"

	"github.com/google/uuid"
)

// Review описывает отзыв клиента о мастере.
type Review struct {
	ID           uuid.UUID `db:"id" json:"id"`
	JobID        uuid.UUID `db:"job_id" json:"job_id"`
	CustomerID   uuid.UUID `db:"customer_id" json:"customer_id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	ProID        uuid.UUID `db:"pro_id" json:"pro_id"`
	Rating       int       `db:"rating" json:"rating"`
	Comment      string    `db:"comment" json:"comment"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
