package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы платежей
const (
	PaymentTypeLeadFee        = "lead_fee"
	PaymentTypeCreditPurchase = "credit_purchase"
)

// Статусы оплаты во внешнем провайдере
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Внутренние статусы транзакции
const (
	TransactionStatusInitiated = "initiated"
	TransactionStatusCompleted = "completed"
)

// PaymentTransaction представляет одну попытку покупки лид-кредитов
// либо завершённое списание лид-фи.
//
// Инвариант: кредиты зачисляются в weekly_budget не более одного раза
// на транзакцию; единственная точка зачисления — переход pending -> paid.
type PaymentTransaction struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	SessionID     *string    `db:"session_id" json:"session_id,omitempty"`
	ProID         uuid.UUID  `db:"pro_id" json:"pro_id"`
	JobID         *uuid.UUID `db:"job_id" json:"job_id,omitempty"`
	PackageID     *string    `db:"package_id" json:"package_id,omitempty"`
	PaymentType   string     `db:"payment_type" json:"payment_type"`
	Amount        float64    `db:"amount" json:"amount"`
	Credits       float64    `db:"credits" json:"credits"`
	PaymentStatus string     `db:"payment_status" json:"payment_status"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// PaymentPackage описывает пакет лид-кредитов из серверного каталога.
// Клиент может выбрать только package_id: суммы и кредиты задаются
// исключительно на сервере, защита от подмены цены.
type PaymentPackage struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Credits     float64 `json:"credits"`
	Description string  `json:"description"`
}
