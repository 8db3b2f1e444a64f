package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Типы транзакций.
const (
	TransactionTypePayment  = "payment"
	TransactionTypeDeposit  = "deposit"
	TransactionTypeTransfer = "transfer"
)

// Transaction — записанная операция по счёту. Это не проводка бухгалтерской
// книги: баланс счёта при создании не изменяется. Владелец транзакции —
// владелец счёта from_account.
type Transaction struct {
	ID              string          `json:"id" gorm:"type:uuid;primaryKey"`
	FromAccountID   string          `json:"from_account" gorm:"type:uuid;not null;index"`
	FromAccount     Account         `json:"-" gorm:"foreignKey:FromAccountID"`
	BusinessID      *uint           `json:"business"`
	Business        *Business       `json:"-"`
	Amount          decimal.Decimal `json:"-" gorm:"type:numeric(12,2);not null"`
	TransactionType string          `json:"transaction_type" gorm:"not null;default:payment"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BeforeCreate выдаёт транзакции непрозрачный идентификатор.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TransactionResponse defines the structure for transaction data sent in API
// responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	FromAccountID   string    `json:"from_account"`
	BusinessID      *uint     `json:"business"`
	Amount          string    `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts the transaction to its API representation.
func (t Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		FromAccountID:   t.FromAccountID,
		BusinessID:      t.BusinessID,
		Amount:          t.Amount.StringFixed(2),
		TransactionType: t.TransactionType,
		CreatedAt:       t.CreatedAt,
	}
}
