package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Типы счетов.
const (
	AccountTypeCurrent = "current"
	AccountTypeSavings = "savings"
)

// Account — счёт, принадлежащий ровно одному пользователю. Баланс хранится
// как поле и не выводится из истории транзакций.
type Account struct {
	ID              string          `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string          `json:"name" gorm:"not null"`
	AccountType     string          `json:"account_type" gorm:"not null"`
	StartingBalance decimal.Decimal `json:"-" gorm:"type:numeric(12,2);not null"`
	RoundUpEnabled  bool            `json:"round_up_enabled" gorm:"default:false"`
	UserID          uint            `json:"user_id" gorm:"not null;index"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BeforeCreate выдаёт счёту непрозрачный идентификатор.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AccountResponse defines the structure for account data sent in API responses.
// Денежные суммы сериализуются строками, чтобы не терять точность во float.
type AccountResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	AccountType     string    `json:"account_type"`
	StartingBalance string    `json:"starting_balance"`
	RoundUpEnabled  bool      `json:"round_up_enabled"`
	UserID          uint      `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts the account to its API representation.
func (a Account) ToResponse() AccountResponse {
	return AccountResponse{
		ID:              a.ID,
		Name:            a.Name,
		AccountType:     a.AccountType,
		StartingBalance: a.StartingBalance.StringFixed(2),
		RoundUpEnabled:  a.RoundUpEnabled,
		UserID:          a.UserID,
		CreatedAt:       a.CreatedAt,
	}
}
