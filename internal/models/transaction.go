package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType determines the sign a transaction carries when it is
// aggregated against the balance. Amounts themselves are always positive.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Transaction represents a single financial event of a user.
type Transaction struct {
	DefaultModel
	UserID        uuid.UUID       `json:"userId" gorm:"index" example:"d430d7c3-d14c-4712-9336-ee56965a6673"`
	User          User            `json:"-"`
	Purpose       string          `json:"purpose" example:"Groceries"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"54.12"`
	Type          TransactionType `json:"type" example:"expense"`
	Category      string          `json:"category" example:"food-dining"`
	PaymentMethod string          `json:"paymentMethod" example:"cash"`
	Date          time.Time       `json:"date" example:"2024-03-04T00:00:00Z"`
	Notes         string          `json:"notes" example:"with Bob"`
}

// BeforeSave trims the text fields, sets the timezone for the Date to
// UTC and validates the business invariants.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Purpose = strings.TrimSpace(t.Purpose)
	t.Notes = strings.TrimSpace(t.Notes)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.Purpose == "" {
		return ErrTransactionPurposeEmpty
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// TransactionsForUser returns the full transaction list of a user,
// sorted descending by date with the creation time as tie breaker.
// This is the snapshot all derived views are computed from.
func TransactionsForUser(userID uuid.UUID) ([]Transaction, error) {
	var transactions []Transaction

	err := DB.
		Where(&Transaction{UserID: userID}).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
