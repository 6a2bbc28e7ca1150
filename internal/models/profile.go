package models

import (
	"errors"

	"github.com/expensetracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialProfile is the singleton per user holding denormalized
// aggregate state that is independent of the transaction list.
//
// TotalBalance is a running counter that is adjusted by a separate
// write whenever a transaction is created, updated or deleted. It is
// not recomputed from the transaction list, so a failed compensation
// write leaves it diverged until the user corrects it manually.
type FinancialProfile struct {
	DefaultModel
	UserID       uuid.UUID       `json:"userId" gorm:"uniqueIndex" example:"d430d7c3-d14c-4712-9336-ee56965a6673"`
	User         User            `json:"-"`
	TotalBalance decimal.Decimal `json:"totalBalance" gorm:"type:DECIMAL(20,8)" example:"1234.56"`
	Savings      decimal.Decimal `json:"savings" gorm:"type:DECIMAL(20,8)" example:"250"` // user-editable, no derivation logic
}

// MonthlyAmount is the per-month income and expense ledger of a
// financial profile, keyed by the year and month.
type MonthlyAmount struct {
	DefaultModel
	UserID   uuid.UUID       `json:"userId" gorm:"uniqueIndex:monthly_amount_user_month"`
	Month    types.Month     `json:"month" gorm:"uniqueIndex:monthly_amount_user_month" example:"2024-03"`
	Income   decimal.Decimal `json:"income" gorm:"type:DECIMAL(20,8)" example:"2000"`
	Expenses decimal.Decimal `json:"expenses" gorm:"type:DECIMAL(20,8)" example:"800"`
}

// ProfileForUser returns the financial profile of a user, creating it
// with zeroed counters on first access.
func ProfileForUser(userID uuid.UUID) (FinancialProfile, error) {
	var profile FinancialProfile

	err := DB.Where(&FinancialProfile{UserID: userID}).First(&profile).Error
	if err == nil {
		return profile, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return FinancialProfile{}, err
	}

	profile = FinancialProfile{UserID: userID}
	err = DB.Create(&profile).Error
	if err != nil {
		return FinancialProfile{}, err
	}

	return profile, nil
}

// MonthlyAmountFor returns the ledger row for a month, zeroed when no
// transactions have touched that month yet.
func MonthlyAmountFor(userID uuid.UUID, month types.Month) (MonthlyAmount, error) {
	var row MonthlyAmount

	err := DB.Where("user_id = ?", userID).Where("month = ?", month).First(&row).Error
	if errors.Is(err, ErrResourceNotFound) {
		return MonthlyAmount{UserID: userID, Month: month}, nil
	}
	if err != nil {
		return MonthlyAmount{}, err
	}

	return row, nil
}

// AdjustBalance atomically adds delta to the total balance of the
// user's profile. This stands in for the document store's server-side
// increment primitive: the addition happens in a single UPDATE, so
// concurrent compensations cannot lose increments.
//
// It is deliberately NOT wrapped in one database transaction with the
// triggering transaction write, see the failure semantics of the
// controllers.
func AdjustBalance(userID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	if _, err := ProfileForUser(userID); err != nil {
		return err
	}

	return DB.Model(&FinancialProfile{}).
		Where("user_id = ?", userID).
		Update("total_balance", gorm.Expr("total_balance + ?", delta)).Error
}

// SetMonthly overrides the counters of a month with absolute values.
// Nil values keep the stored counter. This is the manual correction
// path for when the automatic compensation has diverged.
func SetMonthly(userID uuid.UUID, month types.Month, income, expenses *decimal.Decimal) error {
	if income == nil && expenses == nil {
		return nil
	}

	row, err := MonthlyAmountFor(userID, month)
	if err != nil {
		return err
	}

	if income != nil {
		row.Income = *income
	}
	if expenses != nil {
		row.Expenses = *expenses
	}

	if row.ID == uuid.Nil {
		return DB.Create(&row).Error
	}

	return DB.Model(&MonthlyAmount{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{"income": row.Income, "expenses": row.Expenses}).Error
}

// AdjustMonthly atomically adds the deltas to the income and expense
// counters of the month row, creating the row when it does not exist.
func AdjustMonthly(userID uuid.UUID, month types.Month, income, expenses decimal.Decimal) error {
	if income.IsZero() && expenses.IsZero() {
		return nil
	}

	res := DB.Model(&MonthlyAmount{}).
		Where("user_id = ?", userID).
		Where("month = ?", month).
		Updates(map[string]any{
			"income":   gorm.Expr("income + ?", income),
			"expenses": gorm.Expr("expenses + ?", expenses),
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return DB.Create(&MonthlyAmount{
			UserID:   userID,
			Month:    month,
			Income:   income,
			Expenses: expenses,
		}).Error
	}

	return nil
}
