package report

import (
	"github.com/expensetracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

// CreateDelta returns the effect a newly created transaction has on the
// total balance: expenses subtract their amount, income adds it.
func CreateDelta(t models.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == models.TypeExpense {
		return amount.Neg()
	}

	return amount
}

// DeleteDelta returns the balance adjustment that undoes a transaction:
// deleting an expense adds the amount back, deleting income subtracts it.
func DeleteDelta(t models.TransactionType, amount decimal.Decimal) decimal.Decimal {
	return CreateDelta(t, amount).Neg()
}

// EditDelta returns the balance adjustment for an edit. The balance
// already reflects the original transaction, so the delta first undoes
// the original effect and then applies the new one:
//
//	expense -> expense: original - new
//	income  -> income:  new - original
//	expense -> income:  original + new
//	income  -> expense: -(original + new)
func EditDelta(originalType models.TransactionType, originalAmount decimal.Decimal, newType models.TransactionType, newAmount decimal.Decimal) decimal.Decimal {
	switch {
	case originalType == models.TypeExpense && newType == models.TypeExpense:
		return originalAmount.Sub(newAmount)
	case originalType == models.TypeIncome && newType == models.TypeIncome:
		return newAmount.Sub(originalAmount)
	case originalType == models.TypeExpense && newType == models.TypeIncome:
		return originalAmount.Add(newAmount)
	default: // income -> expense
		return originalAmount.Add(newAmount).Neg()
	}
}
