package report

import (
	"sort"
	"strings"

	"github.com/expensetracker/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// MethodSum is the summed spending for one payment method.
type MethodSum struct {
	Method  string          `json:"method" example:"cash"`            // case-folded method name
	Name    string          `json:"name" example:"Cash"`              // method name for display
	Amount  decimal.Decimal `json:"amount" example:"512.5"`           // summed amount of all expenses with this method
	Percent float64         `json:"percent" example:"42.2"`           // share of the total spending in percent
}

// Breakdown is the spending of a transaction list grouped by payment
// method. Only expense transactions contribute; when there are none,
// Methods is empty and TotalSpending is zero.
type Breakdown struct {
	Methods       []MethodSum     `json:"methods"`
	TotalSpending decimal.Decimal `json:"totalSpending" example:"1214.99"`
}

// PaymentBreakdown groups the expense transactions by their payment
// method and sums the amounts per method. Transactions without a
// method fall into the "other" bucket.
func PaymentBreakdown(transactions []models.Transaction) Breakdown {
	sums := make(map[string]decimal.Decimal)

	for _, transaction := range transactions {
		if transaction.Type != models.TypeExpense {
			continue
		}

		method := strings.ToLower(strings.TrimSpace(transaction.PaymentMethod))
		if method == "" {
			method = "other"
		}

		sums[method] = sums[method].Add(transaction.Amount)
	}

	breakdown := Breakdown{Methods: make([]MethodSum, 0, len(sums))}
	for method, amount := range sums {
		breakdown.TotalSpending = breakdown.TotalSpending.Add(amount)
		breakdown.Methods = append(breakdown.Methods, MethodSum{
			Method: method,
			Name:   titleCaser.String(method),
			Amount: amount,
		})
	}

	// Percentages need the total, so they are filled in a second pass.
	// A zero total means there is nothing to divide by and all
	// percentages stay 0.
	if breakdown.TotalSpending.IsPositive() {
		for i := range breakdown.Methods {
			percent, _ := breakdown.Methods[i].Amount.
				Div(breakdown.TotalSpending).
				Mul(decimal.NewFromInt(100)).
				Round(1).
				Float64()
			breakdown.Methods[i].Percent = percent
		}
	}

	// Largest bucket first, method name as tie breaker for stable output
	sort.Slice(breakdown.Methods, func(i, j int) bool {
		if !breakdown.Methods[i].Amount.Equal(breakdown.Methods[j].Amount) {
			return breakdown.Methods[i].Amount.GreaterThan(breakdown.Methods[j].Amount)
		}
		return breakdown.Methods[i].Method < breakdown.Methods[j].Method
	})

	return breakdown
}
