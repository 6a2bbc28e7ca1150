// Package report implements the derived views over a user's
// transaction snapshot: filtering, the payment method breakdown, the
// balance compensation deltas and the export serializers.
//
// All functions are pure. They are recomputed from scratch on every
// snapshot, there is no incremental state.
package report

import (
	"strings"
	"time"

	"github.com/expensetracker/backend/internal/models"
)

// All is the sentinel for criteria fields that do not restrict the
// visible set.
const All = "all"

// Criteria is the filter a transaction list is reduced with. The zero
// value matches every transaction.
type Criteria struct {
	Search        string    // case-insensitive substring of purpose, category or notes
	Category      string    // "all" or empty matches everything
	PaymentMethod string    // "all" or empty matches everything
	Type          string    // "all" or empty matches everything
	From          time.Time // inclusive lower date bound, zero for unbounded
	Until         time.Time // inclusive upper date bound, zero for unbounded
}

// Filter returns the transactions matching the criteria. The result is
// an order-preserving subsequence of the input.
func Filter(transactions []models.Transaction, c Criteria) []models.Transaction {
	matched := make([]models.Transaction, 0, len(transactions))

	for _, transaction := range transactions {
		if c.matches(transaction) {
			matched = append(matched, transaction)
		}
	}

	return matched
}

// matches reports whether a single transaction is part of the visible
// set. All conditions have to hold.
func (c Criteria) matches(t models.Transaction) bool {
	if c.Search != "" {
		search := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(t.Purpose), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) &&
			!strings.Contains(strings.ToLower(t.Notes), search) {
			return false
		}
	}

	if !isAll(c.Category) && !strings.EqualFold(c.Category, t.Category) {
		return false
	}

	if !isAll(c.PaymentMethod) && !strings.EqualFold(c.PaymentMethod, t.PaymentMethod) {
		return false
	}

	if !isAll(c.Type) && c.Type != string(t.Type) {
		return false
	}

	// Bounds compare calendar dates, not instants, and are inclusive
	// on either side independently
	if !c.From.IsZero() && dateOnly(t.Date).Before(dateOnly(c.From)) {
		return false
	}

	if !c.Until.IsZero() && dateOnly(t.Date).After(dateOnly(c.Until)) {
		return false
	}

	return true
}

func isAll(value string) bool {
	return value == "" || strings.EqualFold(value, All)
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
