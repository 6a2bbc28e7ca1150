package v1

import (
	"time"

	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Profile is the API representation of the financial profile together
// with the counters of one month.
type Profile struct {
	models.FinancialProfile
	Month           types.Month     `json:"month" example:"2024-03"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome" example:"2317.34"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses" example:"1204.70"`
}

// ProfileEditable represents the user-settable fields of the profile.
// The monthly counters are absolute overrides for the month the
// request addresses.
type ProfileEditable struct {
	TotalBalance    decimal.Decimal `json:"totalBalance" example:"1000"`
	Savings         decimal.Decimal `json:"savings" example:"250"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome" example:"2317.34"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses" example:"1204.70"`
}

// ProfileResponse is the response for the profile endpoints.
type ProfileResponse struct {
	Data  *Profile `json:"data"`
	Error *string  `json:"error"`
}

// QueryMonth is the month selector for the profile endpoints.
type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-03"` // Year and month
}
