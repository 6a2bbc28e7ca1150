package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.Transaction
	Links TransactionLinks `json:"links"`
}

// TransactionLinks contains the links for a transaction.
type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"`
}

func (t *Transaction) links(c *gin.Context) {
	t.Links = TransactionLinks{
		Self: fmt.Sprintf("%s/v1/transactions/%s", c.GetString("baseURL"), t.ID),
	}
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	transaction := Transaction{Transaction: model}
	transaction.links(c)
	return transaction
}

// TransactionEditable represents the user-settable fields of a
// transaction.
type TransactionEditable struct {
	Purpose       string                 `json:"purpose" example:"Groceries"`
	Amount        decimal.Decimal        `json:"amount" example:"54.12"`
	Type          models.TransactionType `json:"type" example:"expense"`
	Category      string                 `json:"category" example:"food-dining"`
	PaymentMethod string                 `json:"paymentMethod" example:"cash"`
	Date          time.Time              `json:"date" example:"2024-03-04T00:00:00Z"`
	Notes         string                 `json:"notes" example:"with Bob"`
}

// model returns the models.Transaction for the editable.
func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:        userID,
		Purpose:       editable.Purpose,
		Amount:        editable.Amount,
		Type:          editable.Type,
		Category:      editable.Category,
		PaymentMethod: editable.PaymentMethod,
		Date:          editable.Date,
		Notes:         editable.Notes,
	}
}

// TransactionResponse is the response for a single transaction.
//
// Warning is set when the transaction write succeeded but a secondary
// write did not, see the compensation notes on the handlers.
type TransactionResponse struct {
	Data               *Transaction `json:"data"`
	Error              *string      `json:"error" example:"there is no transaction matching your query"`
	Warning            *string      `json:"warning"`
	CompletedReminders []string     `json:"completedReminders,omitempty" example:"Pay rent"`
}

// TransactionListResponse is the response for the transaction list.
type TransactionListResponse struct {
	Data       []Transaction `json:"data"`
	Error      *string       `json:"error"`
	Pagination *Pagination   `json:"pagination"`
}

// BreakdownResponse is the response for the payment method breakdown.
type BreakdownResponse struct {
	Data  *report.Breakdown `json:"data"`
	Error *string           `json:"error"`
}

// TransactionQueryFilter are the query parameters the transaction list
// is reduced with. The filtering happens in memory over the full
// snapshot of the user, not in the database query.
type TransactionQueryFilter struct {
	Search        string    `form:"search" example:"coffee"`
	Category      string    `form:"category" example:"food-dining"`
	PaymentMethod string    `form:"paymentMethod" example:"cash"`
	Type          string    `form:"type" example:"expense"`
	From          time.Time `form:"fromDate" time_format:"2006-01-02" example:"2024-03-01"`
	Until         time.Time `form:"untilDate" time_format:"2006-01-02" example:"2024-03-31"`
	Offset        uint      `form:"offset" example:"50"`
	Limit         int       `form:"limit" example:"25"`
}

func (f TransactionQueryFilter) criteria() report.Criteria {
	return report.Criteria{
		Search:        f.Search,
		Category:      f.Category,
		PaymentMethod: f.PaymentMethod,
		// Validation accepts the type in any casing, the match on the
		// stored type is exact
		Type:  strings.ToLower(f.Type),
		From:  f.From,
		Until: f.Until,
	}
}
