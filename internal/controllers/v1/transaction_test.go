package v1_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/expensetracker/backend/internal/config"
	v1 "github.com/expensetracker/backend/internal/controllers/v1"
	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/router"
	"github.com/expensetracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (suite *TestSuiteStandard) TestCreateTransaction() {
	_, headers := suite.registerUser("jane@example.com")

	response := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose:       "Lunch",
		Amount:        decimal.NewFromFloat(12.50),
		Type:          models.TypeExpense,
		Category:      "food-dining",
		PaymentMethod: "cash",
		Date:          date(2024, 3, 4),
	})

	suite.Assert().Equal("Lunch", response.Data.Purpose)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(12.50)))
	suite.Assert().Nil(response.Warning)
	suite.Assert().Contains(response.Data.Links.Self, "/v1/transactions/"+response.Data.ID.String())
}

func (suite *TestSuiteStandard) TestCreateTransactionAdjustsStats() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Salary",
		Amount:  decimal.NewFromInt(2000),
		Type:    models.TypeIncome,
		Date:    date(2024, 3, 1),
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Rent",
		Amount:  decimal.NewFromInt(800),
		Type:    models.TypeExpense,
		Date:    date(2024, 3, 2),
	})

	profile := suite.profile(headers, "?month=2024-03")
	suite.Assert().True(profile.TotalBalance.Equal(decimal.NewFromInt(1200)), "balance is %s", profile.TotalBalance)
	suite.Assert().True(profile.MonthlyIncome.Equal(decimal.NewFromInt(2000)), "income is %s", profile.MonthlyIncome)
	suite.Assert().True(profile.MonthlyExpenses.Equal(decimal.NewFromInt(800)), "expenses are %s", profile.MonthlyExpenses)
}

func (suite *TestSuiteStandard) TestCreateTransactionInvalid() {
	_, headers := suite.registerUser("jane@example.com")

	tests := []struct {
		name     string
		editable v1.TransactionEditable
	}{
		{"empty purpose", v1.TransactionEditable{Amount: decimal.NewFromInt(10), Type: models.TypeExpense}},
		{"zero amount", v1.TransactionEditable{Purpose: "Lunch", Type: models.TypeExpense}},
		{"negative amount", v1.TransactionEditable{Purpose: "Lunch", Amount: decimal.NewFromInt(-10), Type: models.TypeExpense}},
		{"invalid type", v1.TransactionEditable{Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: "transfer"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodPost, "/v1/transactions", tt.editable, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateTransactionCompletesReminders() {
	_, headers := suite.registerUser("jane@example.com")

	r := test.Request(suite.T(), suite.co, http.MethodPost, "/v1/reminders", v1.ReminderEditable{
		Title: "Pay rent",
		Match: "rent*",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	response := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Rent for March",
		Amount:  decimal.NewFromInt(800),
		Type:    models.TypeExpense,
	})

	suite.Assert().Equal([]string{"Pay rent"}, response.CompletedReminders)
}

func (suite *TestSuiteStandard) TestGetTransactions() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Morning coffee", Amount: decimal.NewFromInt(4), Type: models.TypeExpense,
		Category: "food-dining", PaymentMethod: "cash", Date: date(2024, 3, 1),
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Train ticket", Amount: decimal.NewFromInt(30), Type: models.TypeExpense,
		Category: "transport", PaymentMethod: "card", Date: date(2024, 3, 2),
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Salary", Amount: decimal.NewFromInt(2000), Type: models.TypeIncome,
		Category: "other", PaymentMethod: "bank-transfer", Date: date(2024, 3, 5),
	})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"all", "", 3},
		{"all sentinels", "?category=all&paymentMethod=all&type=all", 3},
		{"search", "?search=coffee", 1},
		{"search matches nothing", "?search=yacht", 0},
		{"category", "?category=transport", 1},
		{"category case insensitive", "?category=Transport", 1},
		{"payment method", "?paymentMethod=cash", 1},
		{"type", "?type=expense", 2},
		{"type case insensitive", "?type=Expense", 2},
		{"type sentinel case insensitive", "?type=All", 3},
		{"from date", "?fromDate=2024-03-02", 2},
		{"until date", "?untilDate=2024-03-02", 2},
		{"date range", "?fromDate=2024-03-02&untilDate=2024-03-02", 1},
		{"combined", "?type=expense&paymentMethod=card", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodGet, "/v1/transactions"+tt.query, "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransactionsSorted() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Older", Amount: decimal.NewFromInt(1), Type: models.TypeExpense, Date: date(2024, 3, 1),
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Newer", Amount: decimal.NewFromInt(1), Type: models.TypeExpense, Date: date(2024, 3, 7),
	})

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Newer", response.Data[0].Purpose)
	suite.Assert().Equal("Older", response.Data[1].Purpose)
}

func (suite *TestSuiteStandard) TestGetTransactionsPagination() {
	_, headers := suite.registerUser("jane@example.com")

	for i := 1; i <= 5; i++ {
		suite.createTestTransaction(headers, v1.TransactionEditable{
			Purpose: fmt.Sprintf("Transaction %d", i),
			Amount:  decimal.NewFromInt(int64(i)),
			Type:    models.TypeExpense,
			Date:    date(2024, 3, i),
		})
	}

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions?offset=2&limit=2", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
	suite.Assert().Equal(5, response.Pagination.Total)
	suite.Assert().Equal(uint(2), response.Pagination.Offset)
	suite.Assert().Equal(2, response.Pagination.Count)
}

func (suite *TestSuiteStandard) TestGetTransactionsInvalidType() {
	_, headers := suite.registerUser("jane@example.com")

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions?type=transfer", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetTransactionsOtherUserInvisible() {
	_, headers := suite.registerUser("jane@example.com")
	_, otherHeaders := suite.registerUser("john@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense,
	})

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions", "", otherHeaders)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data)
}

func (suite *TestSuiteStandard) TestGetTransaction() {
	_, headers := suite.registerUser("jane@example.com")

	created := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense,
	})

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/"+created.Data.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(created.Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGetTransactionNotFound() {
	_, headers := suite.registerUser("jane@example.com")

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetTransactionOtherUser() {
	_, headers := suite.registerUser("jane@example.com")
	_, otherHeaders := suite.registerUser("john@example.com")

	created := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense,
	})

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/"+created.Data.ID.String(), "", otherHeaders)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	_, headers := suite.registerUser("jane@example.com")

	created := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense, Date: date(2024, 3, 4),
	})

	r := test.Request(suite.T(), suite.co, http.MethodPatch, "/v1/transactions/"+created.Data.ID.String(), map[string]any{
		"purpose": "Team lunch",
		"amount":  25,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Team lunch", response.Data.Purpose)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(25)))

	profile := suite.profile(headers, "?month=2024-03")
	suite.Assert().True(profile.TotalBalance.Equal(decimal.NewFromInt(-25)), "balance is %s", profile.TotalBalance)
	suite.Assert().True(profile.MonthlyExpenses.Equal(decimal.NewFromInt(25)), "expenses are %s", profile.MonthlyExpenses)
}

func (suite *TestSuiteStandard) TestUpdateTransactionTypeSwitch() {
	_, headers := suite.registerUser("jane@example.com")

	created := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Refund", Amount: decimal.NewFromInt(100), Type: models.TypeExpense, Date: date(2024, 3, 4),
	})

	r := test.Request(suite.T(), suite.co, http.MethodPatch, "/v1/transactions/"+created.Data.ID.String(), map[string]any{
		"type": "income",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	profile := suite.profile(headers, "?month=2024-03")
	suite.Assert().True(profile.TotalBalance.Equal(decimal.NewFromInt(100)), "balance is %s", profile.TotalBalance)
	suite.Assert().True(profile.MonthlyIncome.Equal(decimal.NewFromInt(100)), "income is %s", profile.MonthlyIncome)
	suite.Assert().True(profile.MonthlyExpenses.IsZero(), "expenses are %s", profile.MonthlyExpenses)
}

func (suite *TestSuiteStandard) TestUpdateTransactionInvalid() {
	_, headers := suite.registerUser("jane@example.com")

	created := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense,
	})

	// Partial updates must not be able to smuggle state past the
	// validation of full writes
	tests := []struct {
		name string
		body map[string]any
	}{
		{"negative amount", map[string]any{"amount": -10}},
		{"zero purpose", map[string]any{"purpose": "  "}},
		{"invalid type", map[string]any{"type": "transfer"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodPatch, "/v1/transactions/"+created.Data.ID.String(), tt.body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}

	// The stored transaction is untouched by the rejected updates
	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/"+created.Data.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Lunch", response.Data.Purpose)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(10)), "amount is %s", response.Data.Amount)
	suite.Assert().Equal(models.TypeExpense, response.Data.Type)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	_, headers := suite.registerUser("jane@example.com")

	created := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense, Date: date(2024, 3, 4),
	})

	r := test.Request(suite.T(), suite.co, http.MethodDelete, "/v1/transactions/"+created.Data.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/"+created.Data.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	profile := suite.profile(headers, "?month=2024-03")
	suite.Assert().True(profile.TotalBalance.IsZero(), "balance is %s", profile.TotalBalance)
	suite.Assert().True(profile.MonthlyExpenses.IsZero(), "expenses are %s", profile.MonthlyExpenses)
}

// TestBalanceLifecycle verifies the running balance over a full
// create, edit and delete cycle of one expense.
func (suite *TestSuiteStandard) TestBalanceLifecycle() {
	_, headers := suite.registerUser("jane@example.com")

	r := test.Request(suite.T(), suite.co, http.MethodPatch, "/v1/profile", map[string]any{
		"totalBalance": 1000,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	created := suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "New phone", Amount: decimal.NewFromInt(500), Type: models.TypeExpense, Date: date(2024, 3, 4),
	})
	profile := suite.profile(headers, "")
	suite.Assert().True(profile.TotalBalance.Equal(decimal.NewFromInt(500)), "balance is %s", profile.TotalBalance)

	r = test.Request(suite.T(), suite.co, http.MethodPatch, "/v1/transactions/"+created.Data.ID.String(), map[string]any{
		"amount": 1200,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	profile = suite.profile(headers, "")
	suite.Assert().True(profile.TotalBalance.Equal(decimal.NewFromInt(-200)), "balance is %s", profile.TotalBalance)

	r = test.Request(suite.T(), suite.co, http.MethodDelete, "/v1/transactions/"+created.Data.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	profile = suite.profile(headers, "")
	suite.Assert().True(profile.TotalBalance.Equal(decimal.NewFromInt(1000)), "balance is %s", profile.TotalBalance)
}

func (suite *TestSuiteStandard) TestDeleteAllTransactions() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense,
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Dinner", Amount: decimal.NewFromInt(20), Type: models.TypeExpense,
	})

	r := test.Request(suite.T(), suite.co, http.MethodDelete, "/v1/transactions", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions", "", headers)
	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data)
}

func (suite *TestSuiteStandard) TestGetBreakdown() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(30), Type: models.TypeExpense, PaymentMethod: "cash",
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Train", Amount: decimal.NewFromInt(70), Type: models.TypeExpense, PaymentMethod: "card",
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Salary", Amount: decimal.NewFromInt(2000), Type: models.TypeIncome, PaymentMethod: "bank-transfer",
	})

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/breakdown", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BreakdownResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.TotalSpending.Equal(decimal.NewFromInt(100)), "total is %s", response.Data.TotalSpending)
	suite.Require().Len(response.Data.Methods, 2)
	suite.Assert().Equal("card", response.Data.Methods[0].Method)
}

func (suite *TestSuiteStandard) TestExportTransactionsCSV() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromFloat(12.50), Type: models.TypeExpense,
		Category: "Food & Dining", PaymentMethod: "cash", Date: date(2024, 3, 4), Notes: "with Bob",
	})

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/export", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.Assert().Contains(r.Header().Get("Content-Disposition"), "transactions_export_")
	suite.Assert().Contains(r.Header().Get("Content-Disposition"), ".csv")

	lines := strings.Split(strings.TrimSpace(r.Body.String()), "\n")
	suite.Require().Len(lines, 2)
	suite.Assert().Equal("Date,Type,Purpose,Category,Payment Method,Amount,Notes", strings.TrimSpace(lines[0]))
	suite.Assert().Equal("3/4/2024,expense,Lunch,Food & Dining,cash,12.50,with Bob", strings.TrimSpace(lines[1]))
}

func (suite *TestSuiteStandard) TestExportTransactionsXLSX() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense,
	})

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/export?format=xlsx", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Header().Get("Content-Disposition"), ".xlsx")
	suite.Assert().NotEmpty(r.Body.Bytes())
}

func (suite *TestSuiteStandard) TestExportTransactionsInvalidFormat() {
	_, headers := suite.registerUser("jane@example.com")

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/transactions/export?format=pdf", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestStreamTransactions verifies that the stream sends the current
// snapshot immediately and terminates when the client disconnects.
func (suite *TestSuiteStandard) TestStreamTransactions() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Purpose: "Lunch", Amount: decimal.NewFromInt(10), Type: models.TypeExpense,
	})

	r, err := router.Router(&config.Config{})
	suite.Require().NoError(err)
	router.AttachRoutes(suite.co, r.Group("/"))

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(100*time.Millisecond, cancel)
	defer timer.Stop()
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/v1/transactions/stream", nil)
	req.Header.Set("Authorization", headers["Authorization"])

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	suite.Assert().Contains(recorder.Body.String(), "event:snapshot")
	suite.Assert().Contains(recorder.Body.String(), "Lunch")
}
