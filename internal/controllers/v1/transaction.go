package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/report"
	"github.com/expensetracker/backend/internal/stream"
	"github.com/expensetracker/backend/internal/types"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPostDelete)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
		r.DELETE("", co.DeleteAllTransactions)
	}

	// Derived views over the full snapshot
	{
		r.OPTIONS("/breakdown", httputil.OptionsGet)
		r.GET("/breakdown", co.GetBreakdown)

		r.OPTIONS("/export", httputil.OptionsGet)
		r.GET("/export", co.ExportTransactions)

		r.OPTIONS("/stream", httputil.OptionsGet)
		r.GET("/stream", co.StreamTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// CreateTransaction creates a new transaction and adjusts the
// financial stats for it.
//
//	@Summary		Create transaction
//	@Description	Creates a new transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		201	{object}	TransactionResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			transaction	body	TransactionEditable	true	"Transaction"
//	@Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	user := currentUser(c)

	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	transaction := editable.model(user.ID)
	err = models.DB.Create(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var response TransactionResponse

	income, expenses := monthlySplit(transaction.Type, transaction.Amount)
	err = compensate(user.ID, report.CreateDelta(transaction.Type, transaction.Amount),
		monthlyDelta{types.MonthOf(transaction.Date), income, expenses})
	if err != nil {
		warnCompensation(c, err, &response)
	}

	// Reminder completion is best effort, a failure never rolls the
	// transaction back
	completed, err := models.CompleteMatchingReminders(user.ID, transaction.Purpose)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("reminder completion failed: %v", err)
	}
	response.CompletedReminders = completed

	co.publishSnapshot(user.ID)

	data := newTransaction(c, transaction)
	response.Data = &data
	c.JSON(http.StatusCreated, response)
}

// GetTransactions returns the filtered transaction list.
//
// The full snapshot of the user is loaded and reduced in memory, so
// the filter semantics stay identical to the other derived views.
//
//	@Summary		Get transactions
//	@Description	Returns a list of transactions
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionListResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	user := currentUser(c)

	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := errInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &s})
		return
	}

	if err := validTypeFilter(filter.Type); err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	snapshot, err := models.TransactionsForUser(user.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	filtered := report.Filter(snapshot, filter.criteria())
	page := paginate(filtered, filter.Offset, filter.Limit)

	data := make([]Transaction, 0, len(page))
	for _, transaction := range page {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  effectiveLimit(filter.Limit),
			Total:  len(filtered),
		},
	})
}

// GetTransaction returns a single transaction.
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	user := currentUser(c)

	transaction, ok := userTransaction(c, user.ID)
	if !ok {
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// UpdateTransaction updates a transaction and compensates the
// financial stats for the difference.
//
//	@Summary		Update transaction
//	@Description	Updates an existing transaction. Only values to be updated need to be specified.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id			path	string				true	"ID formatted as string"
//	@Param			transaction	body	TransactionEditable	true	"Transaction"
//	@Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	user := currentUser(c)

	transaction, ok := userTransaction(c, user.ID)
	if !ok {
		return
	}
	original := transaction

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var update TransactionEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	// Fields that are not part of the update are backfilled from the
	// stored transaction so that the model validation sees the
	// effective new state
	if !slices.Contains(updateFields, any("Amount")) || update.Amount.IsZero() {
		update.Amount = original.Amount
	}
	if !slices.Contains(updateFields, any("Type")) {
		update.Type = original.Type
	}
	if !slices.Contains(updateFields, any("Purpose")) {
		update.Purpose = original.Purpose
	}
	if !slices.Contains(updateFields, any("Date")) {
		update.Date = original.Date
	}

	// The hook validation runs against the stored model for partial
	// updates, so the merged state has to be checked here
	if err := validEffectiveState(update); err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(update.model(user.ID)).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var response TransactionResponse

	// Undo the contribution of the old state, apply the new one
	originalIncome, originalExpenses := monthlySplit(original.Type, original.Amount)
	newIncome, newExpenses := monthlySplit(update.Type, update.Amount)
	err = compensate(user.ID,
		report.EditDelta(original.Type, original.Amount, update.Type, update.Amount),
		monthlyDelta{types.MonthOf(original.Date), originalIncome.Neg(), originalExpenses.Neg()},
		monthlyDelta{types.MonthOf(update.Date), newIncome, newExpenses})
	if err != nil {
		warnCompensation(c, err, &response)
	}

	co.publishSnapshot(user.ID)

	data := newTransaction(c, transaction)
	response.Data = &data
	c.JSON(http.StatusOK, response)
}

// DeleteTransaction deletes a transaction and compensates the
// financial stats for it.
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	user := currentUser(c)

	transaction, ok := userTransaction(c, user.ID)
	if !ok {
		return
	}

	err := models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	income, expenses := monthlySplit(transaction.Type, transaction.Amount)
	err = compensate(user.ID, report.DeleteDelta(transaction.Type, transaction.Amount),
		monthlyDelta{types.MonthOf(transaction.Date), income.Neg(), expenses.Neg()})

	co.publishSnapshot(user.ID)

	if err != nil {
		var response TransactionResponse
		warnCompensation(c, err, &response)
		c.JSON(http.StatusOK, response)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// DeleteAllTransactions deletes every transaction of the user.
//
// The stats are deliberately left untouched, wiping the history is a
// reset of the list, not an undo of every transaction.
//
//	@Summary		Delete all transactions
//	@Description	Deletes all transactions of the current user
//	@Tags			Transactions
//	@Success		204
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Router			/v1/transactions [delete]
func (co Controller) DeleteAllTransactions(c *gin.Context) {
	user := currentUser(c)

	err := models.DB.Where("user_id = ?", user.ID).Delete(&models.Transaction{}).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	co.publishSnapshot(user.ID)
	c.JSON(http.StatusNoContent, nil)
}

// GetBreakdown returns the payment method breakdown over all expenses
// of the user.
//
//	@Summary		Payment method breakdown
//	@Description	Returns the spending per payment method
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	BreakdownResponse
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Router			/v1/transactions/breakdown [get]
func (co Controller) GetBreakdown(c *gin.Context) {
	user := currentUser(c)

	snapshot, err := models.TransactionsForUser(user.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BreakdownResponse{Error: &s})
		return
	}

	breakdown := report.PaymentBreakdown(snapshot)
	c.JSON(http.StatusOK, BreakdownResponse{Data: &breakdown})
}

// ExportTransactions writes the filtered transaction list as a file
// download.
//
//	@Summary		Export transactions
//	@Description	Exports the filtered transactions as CSV or XLSX
//	@Tags			Transactions
//	@Produce		text/csv
//	@Success		200
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			format	query	string	false	"csv or xlsx, default csv"
//	@Router			/v1/transactions/export [get]
func (co Controller) ExportTransactions(c *gin.Context) {
	user := currentUser(c)

	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{errInvalidQueryString.Error()})
		return
	}

	if err := validTypeFilter(filter.Type); err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		c.JSON(status(errExportFormatInvalid), httpError{errExportFormatInvalid.Error()})
		return
	}

	snapshot, err := models.TransactionsForUser(user.ID)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	filtered := report.Filter(snapshot, filter.criteria())

	var buffer bytes.Buffer
	contentType := "text/csv"
	if format == "csv" {
		err = report.WriteCSV(&buffer, filtered)
	} else {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = report.WriteXLSX(&buffer, filtered)
	}
	if err != nil {
		c.JSON(status(models.ErrGeneral), httpError{models.ErrGeneral.Error()})
		return
	}

	filename := report.ExportFilename(format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buffer.Bytes())
}

// StreamTransactions delivers the transaction list as server sent
// events. The current snapshot is sent immediately, after that every
// write to the list pushes a new one.
//
//	@Summary		Stream transactions
//	@Description	Streams snapshots of the transaction list as server sent events
//	@Tags			Transactions
//	@Produce		text/event-stream
//	@Success		200
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Router			/v1/transactions/stream [get]
func (co Controller) StreamTransactions(c *gin.Context) {
	user := currentUser(c)

	snapshot, err := models.TransactionsForUser(user.ID)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	snapshots, cancel := co.Hub.Subscribe(user.ID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")

	// The current snapshot is delivered right away so that a new
	// subscriber does not have to wait for the next write
	c.SSEvent("snapshot", snapshot)
	c.Writer.Flush()

	for {
		select {
		case update, open := <-snapshots:
			if !open {
				return
			}

			c.SSEvent("snapshot", update.Transactions)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

// userTransaction binds the ID from the URI and loads the transaction
// when it belongs to the user. On failure the error response has
// already been written.
func userTransaction(c *gin.Context, userID uuid.UUID) (models.Transaction, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{err.Error()})
		return models.Transaction{}, false
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return models.Transaction{}, false
	}

	return transaction, true
}

// validEffectiveState checks the merged state of a partial update
// against the same invariants the model hook enforces on full writes.
func validEffectiveState(update TransactionEditable) error {
	if strings.TrimSpace(update.Purpose) == "" {
		return models.ErrTransactionPurposeEmpty
	}

	if !update.Amount.IsPositive() {
		return models.ErrTransactionAmountNotPositive
	}

	if !update.Type.Valid() {
		return models.ErrTransactionTypeInvalid
	}

	return nil
}

// monthlyDelta is one adjustment to the income and expense counters of
// a month.
type monthlyDelta struct {
	month    types.Month
	income   decimal.Decimal
	expenses decimal.Decimal
}

// monthlySplit routes an amount into the counter its type belongs to.
func monthlySplit(t models.TransactionType, amount decimal.Decimal) (income, expenses decimal.Decimal) {
	if t == models.TypeIncome {
		return amount, decimal.Zero
	}

	return decimal.Zero, amount
}

// compensate applies the stats writes for a transaction mutation.
//
// The writes are intentionally not part of one database transaction
// with the mutation that triggered them: when they fail, the mutation
// stands and the caller reports a warning instead of rolling back.
func compensate(userID uuid.UUID, balance decimal.Decimal, months ...monthlyDelta) error {
	if err := models.AdjustBalance(userID, balance); err != nil {
		return err
	}

	for _, delta := range months {
		if err := models.AdjustMonthly(userID, delta.month, delta.income, delta.expenses); err != nil {
			return err
		}
	}

	return nil
}

func warnCompensation(c *gin.Context, err error, response *TransactionResponse) {
	log.Error().Str("request-id", requestid.Get(c)).Msgf("stats compensation failed: %v", err)
	warning := warnStatsNotUpdated
	response.Warning = &warning
}

// publishSnapshot pushes the current transaction list of the user to
// all stream subscribers.
func (co Controller) publishSnapshot(userID uuid.UUID) {
	if co.Hub == nil {
		return
	}

	transactions, err := models.TransactionsForUser(userID)
	if err != nil {
		log.Error().Msgf("snapshot publish failed: %v", err)
		return
	}

	co.Hub.Publish(userID, stream.Snapshot{Transactions: transactions})
}

func validTypeFilter(value string) error {
	switch strings.ToLower(value) {
	case "", report.All, string(models.TypeExpense), string(models.TypeIncome):
		return nil
	}

	return errTransactionTypeInvalid
}

// effectiveLimit resolves the default page size. A negative limit
// returns everything from the offset on.
func effectiveLimit(limit int) int {
	if limit == 0 {
		return 50
	}

	return limit
}

func paginate(transactions []models.Transaction, offset uint, limit int) []models.Transaction {
	start := int(offset)
	if start > len(transactions) {
		start = len(transactions)
	}

	limit = effectiveLimit(limit)
	end := len(transactions)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return transactions[start:end]
}
