package models

import "errors"

// ErrGeneral is used for unexpected database errors where no useful
// detail can be given to the user.
var ErrGeneral = errors.New("an error occurred on the server during your request, please contact your server administrator")

// ErrResourceNotFound is wrapped with the resource name by the query
// callback, see queryCallback.
var ErrResourceNotFound = errors.New("there is no")

// Transaction errors
var (
	ErrTransactionAmountNotPositive = errors.New("the transaction amount must be larger than zero")
	ErrTransactionPurposeEmpty      = errors.New("the transaction purpose must be set")
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be one of 'expense' or 'income'")
)

// User errors
var (
	ErrUserEmailNotUnique = errors.New("this email address is already registered")
)

// Goal errors
var (
	ErrGoalTargetNotPositive = errors.New("the goal target amount must be larger than zero")
)

// Reminder errors
var (
	ErrReminderTitleEmpty = errors.New("the reminder title must be set")
)
