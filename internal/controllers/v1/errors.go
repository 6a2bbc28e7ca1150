package v1

import (
	"errors"
	"net/http"

	"github.com/expensetracker/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no transaction matching your query"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrUserEmailNotUnique) {
		return http.StatusConflict
	}

	if errors.Is(err, errInvalidCredentials) || errors.Is(err, errNoToken) || errors.Is(err, errTokenInvalid) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errPasswordTooWeak    = errors.New("the password must be at least 6 characters long")
	errInvalidCredentials = errors.New("the email or password is incorrect")
	errNoToken            = errors.New("you must authenticate with a bearer token")
	errTokenInvalid       = errors.New("your session is invalid or expired, please log in again")
)

// Transaction errors
var (
	errInvalidQueryString     = errors.New("the query string contains unparseable data, please check the values")
	errTransactionTypeInvalid = errors.New("the type filter must be one of 'all', 'expense' or 'income'")
	errExportFormatInvalid    = errors.New("the export format must be one of 'csv' or 'xlsx'")
)

// warnStatsNotUpdated is returned as a warning when the transaction
// write succeeded but the compensating stats write did not. The
// transaction mutation itself counts as successful, the profile is
// left in a known-inconsistent state instead of rolling back.
const warnStatsNotUpdated = "the transaction was saved, but the financial stats may not be updated correctly"
