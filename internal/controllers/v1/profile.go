package v1

import (
	"net/http"
	"slices"
	"time"

	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterProfileRoutes registers the routes for the financial profile
// with the RouterGroup that is passed.
func (co Controller) RegisterProfileRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPatch)
		r.GET("", co.GetProfile)
		r.PATCH("", co.UpdateProfile)
	}
}

// GetProfile returns the financial profile of the user with the
// counters of the requested month, defaulting to the current one.
//
//	@Summary		Get profile
//	@Description	Returns the financial profile with the stats of one month
//	@Tags			Profile
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			month	query	string	false	"The month in YYYY-MM format, defaults to the current month"
//	@Router			/v1/profile [get]
func (co Controller) GetProfile(c *gin.Context) {
	user := currentUser(c)

	month, ok := queryMonth(c)
	if !ok {
		return
	}

	profile, err := models.ProfileForUser(user.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	monthly, err := models.MonthlyAmountFor(user.ID, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	data := Profile{
		FinancialProfile: profile,
		Month:            month,
		MonthlyIncome:    monthly.Income,
		MonthlyExpenses:  monthly.Expenses,
	}
	c.JSON(http.StatusOK, ProfileResponse{Data: &data})
}

// UpdateProfile overrides profile counters with absolute values. Only
// values to be updated need to be specified, the monthly overrides
// apply to the month of the query parameter.
//
//	@Summary		Update profile
//	@Description	Updates the financial profile. Only values to be updated need to be specified.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			month	query	string			false	"The month in YYYY-MM format, defaults to the current month"
//	@Param			profile	body	ProfileEditable	true	"Profile"
//	@Router			/v1/profile [patch]
func (co Controller) UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	month, ok := queryMonth(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ProfileEditable{})
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var data ProfileEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	profile, err := models.ProfileForUser(user.ID)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var profileFields []any
	for _, field := range []string{"TotalBalance", "Savings"} {
		if slices.Contains(updateFields, any(field)) {
			profileFields = append(profileFields, field)
		}
	}

	if len(profileFields) > 0 {
		err = models.DB.Model(&profile).Select("", profileFields...).Updates(models.FinancialProfile{
			TotalBalance: data.TotalBalance,
			Savings:      data.Savings,
		}).Error
		if err != nil {
			c.JSON(status(err), httpError{err.Error()})
			return
		}
	}

	var income, expenses *decimal.Decimal
	if slices.Contains(updateFields, any("MonthlyIncome")) {
		income = &data.MonthlyIncome
	}
	if slices.Contains(updateFields, any("MonthlyExpenses")) {
		expenses = &data.MonthlyExpenses
	}

	err = models.SetMonthly(user.ID, month, income, expenses)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	co.GetProfile(c)
}

// queryMonth resolves the month query parameter, defaulting to the
// current month. On failure the error response has already been
// written.
func queryMonth(c *gin.Context) (types.Month, bool) {
	var query QueryMonth
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{errInvalidQueryString.Error()})
		return types.Month{}, false
	}

	if query.Month.IsZero() {
		return types.MonthOf(time.Now()), true
	}

	return types.MonthOf(query.Month), true
}
