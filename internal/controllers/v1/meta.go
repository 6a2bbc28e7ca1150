package v1

import (
	"net/http"

	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/report"
	"github.com/gin-gonic/gin"
)

// Meta contains the suggestion lists for the transaction form.
type Meta struct {
	Categories     []report.Suggestion `json:"categories"`
	PaymentMethods []report.Suggestion `json:"paymentMethods"`
}

// MetaResponse is the response for the metadata endpoint.
type MetaResponse struct {
	Data *Meta `json:"data"`
}

// RegisterMetaRoutes registers the routes for metadata with
// the RouterGroup that is passed.
func (co Controller) RegisterMetaRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", co.GetMeta)
	}
}

// GetMeta returns the suggestion lists for categories and payment
// methods. The lists are suggestions for the clients, transactions
// accept free-text values.
//
//	@Summary		Get metadata
//	@Description	Returns the category and payment method suggestions
//	@Tags			Meta
//	@Produce		json
//	@Success		200	{object}	MetaResponse
//	@Router			/v1/meta [get]
func (co Controller) GetMeta(c *gin.Context) {
	c.JSON(http.StatusOK, MetaResponse{Data: &Meta{
		Categories:     report.Categories(),
		PaymentMethods: report.PaymentMethods(),
	}})
}
