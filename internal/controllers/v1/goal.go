package v1

import (
	"net/http"
	"slices"

	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func (co Controller) RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetGoals)
		r.POST("", co.CreateGoal)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetGoal)
		r.PATCH("/:id", co.UpdateGoal)
		r.DELETE("/:id", co.DeleteGoal)
	}
}

// CreateGoal creates a new savings goal.
//
//	@Summary		Create goal
//	@Description	Creates a new savings goal
//	@Tags			Goals
//	@Produce		json
//	@Success		201	{object}	GoalResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			goal	body	GoalEditable	true	"Goal"
//	@Router			/v1/goals [post]
func (co Controller) CreateGoal(c *gin.Context) {
	user := currentUser(c)

	var editable GoalEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	goal := editable.model(user.ID)
	err = models.DB.Create(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusCreated, GoalResponse{Data: &goal})
}

// GetGoals returns the savings goals of the user.
//
//	@Summary		Get goals
//	@Description	Returns a list of savings goals
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalListResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			archived	query	bool	false	"Filter by archival state"
//	@Router			/v1/goals [get]
func (co Controller) GetGoals(c *gin.Context) {
	user := currentUser(c)

	var filter GoalQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := errInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, GoalListResponse{Error: &s})
		return
	}

	query := models.DB.
		Where(&models.Goal{UserID: user.ID}).
		Order("date(goals.target_month) ASC, goals.name ASC")

	if filter.Archived != nil {
		query = query.Where("archived = ?", *filter.Archived)
	}

	var goals []models.Goal
	err := query.Find(&goals).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: goals})
}

// GetGoal returns a single savings goal.
//
//	@Summary		Get goal
//	@Description	Returns a specific savings goal
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/goals/{id} [get]
func (co Controller) GetGoal(c *gin.Context) {
	user := currentUser(c)

	goal, ok := userGoal(c, user.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &goal})
}

// UpdateGoal updates a savings goal.
//
//	@Summary		Update goal
//	@Description	Updates an existing savings goal. Only values to be updated need to be specified.
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id		path	string			true	"ID formatted as string"
//	@Param			goal	body	GoalEditable	true	"Goal"
//	@Router			/v1/goals/{id} [patch]
func (co Controller) UpdateGoal(c *gin.Context) {
	user := currentUser(c)

	goal, ok := userGoal(c, user.ID)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GoalEditable{})
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var update GoalEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if !slices.Contains(updateFields, any("Target")) || update.Target.IsZero() {
		update.Target = goal.Target
	}
	if update.Name == "" {
		update.Name = goal.Name
	}

	err = models.DB.Model(&goal).Select("", updateFields...).Updates(update.model(user.ID)).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &goal})
}

// DeleteGoal deletes a savings goal.
//
//	@Summary		Delete goal
//	@Description	Deletes a savings goal
//	@Tags			Goals
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/goals/{id} [delete]
func (co Controller) DeleteGoal(c *gin.Context) {
	user := currentUser(c)

	goal, ok := userGoal(c, user.ID)
	if !ok {
		return
	}

	err := models.DB.Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func userGoal(c *gin.Context, userID uuid.UUID) (models.Goal, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{err.Error()})
		return models.Goal{}, false
	}

	var goal models.Goal
	err := models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return models.Goal{}, false
	}

	return goal, true
}
