package v1

import (
	"net/http"

	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterReminderRoutes registers the routes for reminders with
// the RouterGroup that is passed.
func (co Controller) RegisterReminderRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetReminders)
		r.POST("", co.CreateReminder)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetReminder)
		r.PATCH("/:id", co.UpdateReminder)
		r.DELETE("/:id", co.DeleteReminder)
	}
}

// CreateReminder creates a new reminder.
//
//	@Summary		Create reminder
//	@Description	Creates a new reminder
//	@Tags			Reminders
//	@Produce		json
//	@Success		201	{object}	ReminderResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			reminder	body	ReminderEditable	true	"Reminder"
//	@Router			/v1/reminders [post]
func (co Controller) CreateReminder(c *gin.Context) {
	user := currentUser(c)

	var editable ReminderEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	reminder := editable.model(user.ID)
	err = models.DB.Create(&reminder).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ReminderResponse{Data: &reminder})
}

// GetReminders returns the reminders of the user, sorted by due date.
//
//	@Summary		Get reminders
//	@Description	Returns a list of reminders
//	@Tags			Reminders
//	@Produce		json
//	@Success		200	{object}	ReminderListResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			done	query	bool	false	"Filter by completion state"
//	@Router			/v1/reminders [get]
func (co Controller) GetReminders(c *gin.Context) {
	user := currentUser(c)

	var filter ReminderQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := errInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, ReminderListResponse{Error: &s})
		return
	}

	query := models.DB.
		Where(&models.Reminder{UserID: user.ID}).
		Order("datetime(reminders.due_date) ASC")

	if filter.Done != nil {
		query = query.Where("done = ?", *filter.Done)
	}

	var reminders []models.Reminder
	err := query.Find(&reminders).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ReminderListResponse{Data: reminders})
}

// GetReminder returns a single reminder.
//
//	@Summary		Get reminder
//	@Description	Returns a specific reminder
//	@Tags			Reminders
//	@Produce		json
//	@Success		200	{object}	ReminderResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/reminders/{id} [get]
func (co Controller) GetReminder(c *gin.Context) {
	user := currentUser(c)

	reminder, ok := userReminder(c, user.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ReminderResponse{Data: &reminder})
}

// UpdateReminder updates a reminder.
//
//	@Summary		Update reminder
//	@Description	Updates an existing reminder. Only values to be updated need to be specified.
//	@Tags			Reminders
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	ReminderResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id			path	string				true	"ID formatted as string"
//	@Param			reminder	body	ReminderEditable	true	"Reminder"
//	@Router			/v1/reminders/{id} [patch]
func (co Controller) UpdateReminder(c *gin.Context) {
	user := currentUser(c)

	reminder, ok := userReminder(c, user.ID)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ReminderEditable{})
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var update ReminderEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if update.Title == "" {
		update.Title = reminder.Title
	}

	err = models.DB.Model(&reminder).Select("", updateFields...).Updates(update.model(user.ID)).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, ReminderResponse{Data: &reminder})
}

// DeleteReminder deletes a reminder.
//
//	@Summary		Delete reminder
//	@Description	Deletes a reminder
//	@Tags			Reminders
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/reminders/{id} [delete]
func (co Controller) DeleteReminder(c *gin.Context) {
	user := currentUser(c)

	reminder, ok := userReminder(c, user.ID)
	if !ok {
		return
	}

	err := models.DB.Delete(&reminder).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func userReminder(c *gin.Context, userID uuid.UUID) (models.Reminder, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{err.Error()})
		return models.Reminder{}, false
	}

	var reminder models.Reminder
	err := models.DB.First(&reminder, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return models.Reminder{}, false
	}

	return reminder, true
}
