package v1

import (
	"time"

	"github.com/expensetracker/backend/internal/models"
	"github.com/google/uuid"
)

// ReminderEditable represents the user-settable fields of a reminder.
type ReminderEditable struct {
	Title   string    `json:"title" example:"Pay rent"`
	DueDate time.Time `json:"dueDate" example:"2024-04-01T00:00:00Z"`
	Match   string    `json:"match" example:"rent*"`
	Done    bool      `json:"done" example:"false"`
}

func (editable ReminderEditable) model(userID uuid.UUID) models.Reminder {
	return models.Reminder{
		UserID:  userID,
		Title:   editable.Title,
		DueDate: editable.DueDate,
		Match:   editable.Match,
		Done:    editable.Done,
	}
}

// ReminderResponse is the response for a single reminder.
type ReminderResponse struct {
	Data  *models.Reminder `json:"data"`
	Error *string          `json:"error"`
}

// ReminderListResponse is the response for the reminder list.
type ReminderListResponse struct {
	Data  []models.Reminder `json:"data"`
	Error *string           `json:"error"`
}

// ReminderQueryFilter are the query parameters for the reminder list.
type ReminderQueryFilter struct {
	Done *bool `form:"done" example:"false"`
}
