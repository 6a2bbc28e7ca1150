package v1

import (
	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalEditable represents the user-settable fields of a savings goal.
type GoalEditable struct {
	Name        string          `json:"name" example:"New laptop"`
	Note        string          `json:"note" example:"Before the conference"`
	Target      decimal.Decimal `json:"target" example:"1500"`
	Saved       decimal.Decimal `json:"saved" example:"350"`
	TargetMonth types.Month     `json:"targetMonth" example:"2024-11"`
	Archived    bool            `json:"archived" example:"false"`
}

func (editable GoalEditable) model(userID uuid.UUID) models.Goal {
	return models.Goal{
		UserID:      userID,
		Name:        editable.Name,
		Note:        editable.Note,
		Target:      editable.Target,
		Saved:       editable.Saved,
		TargetMonth: editable.TargetMonth,
		Archived:    editable.Archived,
	}
}

// GoalResponse is the response for a single goal.
type GoalResponse struct {
	Data  *models.Goal `json:"data"`
	Error *string      `json:"error"`
}

// GoalListResponse is the response for the goal list.
type GoalListResponse struct {
	Data  []models.Goal `json:"data"`
	Error *string       `json:"error"`
}

// GoalQueryFilter are the query parameters for the goal list.
type GoalQueryFilter struct {
	Archived *bool `form:"archived" example:"false"`
}
