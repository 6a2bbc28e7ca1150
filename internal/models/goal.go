package models

import (
	"strings"

	"github.com/expensetracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings goal of a user.
type Goal struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"index"`
	User        User            `json:"-"`
	Name        string          `json:"name" example:"New laptop"`
	Note        string          `json:"note" example:"16 inch, 32GB RAM"`
	Target      decimal.Decimal `json:"target" gorm:"type:DECIMAL(20,8)" example:"1800"` // the amount to save
	Saved       decimal.Decimal `json:"saved" gorm:"type:DECIMAL(20,8)" example:"450"`   // the amount saved so far
	TargetMonth types.Month     `json:"targetMonth" example:"2024-11"`
	Archived    bool            `json:"archived" example:"false"`
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	if !g.Target.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	return nil
}
