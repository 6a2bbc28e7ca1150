package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// Reminder is a payment the user wants to be reminded of. When Match is
// set, recording a transaction whose purpose matches the glob pattern
// marks the reminder as done.
type Reminder struct {
	DefaultModel
	UserID  uuid.UUID `json:"userId" gorm:"index"`
	User    User      `json:"-"`
	Title   string    `json:"title" example:"Pay rent"`
	DueDate time.Time `json:"dueDate" example:"2024-04-01T00:00:00Z"`
	Match   string    `json:"match" example:"rent*"` // glob pattern matched against transaction purposes, optional
	Done    bool      `json:"done" example:"false"`
}

func (r *Reminder) BeforeSave(_ *gorm.DB) error {
	r.Title = strings.TrimSpace(r.Title)

	if r.Title == "" {
		return ErrReminderTitleEmpty
	}

	if !r.DueDate.IsZero() {
		r.DueDate = r.DueDate.In(time.UTC)
	}

	return nil
}

// Matches reports whether the reminder's pattern matches the purpose.
// Matching is case insensitive, reminders without a pattern never match.
func (r Reminder) Matches(purpose string) bool {
	if r.Match == "" {
		return false
	}

	return glob.Glob(strings.ToLower(r.Match), strings.ToLower(purpose))
}

// CompleteMatchingReminders marks all open reminders of the user whose
// pattern matches the purpose as done. It returns the titles of the
// completed reminders.
func CompleteMatchingReminders(userID uuid.UUID, purpose string) ([]string, error) {
	var reminders []Reminder

	err := DB.Where(&Reminder{UserID: userID}).Where("done = ?", false).Find(&reminders).Error
	if err != nil {
		return nil, err
	}

	var completed []string
	for _, reminder := range reminders {
		if !reminder.Matches(purpose) {
			continue
		}

		err := DB.Model(&reminder).Update("done", true).Error
		if err != nil {
			return completed, err
		}

		completed = append(completed, reminder.Title)
	}

	return completed, nil
}
