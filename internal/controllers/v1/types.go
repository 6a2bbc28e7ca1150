package v1

import (
	"time"

	"github.com/expensetracker/backend/internal/stream"
	"github.com/expensetracker/backend/internal/uuid"
)

// Controller carries the capabilities that handlers need besides the
// database connection.
type Controller struct {
	JWTSecret string
	TokenTTL  time.Duration
	Hub       *stream.Hub
}

// URIID is used to bind the ID from the URI.
type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"`
}

// Pagination contains information about the pagination for list endpoint responses.
type Pagination struct {
	Count  int  `json:"count" example:"25"`
	Offset uint `json:"offset" example:"50"`
	Limit  int  `json:"limit" example:"25"`
	Total  int  `json:"total" example:"827"`
}
