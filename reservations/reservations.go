package reservations

import (
	"time"

	"github.com/jrsteele09/go-ticketing-client/events"
	"github.com/jrsteele09/go-ticketing-client/users"
)

type Reservation struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	EventID     int64           `json:"eventId"`
	Price       float64         `json:"price"`
	IsCancelled bool            `json:"isCancelled"`
	IsDeleted   bool            `json:"isDeleted"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	User        *users.Summary  `json:"user,omitempty"`
	Event       *events.Summary `json:"event,omitempty"`
}

type CreateInput struct {
	UserID  int64 `json:"userId"`
	EventID int64 `json:"eventId"`
}

type CancelResponse struct {
	Message     string      `json:"message"`
	Reservation Reservation `json:"reservation"`
}

// ListOptions tunes the reservation listings
type ListOptions struct {
	IncludeCancelled bool
}
