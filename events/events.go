package events

import (
	"time"

	"github.com/jrsteele09/go-ticketing-client/internal/utils"
)

// Status is the lifecycle state of an event
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusOngoing   Status = "ONGOING"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
	StatusDone      Status = "DONE"
)

var Statuses = []Status{StatusOpen, StatusOngoing, StatusClosed, StatusCancelled, StatusDone}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type Event struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	StartDate        string    `json:"startDate"`
	EndDate          string    `json:"endDate"`
	Venue            string    `json:"venue"`
	Country          string    `json:"country"`
	City             string    `json:"city"`
	Status           Status    `json:"status"`
	MaxCapacity      int       `json:"maxCapacity"`
	Price            float64   `json:"price"`
	ReservationCount *int      `json:"reservationCount,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// RemainingSeats is capacity minus reservations, never negative
func (e Event) RemainingSeats() int {
	return max(e.MaxCapacity-utils.Value(e.ReservationCount), 0)
}

// Bookable reports whether reservations can still be made
func (e Event) Bookable() bool {
	return e.Status == StatusOpen && e.RemainingSeats() > 0
}

// Input is the body for create and update. A nil Status leaves the backend
// default in place.
type Input struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Venue       string  `json:"venue"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	Status      *Status `json:"status,omitempty"`
	MaxCapacity int     `json:"maxCapacity"`
	Price       float64 `json:"price"`
}

// ListParams filters event listings. Zero fields are left out of the query.
type ListParams struct {
	Status  *Status
	Country string
	City    string
}

// Summary is the trimmed event embedded in other resources
type Summary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

type DeleteResponse struct {
	Message string  `json:"message"`
	Event   Summary `json:"event"`
}
