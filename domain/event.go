package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	StatusScheduled EventStatus = "scheduled"
	StatusLive      EventStatus = "live"
	StatusFinished  EventStatus = "finished"
	StatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is one of the four known lifecycle statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Event is a scheduled or live stream session that chat messages are scoped to.
// Its lifecycle is owned by the event management side; the chat core only
// reads Status and CreatorID.
type Event struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Category      string
	CreatorID     uuid.UUID
	Status        EventStatus
	ScheduledDate time.Time
	CreatedAt     time.Time
}

func (e Event) IsLive() bool {
	return e.Status == StatusLive
}
