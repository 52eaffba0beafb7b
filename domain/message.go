package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a single chat entry scoped to one event and one author.
// Text and CreatedAt never change after creation; IsDeleted only ever flips
// from false to true (messages are hidden, never physically removed).
type ChatMessage struct {
	ID            uint64
	EventID       uuid.UUID
	AuthorID      uuid.UUID
	Text          string
	CreatedAt     time.Time
	IsDeleted     bool
	IsHighlighted bool
}
