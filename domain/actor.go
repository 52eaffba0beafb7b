package domain

import "github.com/google/uuid"

// Actor is the visitor performing an action, authenticated or not.
// The zero value is the anonymous visitor.
type Actor struct {
	ID              uuid.UUID
	Username        string
	DisplayName     string
	IsAuthenticated bool
	IsStaff         bool
}

// Anonymous is the identity attached to requests without a valid session.
var Anonymous = Actor{}

// ResolvedName returns the name shown next to chat messages:
// the display name when one is set, the username otherwise.
func (a Actor) ResolvedName() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Username
}
