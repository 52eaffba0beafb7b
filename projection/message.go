// Package projection shapes stored chat messages for delivery to polling
// clients. It resolves display names, renders relative timestamps and
// evaluates deletion rights relative to the viewer.
package projection

import (
	"time"

	"xaty/domain"
	"xaty/policy"
)

// MessageView is the wire shape served to chat clients. CreatedAt is a
// pre-formatted relative string ("fa 5 minuts"); rendering is done here,
// not on the client.
type MessageView struct {
	ID            uint64 `json:"id"`
	User          string `json:"user"`
	DisplayName   string `json:"display_name"`
	Message       string `json:"message"`
	CreatedAt     string `json:"created_at"`
	CanDelete     bool   `json:"can_delete"`
	IsHighlighted bool   `json:"is_highlighted"`
}

// NewMessageView projects msg for viewer. CanDelete is relative to the
// viewer, not the original sender.
func NewMessageView(msg domain.ChatMessage, author, viewer domain.Actor, event domain.Event, now time.Time) MessageView {
	return MessageView{
		ID:            msg.ID,
		User:          author.Username,
		DisplayName:   author.ResolvedName(),
		Message:       msg.Text,
		CreatedAt:     TimeSince(msg.CreatedAt, now),
		CanDelete:     policy.CanDelete(viewer, msg, event),
		IsHighlighted: msg.IsHighlighted,
	}
}
