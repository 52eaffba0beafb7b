// Package policy decides who may moderate chat content.
package policy

import "xaty/domain"

// CanDelete reports whether actor may delete msg within event.
// Deletion is open to the message author, the event creator and staff;
// anonymous visitors can never delete. The predicate is evaluated fresh on
// every attempt since staff and creator status can change between requests.
func CanDelete(actor domain.Actor, msg domain.ChatMessage, event domain.Event) bool {
	if !actor.IsAuthenticated {
		return false
	}
	return actor.ID == msg.AuthorID ||
		actor.ID == event.CreatorID ||
		actor.IsStaff
}
