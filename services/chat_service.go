//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"xaty/domain"
	"xaty/errors"
	"xaty/moderation"
	"xaty/policy"
	"xaty/projection"
	"xaty/repositories"
)

// DefaultMessageWindow caps the polling payload for active events.
const DefaultMessageWindow = 50

type IChatService interface {
	Send(eventID uuid.UUID, actor domain.Actor, rawText string) (projection.MessageView, error)
	Load(eventID uuid.UUID, viewer domain.Actor) ([]projection.MessageView, error)
	Delete(messageID uint64, actor domain.Actor) error
}

// ChatService orchestrates validation, authorization, persistence and
// read-back for live-event chat. Every operation is a single atomic unit
// against the message store; the polling client is the retry mechanism.
type ChatService struct {
	log      *slog.Logger
	filter   *moderation.Filter
	messages repositories.IMessageRepository
	events   repositories.IEventRepository
	users    repositories.IUserRepository
	window   int
	now      func() time.Time
}

func NewChatService(log *slog.Logger, filter *moderation.Filter,
	messages repositories.IMessageRepository,
	events repositories.IEventRepository,
	users repositories.IUserRepository,
	window *int) *ChatService {
	return &ChatService{
		log:      log,
		filter:   filter,
		messages: messages,
		events:   events,
		users:    users,
		window:   lo.FromPtrOr(window, DefaultMessageWindow),
		now:      time.Now,
	}
}

// Send validates and persists one chat message for a live event and returns
// its delivery-ready projection. The checks run cheapest-first: identity,
// event lookup, liveness, then content filtering; nothing is stored unless
// all of them pass.
func (s *ChatService) Send(eventID uuid.UUID, actor domain.Actor, rawText string) (projection.MessageView, error) {
	if !actor.IsAuthenticated {
		return projection.MessageView{}, errors.ErrUnauthorized
	}

	event, err := s.events.Get(eventID)
	if err != nil {
		return projection.MessageView{}, err
	}
	if !event.IsLive() {
		return projection.MessageView{}, errors.ErrEventNotActive
	}

	text, err := s.filter.Validate(rawText)
	if err != nil {
		return projection.MessageView{}, err
	}

	now := s.now().UTC()
	msg, err := s.messages.Append(eventID, actor.ID, text, now)
	if err != nil {
		return projection.MessageView{}, err
	}

	s.log.Debug("message stored", "event_id", eventID, "message_id", msg.ID, "author", actor.Username)
	return projection.NewMessageView(msg, actor, actor, event, now), nil
}

// Load returns the newest messages of the event, oldest-first, projected for
// the requesting viewer. Read access is not gated on event status; anonymous
// viewers get can_delete=false on every row.
func (s *ChatService) Load(eventID uuid.UUID, viewer domain.Actor) ([]projection.MessageView, error) {
	event, err := s.events.Get(eventID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListRecent(eventID, s.window)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	authors := map[uuid.UUID]domain.Actor{}
	views := make([]projection.MessageView, 0, len(msgs))
	for _, msg := range msgs {
		author, ok := authors[msg.AuthorID]
		if !ok {
			author = s.resolveAuthor(msg.AuthorID)
			authors[msg.AuthorID] = author
		}
		views = append(views, projection.NewMessageView(msg, author, viewer, event, now))
	}
	return views, nil
}

// Delete soft-deletes a message after checking the viewer's rights against
// the message's parent event. Deleting an already-deleted message by an
// authorized actor still succeeds.
func (s *ChatService) Delete(messageID uint64, actor domain.Actor) error {
	msg, err := s.messages.Get(messageID)
	if err != nil {
		return err
	}

	event, err := s.events.Get(msg.EventID)
	if err != nil {
		return err
	}

	if !policy.CanDelete(actor, msg, event) {
		return errors.ErrForbidden
	}

	if _, err := s.messages.MarkDeleted(messageID); err != nil {
		return err
	}
	s.log.Info("message deleted", "message_id", messageID, "by", actor.Username)
	return nil
}

// resolveAuthor looks the author up fresh so renamed accounts show their
// current name. A message whose author record is gone still renders.
func (s *ChatService) resolveAuthor(id uuid.UUID) domain.Actor {
	user, err := s.users.GetByID(id)
	if err != nil {
		s.log.Warn("author lookup failed", "author_id", id, "error", err)
		return domain.Actor{ID: id, Username: "???"}
	}
	return user.Actor()
}
