package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"xaty/domain"
	"xaty/errors"
	"xaty/mocks"
	"xaty/moderation"
	"xaty/repositories"
)

func newTestFilter(t *testing.T) *moderation.Filter {
	t.Helper()
	filter, err := moderation.NewFilter([]string{"puta", "idiota", "merda"}, moderation.MaxMessageLength)
	require.NoError(t, err)
	return filter
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestChatService_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockIMessageRepository(ctrl)
	events := mocks.NewMockIEventRepository(ctrl)
	users := mocks.NewMockIUserRepository(ctrl)

	svc := NewChatService(slog.Default(), newTestFilter(t), messages, events, users, nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	eventID := uuid.New()
	actor := domain.Actor{ID: uuid.New(), Username: "alice", DisplayName: "Alícia", IsAuthenticated: true}
	liveEvent := domain.Event{ID: eventID, CreatorID: uuid.New(), Status: domain.StatusLive}

	t.Run("unauthenticated actor is refused before any lookup", func(t *testing.T) {
		req := require.New(t)
		events.EXPECT().Get(gomock.Any()).Times(0)
		messages.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Send(eventID, domain.Anonymous, "hola")
		req.ErrorIs(err, errors.ErrUnauthorized)
	})

	t.Run("unknown event is reported as not found", func(t *testing.T) {
		req := require.New(t)
		events.EXPECT().Get(eventID).Return(domain.Event{}, errors.ErrEventNotFound)

		_, err := svc.Send(eventID, actor, "hola")
		req.ErrorIs(err, errors.ErrEventNotFound)
	})

	t.Run("scheduled event refuses sends and stores nothing", func(t *testing.T) {
		req := require.New(t)
		scheduled := liveEvent
		scheduled.Status = domain.StatusScheduled
		events.EXPECT().Get(eventID).Return(scheduled, nil)
		messages.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Send(eventID, actor, "hola")
		req.ErrorIs(err, errors.ErrEventNotActive)
	})

	t.Run("rejected content stores nothing", func(t *testing.T) {
		req := require.New(t)
		events.EXPECT().Get(eventID).Return(liveEvent, nil)
		messages.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Send(eventID, actor, "   ")
		var rejection *moderation.RejectionError
		req.ErrorAs(err, &rejection)
		req.Equal(moderation.Empty, rejection.Reason)
	})

	t.Run("valid message is trimmed, stored and projected for the sender", func(t *testing.T) {
		req := require.New(t)
		events.EXPECT().Get(eventID).Return(liveEvent, nil)
		messages.EXPECT().
			Append(eventID, actor.ID, "bon directe", now).
			Return(domain.ChatMessage{
				ID:        1,
				EventID:   eventID,
				AuthorID:  actor.ID,
				Text:      "bon directe",
				CreatedAt: now,
			}, nil)

		view, err := svc.Send(eventID, actor, "  bon directe  ")
		req.NoError(err)
		req.Equal(uint64(1), view.ID)
		req.Equal("alice", view.User)
		req.Equal("Alícia", view.DisplayName)
		req.Equal("bon directe", view.Message)
		req.Equal("fa 0 minuts", view.CreatedAt)
		req.True(view.CanDelete) // the sender may always delete its own message
	})
}

func TestChatService_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockIMessageRepository(ctrl)
	events := mocks.NewMockIEventRepository(ctrl)
	users := mocks.NewMockIUserRepository(ctrl)

	svc := NewChatService(slog.Default(), newTestFilter(t), messages, events, users, nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	eventID := uuid.New()
	creatorID := uuid.New()
	authorID := uuid.New()
	event := domain.Event{ID: eventID, CreatorID: creatorID, Status: domain.StatusFinished}

	t.Run("unknown event returns not found, not an empty list", func(t *testing.T) {
		req := require.New(t)
		events.EXPECT().Get(eventID).Return(domain.Event{}, errors.ErrEventNotFound)

		_, err := svc.Load(eventID, domain.Anonymous)
		req.ErrorIs(err, errors.ErrEventNotFound)
	})

	t.Run("messages are projected for the viewer with the default window", func(t *testing.T) {
		req := require.New(t)
		events.EXPECT().Get(eventID).Return(event, nil)
		messages.EXPECT().ListRecent(eventID, DefaultMessageWindow).Return([]domain.ChatMessage{
			{ID: 1, EventID: eventID, AuthorID: authorID, Text: "primer", CreatedAt: now.Add(-2 * time.Minute)},
			{ID: 2, EventID: eventID, AuthorID: authorID, Text: "segon", CreatedAt: now.Add(-time.Minute)},
		}, nil)
		// The author is resolved once and cached for the request.
		users.EXPECT().GetByID(authorID).Return(repositories.User{
			ID:       authorID,
			Username: "alice",
		}, nil).Times(1)

		// The event creator moderates every message.
		viewer := domain.Actor{ID: creatorID, Username: "carol", IsAuthenticated: true}
		views, err := svc.Load(eventID, viewer)
		req.NoError(err)
		req.Len(views, 2)
		req.Equal("primer", views[0].Message)
		req.Equal("fa 2 minuts", views[0].CreatedAt)
		req.True(views[0].CanDelete)
		req.True(views[1].CanDelete)
	})

	t.Run("read access is open and anonymous viewers cannot delete", func(t *testing.T) {
		req := require.New(t)
		events.EXPECT().Get(eventID).Return(event, nil)
		messages.EXPECT().ListRecent(eventID, DefaultMessageWindow).Return([]domain.ChatMessage{
			{ID: 1, EventID: eventID, AuthorID: authorID, Text: "primer", CreatedAt: now.Add(-time.Minute)},
		}, nil)
		users.EXPECT().GetByID(authorID).Return(repositories.User{ID: authorID, Username: "alice"}, nil)

		views, err := svc.Load(eventID, domain.Anonymous)
		req.NoError(err)
		req.Len(views, 1)
		req.False(views[0].CanDelete)
	})
}

func TestChatService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockIMessageRepository(ctrl)
	events := mocks.NewMockIEventRepository(ctrl)
	users := mocks.NewMockIUserRepository(ctrl)

	svc := NewChatService(slog.Default(), newTestFilter(t), messages, events, users, nil)

	eventID := uuid.New()
	authorID := uuid.New()
	event := domain.Event{ID: eventID, CreatorID: uuid.New(), Status: domain.StatusLive}
	msg := domain.ChatMessage{ID: 9, EventID: eventID, AuthorID: authorID, Text: "hola"}

	t.Run("unknown message", func(t *testing.T) {
		req := require.New(t)
		messages.EXPECT().Get(uint64(404)).Return(domain.ChatMessage{}, errors.ErrMessageNotFound)

		err := svc.Delete(404, domain.Actor{ID: authorID, IsAuthenticated: true})
		req.ErrorIs(err, errors.ErrMessageNotFound)
	})

	t.Run("unrelated actor is forbidden and nothing is flipped", func(t *testing.T) {
		req := require.New(t)
		messages.EXPECT().Get(msg.ID).Return(msg, nil)
		events.EXPECT().Get(eventID).Return(event, nil)
		messages.EXPECT().MarkDeleted(gomock.Any()).Times(0)

		err := svc.Delete(msg.ID, domain.Actor{ID: uuid.New(), Username: "bob", IsAuthenticated: true})
		req.ErrorIs(err, errors.ErrForbidden)
	})

	t.Run("author delete succeeds and repeats succeed too", func(t *testing.T) {
		req := require.New(t)
		actor := domain.Actor{ID: authorID, Username: "alice", IsAuthenticated: true}

		deletedMsg := msg
		deletedMsg.IsDeleted = true
		messages.EXPECT().Get(msg.ID).Return(msg, nil).Times(2)
		events.EXPECT().Get(eventID).Return(event, nil).Times(2)
		messages.EXPECT().MarkDeleted(msg.ID).Return(deletedMsg, nil).Times(2)

		req.NoError(svc.Delete(msg.ID, actor))
		req.NoError(svc.Delete(msg.ID, actor))
	})
}
