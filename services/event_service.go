//go:generate go run go.uber.org/mock/mockgen -source=event_service.go -destination=../mocks/mock_event_service.go -package=mocks
package services

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"xaty/domain"
	"xaty/errors"
	"xaty/repositories"
)

var validateEvent = validator.New()

type IEventService interface {
	Create(actor domain.Actor, cmd CreateEventCommand) (domain.Event, error)
	Get(id uuid.UUID) (domain.Event, error)
	List() ([]domain.Event, error)
	UpdateStatus(id uuid.UUID, actor domain.Actor, status domain.EventStatus) (domain.Event, error)
}

type CreateEventCommand struct {
	Title         string    `validate:"required,max=200"`
	Description   string    `validate:"required"`
	Category      string    `validate:"required,oneof=gaming music talk education sports entertainment technology art other"`
	ScheduledDate time.Time `validate:"required"`
}

// EventService owns the event lifecycle the chat core reads from. New events
// always start scheduled; only the creator or staff may move them through
// live/finished/cancelled.
type EventService struct {
	events repositories.IEventRepository
	now    func() time.Time
}

func NewEventService(events repositories.IEventRepository) *EventService {
	return &EventService{events: events, now: time.Now}
}

func (s *EventService) Create(actor domain.Actor, cmd CreateEventCommand) (domain.Event, error) {
	if !actor.IsAuthenticated {
		return domain.Event{}, errors.ErrUnauthorized
	}
	if err := validateEvent.Struct(cmd); err != nil {
		return domain.Event{}, fmt.Errorf("event validation: %w", err)
	}

	event := domain.Event{
		ID:            uuid.New(),
		Title:         cmd.Title,
		Description:   cmd.Description,
		Category:      cmd.Category,
		CreatorID:     actor.ID,
		Status:        domain.StatusScheduled,
		ScheduledDate: cmd.ScheduledDate.UTC(),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.events.Create(event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) Get(id uuid.UUID) (domain.Event, error) {
	return s.events.Get(id)
}

func (s *EventService) List() ([]domain.Event, error) {
	return s.events.List()
}

func (s *EventService) UpdateStatus(id uuid.UUID, actor domain.Actor, status domain.EventStatus) (domain.Event, error) {
	if !actor.IsAuthenticated {
		return domain.Event{}, errors.ErrUnauthorized
	}
	if !status.Valid() {
		return domain.Event{}, errors.ErrInvalidStatus
	}

	event, err := s.events.Get(id)
	if err != nil {
		return domain.Event{}, err
	}
	if actor.ID != event.CreatorID && !actor.IsStaff {
		return domain.Event{}, errors.ErrForbidden
	}

	return s.events.UpdateStatus(id, status)
}
