//go:generate go run go.uber.org/mock/mockgen -source=event.go -destination=../mocks/mock_event_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"xaty/domain"
	"xaty/errors"
)

type IEventRepository interface {
	Create(event domain.Event) error
	Get(id uuid.UUID) (domain.Event, error)
	List() ([]domain.Event, error)
	UpdateStatus(id uuid.UUID, status domain.EventStatus) (domain.Event, error)
}

type EventRepository struct {
	db *badger.DB
}

func NewEventRepository(db *badger.DB) *EventRepository {
	return &EventRepository{db: db}
}

type storedEvent struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	CreatorID     string    `json:"creator_id"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduled_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func eventKey(id uuid.UUID) []byte {
	return []byte("event:" + id.String())
}

func (r *EventRepository) Create(event domain.Event) error {
	data, err := json.Marshal(fromEvent(event))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(eventKey(event.ID), data)
	})
}

func (r *EventRepository) Get(id uuid.UUID) (domain.Event, error) {
	var stored storedEvent
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(eventKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrEventNotFound
			}
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &stored)
		})
	})
	if err != nil {
		return domain.Event{}, err
	}
	return toEvent(stored)
}

// List returns all events, newest first.
func (r *EventRepository) List() ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("event:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var stored storedEvent
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &stored)
			})
			if err != nil {
				return err
			}
			event, err := toEvent(stored)
			if err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *EventRepository) UpdateStatus(id uuid.UUID, status domain.EventStatus) (domain.Event, error) {
	var stored storedEvent
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(eventKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrEventNotFound
			}
			return err
		}
		if err := item.Value(func(v []byte) error {
			return json.Unmarshal(v, &stored)
		}); err != nil {
			return err
		}
		stored.Status = string(status)
		data, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		return txn.Set(eventKey(id), data)
	})
	if err != nil {
		return domain.Event{}, err
	}
	return toEvent(stored)
}

func fromEvent(event domain.Event) storedEvent {
	return storedEvent{
		ID:            event.ID.String(),
		Title:         event.Title,
		Description:   event.Description,
		Category:      event.Category,
		CreatorID:     event.CreatorID.String(),
		Status:        string(event.Status),
		ScheduledDate: event.ScheduledDate,
		CreatedAt:     event.CreatedAt,
	}
}

func toEvent(stored storedEvent) (domain.Event, error) {
	id, err := uuid.Parse(stored.ID)
	if err != nil {
		return domain.Event{}, err
	}
	creatorID, err := uuid.Parse(stored.CreatorID)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		ID:            id,
		Title:         stored.Title,
		Description:   stored.Description,
		Category:      stored.Category,
		CreatorID:     creatorID,
		Status:        domain.EventStatus(stored.Status),
		ScheduledDate: stored.ScheduledDate.UTC(),
		CreatedAt:     stored.CreatedAt.UTC(),
	}, nil
}
