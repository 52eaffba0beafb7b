//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"xaty/domain"
	"xaty/errors"
)

type IMessageRepository interface {
	Append(eventID, authorID uuid.UUID, text string, at time.Time) (domain.ChatMessage, error)
	ListRecent(eventID uuid.UUID, limit int) ([]domain.ChatMessage, error)
	MarkDeleted(id uint64) (domain.ChatMessage, error)
	Get(id uint64) (domain.ChatMessage, error)
}

type MessageRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

// NewMessageRepository reserves the message id sequence.
// Callers must Close the repository to release unused ids.
func NewMessageRepository(db *badger.DB, log *slog.Logger) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte("seq:msg"), 64)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, seq: seq, log: log}, nil
}

func (m *MessageRepository) Close() error {
	return m.seq.Release()
}

type storedMessage struct {
	ID            uint64    `json:"id"`
	EventID       string    `json:"event_id"`
	AuthorID      string    `json:"author_id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
	IsDeleted     bool      `json:"is_deleted"`
	IsHighlighted bool      `json:"is_highlighted"`
}

// primaryKey is formatted as "msg:{event_id}:{timestamp_padded}:{id_padded}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Break ties between same-nanosecond messages by insertion order via the id.
func primaryKey(eventID uuid.UUID, at time.Time, id uint64) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%019d", eventID, at.UnixNano(), id))
}

// indexKey maps a message id back to its primary key for direct lookups.
func indexKey(id uint64) []byte {
	return []byte(fmt.Sprintf("msgid:%019d", id))
}

// Append assigns a fresh monotonic id and persists the message.
// Concurrent appends write distinct keys, so none can be lost or overwritten.
func (m *MessageRepository) Append(eventID, authorID uuid.UUID, text string, at time.Time) (domain.ChatMessage, error) {
	n, err := m.seq.Next()
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("next message id: %w", err)
	}
	msg := domain.ChatMessage{
		ID:        n + 1, // sequences start at 0, ids at 1
		EventID:   eventID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: at.UTC(),
	}

	data, err := json.Marshal(fromChatMessage(msg))
	if err != nil {
		return domain.ChatMessage{}, err
	}

	key := primaryKey(msg.EventID, msg.CreatedAt, msg.ID)
	err = m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(indexKey(msg.ID), key)
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

// ListRecent returns the newest non-deleted messages of the event, capped at
// limit, reordered oldest-first for display. Thanks to the padded key layout a
// reverse prefix scan walks messages newest-first without sorting.
func (m *MessageRepository) ListRecent(eventID uuid.UUID, limit int) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage

	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("msg:%s:", eventID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the last possible key under the prefix.
		seekKey := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				m.log.Debug("message window cap reached", "event_id", eventID, "limit", limit)
				break
			}
			var stored storedMessage
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &stored)
			})
			if err != nil {
				return err
			}
			if stored.IsDeleted {
				continue
			}
			msg, err := toChatMessage(stored)
			if err != nil {
				return err
			}
			messages = append(messages, msg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(messages)
	return messages, nil
}

// Get retrieves a message by id, soft-deleted ones included.
func (m *MessageRepository) Get(id uint64) (domain.ChatMessage, error) {
	var stored storedMessage
	err := m.db.View(func(txn *badger.Txn) error {
		return m.readByID(txn, id, &stored)
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return toChatMessage(stored)
}

// MarkDeleted flips IsDeleted on and returns the updated record. Deleting an
// already-deleted message is a no-op, not an error; the flag never reverts.
func (m *MessageRepository) MarkDeleted(id uint64) (domain.ChatMessage, error) {
	var stored storedMessage
	err := m.db.Update(func(txn *badger.Txn) error {
		if err := m.readByID(txn, id, &stored); err != nil {
			return err
		}
		if stored.IsDeleted {
			return nil
		}
		stored.IsDeleted = true
		data, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		msg, err := toChatMessage(stored)
		if err != nil {
			return err
		}
		return txn.Set(primaryKey(msg.EventID, msg.CreatedAt, msg.ID), data)
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return toChatMessage(stored)
}

// readByID resolves the id index and loads the stored record into out.
func (m *MessageRepository) readByID(txn *badger.Txn, id uint64, out *storedMessage) error {
	item, err := txn.Get(indexKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return errors.ErrMessageNotFound
		}
		return err
	}
	var key []byte
	if err := item.Value(func(v []byte) error {
		key = append([]byte{}, v...)
		return nil
	}); err != nil {
		return err
	}
	item, err = txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return errors.ErrMessageNotFound
		}
		return err
	}
	return item.Value(func(v []byte) error {
		return json.Unmarshal(v, out)
	})
}

func fromChatMessage(msg domain.ChatMessage) storedMessage {
	return storedMessage{
		ID:            msg.ID,
		EventID:       msg.EventID.String(),
		AuthorID:      msg.AuthorID.String(),
		Text:          msg.Text,
		CreatedAt:     msg.CreatedAt,
		IsDeleted:     msg.IsDeleted,
		IsHighlighted: msg.IsHighlighted,
	}
}

func toChatMessage(stored storedMessage) (domain.ChatMessage, error) {
	eventID, err := uuid.Parse(stored.EventID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	authorID, err := uuid.Parse(stored.AuthorID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return domain.ChatMessage{
		ID:            stored.ID,
		EventID:       eventID,
		AuthorID:      authorID,
		Text:          stored.Text,
		CreatedAt:     stored.CreatedAt.UTC(),
		IsDeleted:     stored.IsDeleted,
		IsHighlighted: stored.IsHighlighted,
	}, nil
}
