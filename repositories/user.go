//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"xaty/domain"
	"xaty/errors"
)

type IUserRepository interface {
	CreateUser(username, email, displayName, passwordHash string) (User, error)
	GetByID(id uuid.UUID) (User, error)
	GetByUsername(username string) (User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

// User is the repository-level representation of a registered account.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	DisplayName  string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time
}

// Actor projects the account into the identity the chat core consumes.
func (u User) Actor() domain.Actor {
	return domain.Actor{
		ID:              u.ID,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		IsAuthenticated: true,
		IsStaff:         u.IsStaff,
	}
}

type storedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"password_hash"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
}

func userKey(id uuid.UUID) []byte {
	return []byte("user:" + id.String())
}

func usernameKey(username string) []byte {
	return []byte("username:" + strings.ToLower(username))
}

func emailKey(email string) []byte {
	return []byte("useremail:" + strings.ToLower(email))
}

// CreateUser persists a new account along with its username and email
// indexes. Both indexes are checked inside the same transaction so a
// duplicate registration cannot slip in between check and write.
func (r *UserRepository) CreateUser(username, email, displayName, passwordHash string) (User, error) {
	user := User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(fromUser(user))
	if err != nil {
		return User{}, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(usernameKey(username)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if _, err := txn.Get(emailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		if err := txn.Set(usernameKey(username), []byte(user.ID.String())); err != nil {
			return err
		}
		return txn.Set(emailKey(email), []byte(user.ID.String()))
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (User, error) {
	var stored storedUser
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrUserNotFound
			}
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &stored)
		})
	})
	if err != nil {
		return User{}, err
	}
	return toUser(stored)
}

func (r *UserRepository) GetByUsername(username string) (User, error) {
	var stored storedUser
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrUserNotFound
			}
			return err
		}
		var id []byte
		if err := item.Value(func(v []byte) error {
			id = append([]byte{}, v...)
			return nil
		}); err != nil {
			return err
		}
		userID, err := uuid.Parse(string(id))
		if err != nil {
			return err
		}
		item, err = txn.Get(userKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &stored)
		})
	})
	if err != nil {
		return User{}, err
	}
	return toUser(stored)
}

func fromUser(user User) storedUser {
	return storedUser{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		PasswordHash: user.PasswordHash,
		IsStaff:      user.IsStaff,
		CreatedAt:    user.CreatedAt,
	}
}

func toUser(stored storedUser) (User, error) {
	id, err := uuid.Parse(stored.ID)
	if err != nil {
		return User{}, err
	}
	return User{
		ID:           id,
		Username:     stored.Username,
		Email:        stored.Email,
		DisplayName:  stored.DisplayName,
		PasswordHash: stored.PasswordHash,
		IsStaff:      stored.IsStaff,
		CreatedAt:    stored.CreatedAt.UTC(),
	}, nil
}
