package repositories

import (
	"errors"
	"fmt"
	"strings"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB. Email and
// username uniqueness is enforced by secondary index keys written in the
// same transaction as the user record, so a concurrent duplicate
// registration loses the transaction instead of slipping past a pre-check.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user. Returns ErrDuplicateEmail or
// ErrDuplicateUsername when the respective unique index already holds an
// entry. When two registrations for the same identity interleave, the
// losing commit fails with a transaction conflict; the retry re-runs the
// index check against the winner's committed state and reports the
// duplicate.
func (r *BadgerUserRepository) Create(user *models.User) error {
	user.BeforeCreate()

	err := r.db.Update(func(txn *badger.Txn) error {
		return r.createTxn(txn, user)
	})
	if errors.Is(err, badger.ErrConflict) {
		err = r.db.Update(func(txn *badger.Txn) error {
			return r.createTxn(txn, user)
		})
	}
	return err
}

// createTxn performs the uniqueness checks and writes of Create inside the
// given transaction.
func (r *BadgerUserRepository) createTxn(txn *badger.Txn, user *models.User) error {
	emailKey := []byte(UserEmailIdxPrefix + user.Email)
	if _, err := txn.Get(emailKey); err == nil {
		return ErrDuplicateEmail
	} else if err != badger.ErrKeyNotFound {
		return err
	}

	nameKey := []byte(UserNameIdxPrefix + user.Username)
	if _, err := txn.Get(nameKey); err == nil {
		return ErrDuplicateUsername
	} else if err != badger.ErrKeyNotFound {
		return err
	}

	id, err := getNextID(txn, UserSeqKey)
	if err != nil {
		return err
	}
	user.ID = id

	data, err := marshalEntity(user)
	if err != nil {
		return err
	}

	idBytes := []byte(fmt.Sprintf("%d", user.ID))
	if err := txn.Set(emailKey, idBytes); err != nil {
		return err
	}
	if err := txn.Set(nameKey, idBytes); err != nil {
		return err
	}

	key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, user.ID))
	return txn.Set(key, data)
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getByIndex(UserEmailIdxPrefix, strings.ToLower(strings.TrimSpace(email)))
}

// GetByUsername retrieves a user by username, case-insensitively.
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getByIndex(UserNameIdxPrefix, strings.ToLower(strings.TrimSpace(username)))
}

// getByIndex resolves a unique index entry to its user record.
func (r *BadgerUserRepository) getByIndex(prefix, value string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefix + value))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id int
		err = item.Value(func(val []byte) error {
			_, err := fmt.Sscanf(string(val), "%d", &id)
			return err
		})
		if err != nil {
			return err
		}

		recItem, err := txn.Get([]byte(fmt.Sprintf("%s%d", UserKeyPrefix, id)))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return recItem.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}
