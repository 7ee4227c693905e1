package repositories

import (
	"time"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSessionRepository implements SessionRepository using BadgerDB.
// Expiry is delegated to Badger's entry TTL, so stale sessions vanish
// without a sweeper.
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

// Put stores the session under its token with the given TTL. An existing
// session with the same token is overwritten, which is how flash messages
// are added and consumed.
func (r *BadgerSessionRepository) Put(session *models.Session, ttl time.Duration) error {
	data, err := marshalEntity(session)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(SessionKeyPrefix+session.Token), data).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

// Get retrieves a session by token. Expired or unknown tokens return
// ErrNotFound.
func (r *BadgerSessionRepository) Get(token string) (*models.Session, error) {
	var session models.Session

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SessionKeyPrefix + token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &session)
		})
	})

	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session by token. Deleting an absent token is not an
// error.
func (r *BadgerSessionRepository) Delete(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(SessionKeyPrefix + token))
	})
}
