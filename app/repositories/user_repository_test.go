package repositories

import (
	"testing"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(email, username string) *models.User {
	return &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$10$testhash",
	}
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerUserRepository(db)

	t.Run("create and get user", func(t *testing.T) {
		user := newTestUser("alice@example.com", "alice")

		err := repo.Create(user)
		assert.NoError(t, err)
		assert.Greater(t, user.ID, 0)
		assert.False(t, user.CreatedAt.IsZero())

		retrieved, err := repo.GetByID(user.ID)
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", retrieved.Email)
		assert.Equal(t, "alice", retrieved.Username)
	})

	t.Run("get by email and username", func(t *testing.T) {
		user := newTestUser("bob@example.com", "bob")
		require.NoError(t, repo.Create(user))

		byEmail, err := repo.GetByEmail("bob@example.com")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byName, err := repo.GetByUsername("bob")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)
	})

	t.Run("lookups are case-insensitive", func(t *testing.T) {
		user := newTestUser("Carol@Example.com", "CarolX")
		require.NoError(t, repo.Create(user))

		byEmail, err := repo.GetByEmail("CAROL@EXAMPLE.COM")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byName, err := repo.GetByUsername("carolx")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		require.NoError(t, repo.Create(newTestUser("dave@example.com", "dave")))

		err := repo.Create(newTestUser("dave@example.com", "dave2"))
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		// The losing create leaves no record behind.
		_, err = repo.GetByUsername("dave2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		require.NoError(t, repo.Create(newTestUser("erin@example.com", "erin")))

		err := repo.Create(newTestUser("erin2@example.com", "erin"))
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("duplicate differing only in case rejected", func(t *testing.T) {
		require.NoError(t, repo.Create(newTestUser("frank@example.com", "frank")))

		err := repo.Create(newTestUser("FRANK@example.com", "franklin"))
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("get missing user", func(t *testing.T) {
		_, err := repo.GetByID(9999)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.GetByEmail("nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepositoryInterleavedRegistration(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerUserRepository(db)

	winner := newTestUser("race@example.com", "racer1")
	loser := newTestUser("race@example.com", "racer2")
	winner.BeforeCreate()
	loser.BeforeCreate()

	// Two registrations for the same email pass the index check before
	// either commits. The second commit fails with a transaction conflict
	// rather than a duplicate error.
	txn1 := db.NewTransaction(true)
	defer txn1.Discard()
	txn2 := db.NewTransaction(true)
	defer txn2.Discard()

	require.NoError(t, repo.createTxn(txn1, winner))
	require.NoError(t, repo.createTxn(txn2, loser))

	require.NoError(t, txn1.Commit())
	assert.ErrorIs(t, txn2.Commit(), badger.ErrConflict)

	// Create retries on that conflict; the fresh attempt sees the winner's
	// index entry and reports the duplicate.
	err := repo.Create(newTestUser("race@example.com", "racer2"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	stored, err := repo.GetByEmail("race@example.com")
	require.NoError(t, err)
	assert.Equal(t, "racer1", stored.Username)
}
