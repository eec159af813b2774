package auth

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsai/tabulae/internal/config"
	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/entities"
)

func setupTestService(t *testing.T) (*Service, func()) {
	t.Helper()

	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.New(dbPath)
	require.NoError(t, err)

	cfg := config.Auth{Mode: config.AuthModeLocal, BcryptCost: bcrypt.MinCost}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewService(db.DB, cfg), cleanup
}

func TestCreateUser(t *testing.T) {
	t.Run("creates user with team and token", func(t *testing.T) {
		svc, cleanup := setupTestService(t)
		defer cleanup()

		user, token, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.NotZero(t, user.TeamID)
		assert.Len(t, token, 64)
		assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
	})

	t.Run("reuses an existing team", func(t *testing.T) {
		svc, cleanup := setupTestService(t)
		defer cleanup()

		first, _, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		require.NoError(t, err)
		second, _, err := svc.CreateUser("bob", "bob@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleMember)
		require.NoError(t, err)

		assert.Equal(t, first.TeamID, second.TeamID)
	})

	t.Run("rejects duplicate username or email", func(t *testing.T) {
		svc, cleanup := setupTestService(t)
		defer cleanup()

		_, _, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		require.NoError(t, err)

		_, _, err = svc.CreateUser("alice", "other@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		assert.ErrorIs(t, err, ErrUserExists)

		_, _, err = svc.CreateUser("other", "alice@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("validates input", func(t *testing.T) {
		svc, cleanup := setupTestService(t)
		defer cleanup()

		_, _, err := svc.CreateUser("", "a@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		assert.ErrorIs(t, err, ErrUsernameRequired)

		_, _, err = svc.CreateUser("alice", "", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, _, err = svc.CreateUser("alice", "a@example.com", "", "Newsroom", entities.UserRoleAdmin)
		assert.ErrorIs(t, err, ErrPasswordRequired)

		_, _, err = svc.CreateUser("alice", "a@example.com", "correct-horse-battery", "", entities.UserRoleAdmin)
		assert.ErrorIs(t, err, ErrTeamRequired)

		_, _, err = svc.CreateUser("a!", "a@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		assert.ErrorIs(t, err, ErrUsernameInvalid)

		_, _, err = svc.CreateUser("alice", "not-an-email", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
		assert.ErrorIs(t, err, ErrEmailInvalid)

		_, _, err = svc.CreateUser("alice", "a@example.com", "correct-horse-battery", "Newsroom", entities.UserRole("superuser"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestAuthenticate(t *testing.T) {
	svc, cleanup := setupTestService(t)
	defer cleanup()

	_, _, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
	require.NoError(t, err)

	user, err := svc.Authenticate("alice", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Authenticate("alice", "wrong-horse-battery")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Authenticate("nobody", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateToken(t *testing.T) {
	svc, cleanup := setupTestService(t)
	defer cleanup()

	created, token, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
	require.NoError(t, err)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.ValidateToken("bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegenerateToken(t *testing.T) {
	svc, cleanup := setupTestService(t)
	defer cleanup()

	created, original, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
	require.NoError(t, err)

	fresh, err := svc.RegenerateToken(created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, original, fresh)

	_, err = svc.ValidateToken(original)
	assert.ErrorIs(t, err, ErrInvalidToken)

	user, err := svc.ValidateToken(fresh)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestHasUsers(t *testing.T) {
	svc, cleanup := setupTestService(t)
	defer cleanup()

	has, err := svc.HasUsers()
	require.NoError(t, err)
	assert.False(t, has)

	_, _, err = svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", "Newsroom", entities.UserRoleAdmin)
	require.NoError(t, err)

	has, err = svc.HasUsers()
	require.NoError(t, err)
	assert.True(t, has)
}
