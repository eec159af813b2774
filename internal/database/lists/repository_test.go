package lists

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, *Repository, func()) {
	t.Helper()

	dbPath := "./test_lists_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.New(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, NewRepository(db.DB), cleanup
}

func createContact(t *testing.T, db *database.Database, name string) *entities.Contact {
	t.Helper()
	contact := &entities.Contact{FirstName: name, TeamID: 1, CreatedBy: 1}
	require.NoError(t, db.DB.Create(contact).Error)
	return contact
}

func TestReplaceContacts(t *testing.T) {
	t.Run("replaces membership, not merges", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		list := &entities.MediaList{Name: "Press", TeamID: 1, CreatedBy: 1}
		require.NoError(t, repo.Create(list))

		old := createContact(t, db, "Old")
		require.NoError(t, repo.ReplaceContacts(list, []entities.Contact{*old}))

		fresh := createContact(t, db, "Fresh")
		require.NoError(t, repo.ReplaceContacts(list, []entities.Contact{*fresh}))

		loaded, err := repo.GetByID(list.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Contacts, 1)
		assert.Equal(t, "Fresh", loaded.Contacts[0].FirstName)

		// The old contact still exists, it just left the list.
		var count int64
		require.NoError(t, db.DB.Model(&entities.Contact{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("replacing with nothing empties the list", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		list := &entities.MediaList{Name: "Press", TeamID: 1, CreatedBy: 1}
		require.NoError(t, repo.Create(list))
		require.NoError(t, repo.ReplaceContacts(list, []entities.Contact{*createContact(t, db, "Only")}))

		require.NoError(t, repo.ReplaceContacts(list, nil))
		assert.Equal(t, int64(0), repo.ContactCount(list))
	})
}

func TestGetByFileID(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	file := &entities.File{OriginalName: "contacts.xlsx", FileName: "stored.xlsx", CreatedBy: 1}
	require.NoError(t, db.DB.Create(file).Error)

	list := &entities.MediaList{Name: "Press", FileID: &file.ID, TeamID: 1, CreatedBy: 1}
	require.NoError(t, repo.Create(list))

	loaded, err := repo.GetByFileID(file.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, loaded.ID)

	_, err = repo.GetByFileID(9999)
	assert.Error(t, err)
}

func TestAddFieldsMapEntry(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	list := &entities.MediaList{Name: "Press", TeamID: 1, CreatedBy: 1}
	require.NoError(t, repo.Create(list))

	entry := &entities.CustomFieldsMap{Name: "Beat", Value: "beat", CustomField: true}
	require.NoError(t, repo.AddFieldsMapEntry(list, entry))
	assert.NotZero(t, entry.ID)

	loaded, err := repo.GetByID(list.ID)
	require.NoError(t, err)
	require.Len(t, loaded.FieldsMap, 1)
	assert.Equal(t, "beat", loaded.FieldsMap[0].Value)
}

func TestListByTeam(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.MediaList{Name: "Mine", TeamID: 1, CreatedBy: 1}))
	require.NoError(t, repo.Create(&entities.MediaList{Name: "Theirs", TeamID: 2, CreatedBy: 2}))
	require.NoError(t, repo.Create(&entities.MediaList{Name: "Gone", TeamID: 1, CreatedBy: 1, IsDeleted: true}))

	lists, total, err := repo.ListByTeam(1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, lists, 1)
	assert.Equal(t, "Mine", lists[0].Name)
}
