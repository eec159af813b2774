package importer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/database/contacts"
	"github.com/newsai/tabulae/internal/database/lists"
	"github.com/newsai/tabulae/internal/entities"
)

func setupImportTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()

	dbPath := "./test_import_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.New(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func setupFileAndList(t *testing.T, db *database.Database, headerNames, order []string) (*entities.File, *entities.MediaList) {
	t.Helper()

	file := &entities.File{
		OriginalName: "contacts.xlsx",
		FileName:     "stored.xlsx",
		HeaderNames:  entities.StringList(headerNames),
		Order:        entities.StringList(order),
		CreatedBy:    1,
	}
	require.NoError(t, db.DB.Create(file).Error)

	list := &entities.MediaList{Name: "Press list", FileID: &file.ID, TeamID: 1, CreatedBy: 1}
	require.NoError(t, db.DB.Create(list).Error)

	return file, list
}

func TestImportRun(t *testing.T) {
	t.Run("imports data rows into the list", func(t *testing.T) {
		db, cleanup := setupImportTestDB(t)
		defer cleanup()

		file, list := setupFileAndList(t,
			db,
			[]string{"First", "Email", "Outlet", "Beat"},
			[]string{"firstname", "email", "employers", "beat"},
		)

		rows := [][]string{
			{"First Name", "Email", "Outlet", "Beat"},
			{"Ann", "ann@example.com", "Daily Planet", "tech"},
			{"Bob", "bob@example.com", "Daily Planet"},
		}

		result, err := NewService(db.DB).Run(file, list, rows, 1, 1)
		require.NoError(t, err)

		assert.Equal(t, 2, result.ContactsCreated)
		assert.Equal(t, 2, result.CustomFieldsSaved)
		assert.Equal(t, 1, result.FieldsMapCreated)
		assert.Equal(t, 4, result.Columns)

		// The header row itself is not imported.
		var contactCount int64
		require.NoError(t, db.DB.Model(&entities.Contact{}).Count(&contactCount).Error)
		assert.Equal(t, int64(2), contactCount)

		updated, err := lists.NewRepository(db.DB).GetByID(list.ID)
		require.NoError(t, err)
		require.Len(t, updated.Contacts, 2)
		require.Len(t, updated.FieldsMap, 1)
		assert.Equal(t, "Beat", updated.FieldsMap[0].Name)
		assert.Equal(t, "beat", updated.FieldsMap[0].Value)
		assert.True(t, updated.FieldsMap[0].CustomField)

		// Both rows name the same outlet, resolved to one publication.
		var pubCount int64
		require.NoError(t, db.DB.Model(&entities.Publication{}).Count(&pubCount).Error)
		assert.Equal(t, int64(1), pubCount)

		// Each contact carries their own custom field value; the trailing
		// empty cell of the second row still yields an empty draft.
		ann, err := contacts.NewRepository(db.DB).GetByID(updated.Contacts[0].ID)
		require.NoError(t, err)
		require.Len(t, ann.CustomFields, 1)
		assert.Equal(t, "tech", ann.CustomFields[0].Value)
		require.Len(t, ann.Employers, 1)
		assert.Equal(t, "Daily Planet", ann.Employers[0].Name)

		bob, err := contacts.NewRepository(db.DB).GetByID(updated.Contacts[1].ID)
		require.NoError(t, err)
		require.Len(t, bob.CustomFields, 1)
		assert.Equal(t, "", bob.CustomFields[0].Value)

		var reloaded entities.File
		require.NoError(t, db.DB.First(&reloaded, file.ID).Error)
		assert.True(t, reloaded.Imported)
	})

	t.Run("replaces prior list membership", func(t *testing.T) {
		db, cleanup := setupImportTestDB(t)
		defer cleanup()

		file, list := setupFileAndList(t, db,
			[]string{"First"},
			[]string{"firstname"},
		)

		old := &entities.Contact{FirstName: "Old", TeamID: 1, CreatedBy: 1}
		require.NoError(t, db.DB.Create(old).Error)
		require.NoError(t, lists.NewRepository(db.DB).ReplaceContacts(list, []entities.Contact{*old}))

		rows := [][]string{
			{"First Name"},
			{"Ann"},
		}

		_, err := NewService(db.DB).Run(file, list, rows, 1, 1)
		require.NoError(t, err)

		updated, err := lists.NewRepository(db.DB).GetByID(list.ID)
		require.NoError(t, err)
		require.Len(t, updated.Contacts, 1)
		assert.Equal(t, "Ann", updated.Contacts[0].FirstName)
	})

	t.Run("two columns with the same token produce two field map rows", func(t *testing.T) {
		db, cleanup := setupImportTestDB(t)
		defer cleanup()

		file, list := setupFileAndList(t, db,
			[]string{"Beat A", "Beat B"},
			[]string{"beat", "beat"},
		)

		rows := [][]string{
			{"Beat A", "Beat B"},
			{"tech", "media"},
		}

		result, err := NewService(db.DB).Run(file, list, rows, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, result.FieldsMapCreated)

		updated, err := lists.NewRepository(db.DB).GetByID(list.ID)
		require.NoError(t, err)
		require.Len(t, updated.FieldsMap, 2)
		assert.Equal(t, "Beat A", updated.FieldsMap[0].Name)
		assert.Equal(t, "Beat B", updated.FieldsMap[1].Name)
	})

	t.Run("ignored columns produce no field map rows", func(t *testing.T) {
		db, cleanup := setupImportTestDB(t)
		defer cleanup()

		file, list := setupFileAndList(t, db,
			[]string{"First", "Junk"},
			[]string{"firstname", IgnoreColumn},
		)

		rows := [][]string{
			{"First Name", "Junk"},
			{"Ann", "zzz"},
		}

		result, err := NewService(db.DB).Run(file, list, rows, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, result.FieldsMapCreated)
		assert.Equal(t, 0, result.CustomFieldsSaved)
	})

	t.Run("header count mismatch persists nothing", func(t *testing.T) {
		db, cleanup := setupImportTestDB(t)
		defer cleanup()

		file, list := setupFileAndList(t, db,
			[]string{"First", "Email"},
			[]string{"firstname", "email"},
		)

		rows := [][]string{
			{"First Name", "Email", "Extra"},
			{"Ann", "ann@example.com", "x"},
		}

		_, err := NewService(db.DB).Run(file, list, rows, 1, 1)
		require.ErrorIs(t, err, ErrHeaderCountMismatch)
		assert.Equal(t, "Number of headers does not match the ones for the sheet", err.Error())

		var contactCount int64
		require.NoError(t, db.DB.Model(&entities.Contact{}).Count(&contactCount).Error)
		assert.Equal(t, int64(0), contactCount)

		var reloaded entities.File
		require.NoError(t, db.DB.First(&reloaded, file.ID).Error)
		assert.False(t, reloaded.Imported)
	})

	t.Run("sheet with only a header row creates no contacts", func(t *testing.T) {
		db, cleanup := setupImportTestDB(t)
		defer cleanup()

		file, list := setupFileAndList(t, db,
			[]string{"First"},
			[]string{"firstname"},
		)

		result, err := NewService(db.DB).Run(file, list, [][]string{{"First Name"}}, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, result.ContactsCreated)

		var reloaded entities.File
		require.NoError(t, db.DB.First(&reloaded, file.ID).Error)
		assert.True(t, reloaded.Imported)
	})
}
