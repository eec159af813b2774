package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsai/tabulae/internal/entities"
)

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestContactsCreate(t *testing.T) {
	t.Run("creates a contact", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		rec := doJSON(router, http.MethodPost, "/api/contacts",
			`{"first_name":"Ann","email":"ann@example.com"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var contact entities.Contact
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contact))
		assert.NotZero(t, contact.ID)
		assert.Equal(t, "Ann", contact.FirstName)
	})

	t.Run("requires a name or email", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		rec := doJSON(router, http.MethodPost, "/api/contacts", `{"notes":"no identity"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "a name or email is required")
	})
}

func TestContactsGet(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	mine := &entities.Contact{FirstName: "Mine", TeamID: 0}
	require.NoError(t, db.DB.Create(mine).Error)
	theirs := &entities.Contact{FirstName: "Theirs", TeamID: 2}
	require.NoError(t, db.DB.Create(theirs).Error)

	rec := doJSON(router, http.MethodGet, fmt.Sprintf("/api/contacts/%d", mine.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Another team's contact looks like it does not exist.
	rec = doJSON(router, http.MethodGet, fmt.Sprintf("/api/contacts/%d", theirs.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/contacts/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactsList(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.Contact{FirstName: "Mine", TeamID: 0}).Error)
	require.NoError(t, db.DB.Create(&entities.Contact{FirstName: "Theirs", TeamID: 2}).Error)

	rec := doJSON(router, http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []entities.Contact `json:"data"`
		Total int64              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Mine", resp.Data[0].FirstName)
}

func TestContactsUpdate(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	contact := &entities.Contact{FirstName: "Ann", Email: "ann@example.com", TeamID: 0}
	require.NoError(t, db.DB.Create(contact).Error)

	rec := doJSON(router, http.MethodPatch, fmt.Sprintf("/api/contacts/%d", contact.ID),
		`{"first_name":"Anne","location":"Berlin"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated entities.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Anne", updated.FirstName)
	assert.Equal(t, "Berlin", updated.Location)
	// Fields not in the request keep their values.
	assert.Equal(t, "ann@example.com", updated.Email)
}

func TestContactsDelete(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	contact := &entities.Contact{FirstName: "Ann", TeamID: 0}
	require.NoError(t, db.DB.Create(contact).Error)

	rec := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", contact.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Deleted contacts are hidden, not removed.
	rec = doJSON(router, http.MethodGet, fmt.Sprintf("/api/contacts/%d", contact.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Contact{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
