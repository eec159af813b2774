package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/importer"
	"github.com/newsai/tabulae/internal/storage"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.New(dbPath)
	require.NoError(t, err)

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Database: db,
		Storage:  store,
		Version:  "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

func buildXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func uploadFile(t *testing.T, router *gin.Engine, filename string, content []byte, listName string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	if listName != "" {
		require.NoError(t, writer.WriteField("listname", listName))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type uploadResponse struct {
	File struct {
		ID           uint   `json:"id"`
		OriginalName string `json:"original_name"`
	} `json:"file"`
	List struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"list"`
}

func TestUpload(t *testing.T) {
	t.Run("stores the workbook and binds a list", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		content := buildXLSX(t, [][]any{{"First", "Email"}})
		rec := uploadFile(t, router, "press.xlsx", content, "Launch press")
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp uploadResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "press.xlsx", resp.File.OriginalName)
		assert.Equal(t, "Launch press", resp.List.Name)
	})

	t.Run("list name defaults to the file name", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		content := buildXLSX(t, [][]any{{"First"}})
		rec := uploadFile(t, router, "spring outreach.xlsx", content, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp uploadResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "spring outreach", resp.List.Name)
	})

	t.Run("rejects non-xlsx files", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		rec := uploadFile(t, router, "contacts.csv", []byte("a,b"), "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "only .xlsx files are supported")
	})

	t.Run("rejects a missing file field", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		req := httptest.NewRequest(http.MethodPost, "/api/files", strings.NewReader(""))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetSheets(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	content := buildXLSX(t, [][]any{{"First"}})
	rec := uploadFile(t, router, "press.xlsx", content, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/files/1/sheets", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var sheets struct {
		Sheets []string `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheets))
	assert.Equal(t, []string{"Sheet1"}, sheets.Sheets)
}

func TestGetHeaders(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	content := buildXLSX(t, [][]any{
		{"First", "Email"},
		{"Ann", "ann@example.com"},
	})
	rec := uploadFile(t, router, "press.xlsx", content, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/files/1/headers", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var previews []importer.ColumnPreview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &previews))
	require.Len(t, previews, 2)
	assert.Equal(t, []string{"First", "Ann"}, previews[0].Rows)
	assert.Equal(t, []string{"Email", "ann@example.com"}, previews[1].Rows)
}

func TestPostHeaders(t *testing.T) {
	t.Run("runs the import and returns the list", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		content := buildXLSX(t, [][]any{
			{"First", "Email", "Outlet"},
			{"Ann", "ann@example.com", "Daily Planet"},
			{"Bob", "bob@example.com", "Daily Planet"},
		})
		rec := uploadFile(t, router, "press.xlsx", content, "Press")
		require.Equal(t, http.StatusCreated, rec.Code)

		payload := `{"headernames":["First","Email","Outlet"],"order":["firstname","email","employers"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/files/1/headers", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var list struct {
			Name     string `json:"name"`
			Contacts []struct {
				FirstName string `json:"first_name"`
			} `json:"contacts"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Equal(t, "Press", list.Name)
		require.Len(t, list.Contacts, 2)
		assert.Equal(t, "Ann", list.Contacts[0].FirstName)
	})

	t.Run("header count mismatch is a bad request", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		content := buildXLSX(t, [][]any{
			{"First", "Email"},
			{"Ann", "ann@example.com"},
		})
		rec := uploadFile(t, router, "press.xlsx", content, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		payload := `{"headernames":["First"],"order":["firstname"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/files/1/headers", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Number of headers does not match the ones for the sheet")
	})

	t.Run("both mapping keys are required", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		content := buildXLSX(t, [][]any{{"First"}})
		rec := uploadFile(t, router, "press.xlsx", content, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		req := httptest.NewRequest(http.MethodPost, "/api/files/1/headers", strings.NewReader(`{"headernames":["First"]}`))
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "headernames and order are required")
	})

	t.Run("unknown file is not found", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		req := httptest.NewRequest(http.MethodPost, "/api/files/999/headers", strings.NewReader(`{"headernames":[],"order":[]}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
