package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/audit"
	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/database/files"
	"github.com/newsai/tabulae/internal/database/lists"
	"github.com/newsai/tabulae/internal/entities"
	"github.com/newsai/tabulae/internal/importer"
	"github.com/newsai/tabulae/internal/spreadsheet"
	"github.com/newsai/tabulae/internal/storage"
)

// DefaultMaxUploadBytes caps uploaded spreadsheet size at 10 MiB.
const DefaultMaxUploadBytes = 10 << 20

// FilesController handles spreadsheet upload and the header-mapping import
// flow.
type FilesController struct {
	db             *database.Database
	store          *storage.Store
	auditService   *audit.Service
	maxUploadBytes int64
}

// NewFilesController creates a new files controller.
func NewFilesController(db *database.Database, store *storage.Store, auditService *audit.Service, maxUploadBytes int64) *FilesController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &FilesController{
		db:             db,
		store:          store,
		auditService:   auditService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /api/files. The multipart "file" field carries the
// workbook; an optional "listname" field names the destination media list,
// which is created bound to the upload.
func (fc *FilesController) Upload(c *gin.Context) {
	userID := GetUserID(c)
	teamID := GetTeamID(c)

	upload, header, err := c.Request.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}
	defer upload.Close()

	if header.Size > fc.maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" {
		respondBadRequest(c, "only .xlsx files are supported")
		return
	}

	storageName := fc.store.GenerateName(header.Filename)
	if _, err := fc.store.Save(storageName, upload); err != nil {
		respondInternalError(c, err, "save upload")
		return
	}

	file := &entities.File{
		OriginalName: header.Filename,
		FileName:     storageName,
		ContentType:  header.Header.Get("Content-Type"),
		FileExists:   true,
		CreatedBy:    userID,
	}

	fileRepo := files.NewRepository(fc.db.DB)
	if err := fileRepo.Create(file); err != nil {
		respondInternalError(c, err, "create file record")
		return
	}

	listName := strings.TrimSpace(c.PostForm("listname"))
	if listName == "" {
		listName = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	list := &entities.MediaList{
		Name:      listName,
		FileID:    &file.ID,
		TeamID:    teamID,
		CreatedBy: userID,
	}

	listRepo := lists.NewRepository(fc.db.DB)
	if err := listRepo.Create(list); err != nil {
		respondInternalError(c, err, "create media list")
		return
	}

	if fc.auditService != nil {
		fc.auditService.LogUpload(userID, teamID, file.ID, "Uploaded "+header.Filename, nil)
	}

	respondCreated(c, gin.H{"file": file, "list": list})
}

// List handles GET /api/files.
func (fc *FilesController) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	fileRepo := files.NewRepository(fc.db.DB)
	result, total, err := fileRepo.ListByUser(GetUserID(c), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list files")
		return
	}

	respondPaginated(c, result, total, limit, offset)
}

// Get handles GET /api/files/:id.
func (fc *FilesController) Get(c *gin.Context) {
	file, ok := fc.ownedFile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, file)
}

// GetSheets handles GET /api/files/:id/sheets.
func (fc *FilesController) GetSheets(c *gin.Context) {
	file, ok := fc.ownedFile(c)
	if !ok {
		return
	}

	wb, ok := fc.openWorkbook(c, file)
	if !ok {
		return
	}
	defer wb.Close()

	c.JSON(http.StatusOK, gin.H{"sheets": wb.SheetNames()})
}

// GetHeaders handles GET /api/files/:id/headers. It returns a bounded
// per-column preview of the active sheet for the header-mapping UI.
func (fc *FilesController) GetHeaders(c *gin.Context) {
	file, ok := fc.ownedFile(c)
	if !ok {
		return
	}

	wb, ok := fc.openWorkbook(c, file)
	if !ok {
		return
	}
	defer wb.Close()

	rows, err := wb.ActiveSheetRows()
	if err != nil {
		respondInternalError(c, err, "read sheet rows")
		return
	}

	c.JSON(http.StatusOK, importer.SampleColumns(rows))
}

type headersRequest struct {
	HeaderNames *[]string `json:"headernames"`
	Order       *[]string `json:"order"`
}

// PostHeaders handles POST /api/files/:id/headers. It stores the submitted
// header mapping and runs the import, returning the updated media list.
func (fc *FilesController) PostHeaders(c *gin.Context) {
	userID := GetUserID(c)
	teamID := GetTeamID(c)

	file, ok := fc.ownedFile(c)
	if !ok {
		return
	}

	var req headersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.HeaderNames == nil || req.Order == nil {
		respondBadRequest(c, "headernames and order are required")
		return
	}

	wb, ok := fc.openWorkbook(c, file)
	if !ok {
		return
	}
	defer wb.Close()

	rows, err := wb.ActiveSheetRows()
	if err != nil {
		respondInternalError(c, err, "read sheet rows")
		return
	}

	fileRepo := files.NewRepository(fc.db.DB)
	if err := fileRepo.SaveMapping(file, entities.StringList(*req.HeaderNames), entities.StringList(*req.Order)); err != nil {
		respondInternalError(c, err, "save header mapping")
		return
	}

	listRepo := lists.NewRepository(fc.db.DB)
	list, err := listRepo.GetByFileID(file.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "media list")
			return
		}
		respondInternalError(c, err, "load media list")
		return
	}

	result, err := importer.NewService(fc.db.DB).Run(file, list, rows, userID, teamID)
	if err != nil {
		if fc.auditService != nil {
			fc.auditService.LogImport(userID, teamID, file.ID, "Import of "+file.OriginalName, 0, 0, err)
		}
		if errors.Is(err, importer.ErrHeaderCountMismatch) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "run import")
		return
	}

	if fc.auditService != nil {
		fc.auditService.LogImport(userID, teamID, file.ID, "Import of "+file.OriginalName,
			result.ContactsCreated, result.CustomFieldsSaved, nil)
	}

	updated, err := listRepo.GetByID(list.ID)
	if err != nil {
		respondInternalError(c, err, "reload media list")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ownedFile loads the file from the :id parameter, enforcing that the
// requester uploaded it. Responds with the appropriate error on failure.
func (fc *FilesController) ownedFile(c *gin.Context) (*entities.File, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	fileRepo := files.NewRepository(fc.db.DB)
	file, err := fileRepo.GetOwnedByUser(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "file")
			return nil, false
		}
		respondInternalError(c, err, "load file")
		return nil, false
	}
	return file, true
}

// openWorkbook opens a stored upload as a workbook, mapping unreadable files
// to a 400 response.
func (fc *FilesController) openWorkbook(c *gin.Context, file *entities.File) (*spreadsheet.Workbook, bool) {
	stored, err := fc.store.Open(file.FileName)
	if err != nil {
		respondNotFound(c, "stored file")
		return nil, false
	}
	defer stored.Close()

	wb, err := spreadsheet.Open(stored)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrUnreadableWorkbook) {
			respondBadRequest(c, err.Error())
			return nil, false
		}
		respondInternalError(c, err, "open workbook")
		return nil, false
	}
	return wb, true
}
