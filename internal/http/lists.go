package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/database/lists"
	"github.com/newsai/tabulae/internal/entities"
)

// ListsController handles media list CRUD endpoints.
type ListsController struct {
	db *database.Database
}

// NewListsController creates a new media lists controller.
func NewListsController(db *database.Database) *ListsController {
	return &ListsController{db: db}
}

type listRequest struct {
	Name       string `json:"name"`
	ClientName string `json:"client_name"`
	PublicList *bool  `json:"public_list"`
	Subscribed *bool  `json:"subscribed"`
}

// List handles GET /api/lists.
func (lc *ListsController) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	repo := lists.NewRepository(lc.db.DB)
	result, total, err := repo.ListByTeam(GetTeamID(c), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list media lists")
		return
	}

	respondPaginated(c, result, total, limit, offset)
}

// Get handles GET /api/lists/:id.
func (lc *ListsController) Get(c *gin.Context) {
	list, ok := lc.teamList(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create handles POST /api/lists.
func (lc *ListsController) Create(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	list := &entities.MediaList{
		Name:       name,
		ClientName: strings.TrimSpace(req.ClientName),
		TeamID:     GetTeamID(c),
		CreatedBy:  GetUserID(c),
	}
	if req.PublicList != nil {
		list.PublicList = *req.PublicList
	}
	if req.Subscribed != nil {
		list.Subscribed = *req.Subscribed
	}

	repo := lists.NewRepository(lc.db.DB)
	if err := repo.Create(list); err != nil {
		respondInternalError(c, err, "create media list")
		return
	}

	respondCreated(c, list)
}

// Update handles PATCH /api/lists/:id.
func (lc *ListsController) Update(c *gin.Context) {
	list, ok := lc.teamList(c)
	if !ok {
		return
	}

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		list.Name = name
	}
	if req.ClientName != "" {
		list.ClientName = strings.TrimSpace(req.ClientName)
	}
	if req.PublicList != nil {
		list.PublicList = *req.PublicList
	}
	if req.Subscribed != nil {
		list.Subscribed = *req.Subscribed
	}

	repo := lists.NewRepository(lc.db.DB)
	if err := repo.Update(list); err != nil {
		respondInternalError(c, err, "update media list")
		return
	}

	c.JSON(http.StatusOK, list)
}

// Archive handles POST /api/lists/:id/archive and its inverse via the
// "archived" body flag (missing flag archives).
func (lc *ListsController) Archive(c *gin.Context) {
	list, ok := lc.teamList(c)
	if !ok {
		return
	}

	var req struct {
		Archived *bool `json:"archived"`
	}
	archived := true
	if err := c.ShouldBindJSON(&req); err == nil && req.Archived != nil {
		archived = *req.Archived
	}

	list.Archived = archived
	repo := lists.NewRepository(lc.db.DB)
	if err := repo.Update(list); err != nil {
		respondInternalError(c, err, "archive media list")
		return
	}

	c.JSON(http.StatusOK, list)
}

// Delete handles DELETE /api/lists/:id. Lists are soft-deleted.
func (lc *ListsController) Delete(c *gin.Context) {
	list, ok := lc.teamList(c)
	if !ok {
		return
	}

	list.IsDeleted = true
	repo := lists.NewRepository(lc.db.DB)
	if err := repo.Update(list); err != nil {
		respondInternalError(c, err, "delete media list")
		return
	}

	respondSuccess(c, "media list deleted")
}

// teamList loads the list from the :id parameter, enforcing team ownership.
func (lc *ListsController) teamList(c *gin.Context) (*entities.MediaList, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	repo := lists.NewRepository(lc.db.DB)
	list, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "media list")
			return nil, false
		}
		respondInternalError(c, err, "load media list")
		return nil, false
	}

	if list.TeamID != GetTeamID(c) || list.IsDeleted {
		respondNotFound(c, "media list")
		return nil, false
	}
	return list, true
}
