package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/database/publications"
)

// PublicationsController handles publication endpoints. Publications are
// shared across teams, so there is no tenancy filter here.
type PublicationsController struct {
	db *database.Database
}

// NewPublicationsController creates a new publications controller.
func NewPublicationsController(db *database.Database) *PublicationsController {
	return &PublicationsController{db: db}
}

// List handles GET /api/publications. An optional "q" query switches to
// name search.
func (pc *PublicationsController) List(c *gin.Context) {
	repo := publications.NewRepository(pc.db.DB)

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		limit, _ := parsePagination(c)
		result, err := repo.Search(q, limit)
		if err != nil {
			respondInternalError(c, err, "search publications")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
		return
	}

	limit, offset := parsePagination(c)
	result, total, err := repo.List(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list publications")
		return
	}

	respondPaginated(c, result, total, limit, offset)
}

// Get handles GET /api/publications/:id.
func (pc *PublicationsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	repo := publications.NewRepository(pc.db.DB)
	pub, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "publication")
			return
		}
		respondInternalError(c, err, "load publication")
		return
	}

	c.JSON(http.StatusOK, pub)
}

type publicationRequest struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Blog      string `json:"blog"`
}

// Create handles POST /api/publications. Creation is get-or-create by name:
// posting an existing name returns the existing publication.
func (pc *PublicationsController) Create(c *gin.Context) {
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	repo := publications.NewRepository(pc.db.DB)
	pub, err := repo.GetOrCreateByName(name, GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "create publication")
		return
	}

	if req.URL != "" || req.LinkedIn != "" || req.Twitter != "" || req.Instagram != "" || req.Blog != "" {
		if req.URL != "" {
			pub.URL = req.URL
		}
		if req.LinkedIn != "" {
			pub.LinkedIn = req.LinkedIn
		}
		if req.Twitter != "" {
			pub.Twitter = req.Twitter
		}
		if req.Instagram != "" {
			pub.Instagram = req.Instagram
		}
		if req.Blog != "" {
			pub.Blog = req.Blog
		}
		if err := pc.db.DB.Save(pub).Error; err != nil {
			respondInternalError(c, err, "update publication")
			return
		}
	}

	respondCreated(c, pub)
}
