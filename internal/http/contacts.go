package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/database/contacts"
	"github.com/newsai/tabulae/internal/entities"
)

// ContactsController handles contact CRUD endpoints.
type ContactsController struct {
	db *database.Database
}

// NewContactsController creates a new contacts controller.
func NewContactsController(db *database.Database) *ContactsController {
	return &ContactsController{db: db}
}

type contactRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
	LinkedIn    string `json:"linkedin"`
	Twitter     string `json:"twitter"`
	Instagram   string `json:"instagram"`
	Website     string `json:"website"`
	Blog        string `json:"blog"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phone_number"`
}

// List handles GET /api/contacts.
func (cc *ContactsController) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	repo := contacts.NewRepository(cc.db.DB)
	result, total, err := repo.ListByTeam(GetTeamID(c), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list contacts")
		return
	}

	respondPaginated(c, result, total, limit, offset)
}

// Get handles GET /api/contacts/:id.
func (cc *ContactsController) Get(c *gin.Context) {
	contact, ok := cc.teamContact(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Create handles POST /api/contacts.
func (cc *ContactsController) Create(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if strings.TrimSpace(req.FirstName) == "" && strings.TrimSpace(req.LastName) == "" && strings.TrimSpace(req.Email) == "" {
		respondBadRequest(c, "a name or email is required")
		return
	}

	contact := &entities.Contact{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		Notes:       req.Notes,
		LinkedIn:    req.LinkedIn,
		Twitter:     req.Twitter,
		Instagram:   req.Instagram,
		Website:     req.Website,
		Blog:        req.Blog,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		TeamID:      GetTeamID(c),
		CreatedBy:   GetUserID(c),
	}

	repo := contacts.NewRepository(cc.db.DB)
	if err := repo.Create(contact); err != nil {
		respondInternalError(c, err, "create contact")
		return
	}

	respondCreated(c, contact)
}

// Update handles PATCH /api/contacts/:id.
func (cc *ContactsController) Update(c *gin.Context) {
	contact, ok := cc.teamContact(c)
	if !ok {
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.FirstName != "" {
		contact.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		contact.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Email != "" {
		contact.Email = strings.TrimSpace(req.Email)
	}
	if req.Notes != "" {
		contact.Notes = req.Notes
	}
	if req.LinkedIn != "" {
		contact.LinkedIn = req.LinkedIn
	}
	if req.Twitter != "" {
		contact.Twitter = req.Twitter
	}
	if req.Instagram != "" {
		contact.Instagram = req.Instagram
	}
	if req.Website != "" {
		contact.Website = req.Website
	}
	if req.Blog != "" {
		contact.Blog = req.Blog
	}
	if req.Location != "" {
		contact.Location = req.Location
	}
	if req.PhoneNumber != "" {
		contact.PhoneNumber = req.PhoneNumber
	}

	repo := contacts.NewRepository(cc.db.DB)
	if err := repo.Update(contact); err != nil {
		respondInternalError(c, err, "update contact")
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/:id. Contacts are soft-deleted.
func (cc *ContactsController) Delete(c *gin.Context) {
	contact, ok := cc.teamContact(c)
	if !ok {
		return
	}

	repo := contacts.NewRepository(cc.db.DB)
	if err := repo.SoftDelete(contact.ID); err != nil {
		respondInternalError(c, err, "delete contact")
		return
	}

	respondSuccess(c, "contact deleted")
}

// teamContact loads the contact from the :id parameter, enforcing team
// ownership.
func (cc *ContactsController) teamContact(c *gin.Context) (*entities.Contact, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	repo := contacts.NewRepository(cc.db.DB)
	contact, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "contact")
			return nil, false
		}
		respondInternalError(c, err, "load contact")
		return nil, false
	}

	if contact.TeamID != GetTeamID(c) || contact.IsDeleted {
		respondNotFound(c, "contact")
		return nil, false
	}
	return contact, true
}
