package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsai/tabulae/internal/audit"
	"github.com/newsai/tabulae/internal/entities"
)

// AuditController exposes the audit trail.
type AuditController struct {
	service *audit.Service
}

// NewAuditController creates a new audit controller.
func NewAuditController(service *audit.Service) *AuditController {
	return &AuditController{service: service}
}

// ListEvents handles GET /api/audit/events. An optional "type" query filters
// by event type.
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit, offset := parsePagination(c)
	teamID := GetTeamID(c)

	var (
		events []entities.AuditEvent
		total  int64
		err    error
	)

	if eventType := c.Query("type"); eventType != "" {
		events, total, err = ac.service.GetEventsByType(entities.AuditEventType(eventType), teamID, limit, offset)
	} else {
		events, total, err = ac.service.GetEvents(teamID, limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	})
}
