package http

import (
	"github.com/gin-gonic/gin"

	"github.com/newsai/tabulae/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability and
// reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default identity
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Set(auth.ContextKeyTeamID, auth.DefaultTeamID)
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	// Auth endpoints (login/logout/me/token) when local auth is enabled
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	filesController := NewFilesController(cfg.Database, cfg.Storage, cfg.AuditService, cfg.MaxUploadBytes)
	contactsController := NewContactsController(cfg.Database)
	listsController := NewListsController(cfg.Database)
	publicationsController := NewPublicationsController(cfg.Database)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// File upload and import endpoints
	router.POST("/api/files", filesController.Upload)
	router.GET("/api/files", filesController.List)
	router.GET("/api/files/:id", filesController.Get)
	router.GET("/api/files/:id/sheets", filesController.GetSheets)
	router.GET("/api/files/:id/headers", filesController.GetHeaders)
	router.POST("/api/files/:id/headers", filesController.PostHeaders)

	// Contact endpoints
	router.GET("/api/contacts", contactsController.List)
	router.POST("/api/contacts", contactsController.Create)
	router.GET("/api/contacts/:id", contactsController.Get)
	router.PATCH("/api/contacts/:id", contactsController.Update)
	router.DELETE("/api/contacts/:id", contactsController.Delete)

	// Media list endpoints
	router.GET("/api/lists", listsController.List)
	router.POST("/api/lists", listsController.Create)
	router.GET("/api/lists/:id", listsController.Get)
	router.PATCH("/api/lists/:id", listsController.Update)
	router.POST("/api/lists/:id/archive", listsController.Archive)
	router.DELETE("/api/lists/:id", listsController.Delete)

	// Publication endpoints
	router.GET("/api/publications", publicationsController.List)
	router.POST("/api/publications", publicationsController.Create)
	router.GET("/api/publications/:id", publicationsController.Get)

	// Audit trail
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/api/audit/events", auditController.ListEvents)
	}

	return router
}
