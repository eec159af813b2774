package http

import (
	"github.com/newsai/tabulae/internal/audit"
	"github.com/newsai/tabulae/internal/auth"
	"github.com/newsai/tabulae/internal/config"
	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/storage"
	"github.com/newsai/tabulae/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Storage  *storage.Store

	// Audit trail
	AuditService *audit.Service

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Application info
	Version string

	// Upload limits
	MaxUploadBytes int64
}
