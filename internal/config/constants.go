package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./tabulae.db"

	// DefaultStorageDir is the default directory for uploaded spreadsheet files
	DefaultStorageDir = "./uploads"
)
