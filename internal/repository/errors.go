package repository

import (
	"github.com/apprendrelanguage02-max/Matrix/internal/repository/db"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository/sqlite"
)

// Re-export common errors for backward compatibility and convenience
var (
	// Common database errors from db package
	ErrNoRecord            = db.ErrNoRecord
	ErrForeignKeyViolation = db.ErrForeignKeyViolation

	// SQLite-specific errors from sqlite package
	ErrDup    = sqlite.ErrDup
	ErrBusy   = sqlite.ErrBusy
	ErrLocked = sqlite.ErrLocked
)
