package postgres

import (
	"database/sql"
	"errors"

	"github.com/apprendrelanguage02-max/Matrix/internal/repository/db"
	"github.com/lib/pq"
)

var (
	ErrDup        = errors.New("record already exists") // Duplicate unique key / Clé unique dupliquée
	ErrNoRecord   = db.ErrNoRecord                      // Re-export from db package
	ErrForeignKey = db.ErrForeignKeyViolation           // Re-export from db package
)

// handleError translates PostgreSQL errors to typed errors / Traduit les erreurs PostgreSQL en erreurs typées
func handleError(err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRecord
		}
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrDup
			case "23503": // foreign_key_violation
				return ErrForeignKey
			}
		}
	}
	return err
}

// requireRow maps zero affected rows to ErrNoRecord, for updates and deletes
// targeting a single ID / Traduit zéro ligne affectée en ErrNoRecord
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return handleError(err)
	}
	if affected == 0 {
		return ErrNoRecord
	}
	return nil
}
