package repo

import (
	"ChefHub/internal/apperr"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// коды ошибок PostgreSQL, https://www.postgresql.org/docs/current/errcodes-appendix.html
const pgUniqueViolation = "23505"

// dbError переводит ошибку БД в классифицированную ошибку apperr.
func dbError(err error) error {
	if err == nil {
		return nil
	}
	if apperr.ErrorCode(err) != "" {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.E(apperr.CodeNotFound, "record not found", err)
	}
	if isUniqueViolation(err) {
		return apperr.E(apperr.CodeConflict, "record already exists", err)
	}
	return apperr.E(apperr.CodeInternal, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
