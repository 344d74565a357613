package postgres

import (
	"database/sql"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

var (
	ErrDuplicate = crerr.New("postgres: duplicate row")
	ErrMissing   = crerr.New("postgres: row does not exist")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}

// wrapExec marks unique violations so callers can tell them from outages.
func wrapExec(err error, msg string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return crerr.Mark(crerr.Wrap(err, msg), ErrDuplicate)
	}
	return crerr.Wrap(err, msg)
}

// expectRows fails with ErrMissing when a write touched no row.
func expectRows(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return crerr.Wrapf(err, "rows affected %s", what)
	}
	if n == 0 {
		return crerr.Wrapf(ErrMissing, "%s", what)
	}
	return nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
