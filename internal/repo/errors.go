package repo

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrProductNotFound is returned when an update or delete matches no product row.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicateUser is returned when an account with the same username or
// email already exists. Which of the two collided is not reported.
var ErrDuplicateUser = errors.New("username or email already registered")

// ErrSchemaTooNew is returned when the stored schema version is newer than
// the one this build knows how to create.
var ErrSchemaTooNew = errors.New("schema version is newer than supported")

// Reason classifies why a store operation failed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonClosedHandle
	ReasonConstraint
	ReasonDuplicate
	ReasonNoRows
	ReasonStorage
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonClosedHandle:
		return "closed_handle"
	case ReasonConstraint:
		return "constraint"
	case ReasonDuplicate:
		return "duplicate"
	case ReasonNoRows:
		return "no_rows"
	case ReasonStorage:
		return "storage"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// OpError is the failure cause behind a boolean store result.
type OpError struct {
	Op     string
	Reason Reason
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ReasonOf reports the Reason carried by err, or ReasonNone for nil.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Reason
	}
	return classify(err)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Op: op, Reason: classify(err), Err: err}
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return ReasonNoRows
	case errors.Is(err, ErrDuplicateUser):
		return ReasonDuplicate
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code&0xff == sqlite3.SQLITE_CONSTRAINT {
			if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
				strings.Contains(liteErr.Error(), "UNIQUE constraint failed") {
				return ReasonDuplicate
			}
			return ReasonConstraint
		}
		return ReasonStorage
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ReasonDuplicate
		}
		if strings.HasPrefix(pgErr.Code, "23") {
			return ReasonConstraint
		}
		return ReasonStorage
	}

	if isClosedHandle(err) {
		return ReasonClosedHandle
	}
	return ReasonStorage
}

// errDBClosedText is the message of database/sql's unexported errDBClosed.
const errDBClosedText = "sql: database is closed"

// isClosedHandle reports whether err means the handle itself is unusable, as
// opposed to a statement failing on a live handle.
func isClosedHandle(err error) bool {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	return strings.Contains(err.Error(), errDBClosedText)
}
