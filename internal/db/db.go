package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var ErrUnsupportedDriver = errors.New("unsupported driver")

// sqliteParams is appended to every sqlite DSN. modernc.org/sqlite runs each
// _pragma on every new pooled connection, not just the first one.
const sqliteParams = "_pragma=busy_timeout(5000)&_txlock=immediate"

const sqliteWAL = "&_pragma=journal_mode(WAL)"

// Dialect captures the SQL differences between the supported engines.
type Dialect struct {
	Name       string
	IDColumn   string
	positional bool
}

var (
	SQLite = Dialect{Name: "sqlite", IDColumn: "INTEGER PRIMARY KEY AUTOINCREMENT"}
	Pgx    = Dialect{Name: "pgx", IDColumn: "BIGSERIAL PRIMARY KEY", positional: true}
)

// DialectFor returns the dialect registered for driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case SQLite.Name:
		return SQLite, nil
	case Pgx.Name:
		return Pgx, nil
	default:
		return Dialect{}, fmt.Errorf("%w %q (supported: sqlite, pgx)", ErrUnsupportedDriver, driver)
	}
}

// Rebind rewrites '?' placeholders into the form the dialect expects.
func (d Dialect) Rebind(query string) string {
	if !d.positional {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 1
	for _, r := range query {
		if r == '?' {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Connect opens a handle for driver and verifies it is reachable. For sqlite,
// dsn is a file path (parent directories are created) or ":memory:".
func Connect(driver, dsn string) (*sql.DB, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	if dialect == SQLite && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	source := dsn
	if dialect == SQLite {
		source = sqliteDSN(dsn)
	}

	db, err := sql.Open(dialect.Name, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// :memory: databases are per connection; pin the pool to one.
	if dialect == SQLite && dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path + "?" + sqliteParams
	}
	return path + "?" + sqliteParams + sqliteWAL
}
