package repo

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-store/internal/config"
	"github.com/rogerio-castellano/inventory-store/internal/db"
	"go.uber.org/zap"
)

// Store is the record store for products and user accounts. It owns at most
// one live database handle, opened on first use. Construct one per process
// and pass it to every caller.
type Store struct {
	cfg       config.StoreConfig
	dialect   db.Dialect
	dsn       string
	passwords passwordScheme
	logger    *zap.Logger

	mu     sync.Mutex
	handle *sql.DB
	opens  int
}

var (
	_ ProductRepository = (*Store)(nil)
	_ UserRepository    = (*Store)(nil)
	_ SummaryRepository = (*Store)(nil)
)

// New returns a Store in the closed state. Nothing is read or written until
// the first operation.
func New(cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	dialect, err := db.DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	passwords, err := schemeFor(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SchemaVersion == 0 {
		cfg.SchemaVersion = SchemaVersion
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 3 * time.Second
	}

	dsn := cfg.Path
	if dialect == db.Pgx {
		dsn = cfg.DSN
	}

	return &Store{
		cfg:       cfg,
		dialect:   dialect,
		dsn:       dsn,
		passwords: passwords,
		logger:    logger.Named("store"),
	}, nil
}

// Open is New followed by an eager first access, so connection and schema
// errors surface immediately.
func Open(cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	s, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if _, err := s.conn(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the handle. A later operation opens a new one.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return nil
	}
	err := s.handle.Close()
	s.handle = nil
	return err
}

// IsOpen reports whether the store currently holds a handle.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// conn returns the live handle, opening and migrating it on first access.
func (s *Store) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		return s.handle, nil
	}

	handle, err := db.Connect(s.dialect.Name, s.dsn)
	if err != nil {
		return nil, &OpError{Op: "open", Reason: ReasonStorage, Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.OpTimeout)
	defer cancel()

	if err := migrate(ctx, handle, s.dialect, s.cfg.SchemaVersion, s.logger); err != nil {
		handle.Close()
		return nil, &OpError{Op: "migrate", Reason: ReasonStorage, Err: err}
	}

	s.handle = handle
	s.opens++
	s.logger.Debug("handle opened", zap.String("driver", s.dialect.Name), zap.Int("opens", s.opens))
	return handle, nil
}

// reopen closes stale (if it is still the current handle) and opens a fresh one.
func (s *Store) reopen(stale *sql.DB) (*sql.DB, error) {
	s.mu.Lock()
	if s.handle == stale && s.handle != nil {
		if err := s.handle.Close(); err != nil {
			s.logger.Debug("closing stale handle", zap.Error(err))
		}
		s.handle = nil
	}
	s.mu.Unlock()

	return s.conn()
}

// run executes fn against the current handle with the configured timeout.
func (s *Store) run(op string, fn func(ctx context.Context, conn *sql.DB) error) error {
	conn, err := s.conn()
	if err != nil {
		return err
	}
	return s.runOn(op, conn, fn)
}

func (s *Store) runOn(op string, conn *sql.DB, fn func(ctx context.Context, conn *sql.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.OpTimeout)
	defer cancel()
	return wrap(op, fn(ctx, conn))
}

// report logs the cause behind a false result.
func (s *Store) report(op string, err error) {
	if err == nil {
		return
	}
	reason := ReasonOf(err)
	switch reason {
	case ReasonNoRows, ReasonDuplicate:
		s.logger.Debug("operation had no effect", zap.String("op", op), zap.Stringer("reason", reason), zap.Error(err))
	default:
		s.logger.Warn("operation failed", zap.String("op", op), zap.Stringer("reason", reason), zap.Error(err))
	}
}

func (s *Store) query(q string) string {
	return s.dialect.Rebind(q)
}
