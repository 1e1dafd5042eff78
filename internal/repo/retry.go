package repo

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// maxReopenRetries bounds how many times a write is replayed after the
// handle reported itself closed.
const maxReopenRetries = 1

// runWithReopen executes fn like run, but when fn fails because the handle
// was closed underneath it, the handle is reopened and fn replayed, at most
// maxReopenRetries times. Any other failure is returned as is.
func (s *Store) runWithReopen(op string, fn func(ctx context.Context, conn *sql.DB) error) error {
	conn, err := s.conn()
	if err != nil {
		return err
	}

	err = s.runOn(op, conn, fn)
	for attempt := 0; attempt < maxReopenRetries && ReasonOf(err) == ReasonClosedHandle; attempt++ {
		s.logger.Info("handle closed during write, reopening", zap.String("op", op), zap.Int("attempt", attempt+1))

		conn, err = s.reopen(conn)
		if err != nil {
			return err
		}
		err = s.runOn(op, conn, fn)
	}
	return err
}
