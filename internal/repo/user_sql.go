package repo

import (
	"context"
	"database/sql"
	"errors"
)

// Create registers an account. It reports false, without writing anything,
// when any account already uses the username or the email.
func (s *Store) Create(username, email, password string) bool {
	id, err := s.createUser(username, email, password)
	s.report("create_user", err)
	return err == nil && id > 0
}

func (s *Store) createUser(username, email, password string) (int64, error) {
	exists, err := s.userExists(username, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, &OpError{Op: "create_user", Reason: ReasonDuplicate, Err: ErrDuplicateUser}
	}

	stored, err := s.passwords.encode(password)
	if err != nil {
		return 0, &OpError{Op: "create_user", Reason: ReasonStorage, Err: err}
	}

	query := s.query(`INSERT INTO users (username, email, password) VALUES (?, ?, ?) RETURNING id`)

	var id int64
	err = s.run("create_user", func(ctx context.Context, conn *sql.DB) error {
		return conn.QueryRowContext(ctx, query, username, email, stored).Scan(&id)
	})
	return id, err
}

func (s *Store) userExists(username, email string) (bool, error) {
	query := s.query(`SELECT 1 FROM users WHERE username = ? OR email = ? LIMIT 1`)

	var exists bool
	err := s.run("user_exists", func(ctx context.Context, conn *sql.DB) error {
		var one int
		err := conn.QueryRowContext(ctx, query, username, email).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// Authenticate reports whether an account with exactly this username and
// password exists. An unknown username and a wrong password both yield false.
func (s *Store) Authenticate(username, password string) bool {
	ok, err := s.authenticate(username, password)
	s.report("authenticate", err)
	return err == nil && ok
}

func (s *Store) authenticate(username, password string) (bool, error) {
	query := s.query(`SELECT password FROM users WHERE username = ?`)

	var matched bool
	err := s.run("authenticate", func(ctx context.Context, conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, query, username)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var stored string
			if err := rows.Scan(&stored); err != nil {
				return err
			}
			if s.passwords.matches(stored, password) {
				matched = true
			}
		}
		return rows.Err()
	})
	return matched, err
}
