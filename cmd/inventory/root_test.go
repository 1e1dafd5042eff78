package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("INVENTORY_STORE_DSN", "")
	t.Setenv("INVENTORY_STORE_DRIVER", "")

	var out bytes.Buffer
	err := execute(append([]string{"--db", db}, args...), &out)
	return out.String(), err
}

func TestProductCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "inventory.db")

	out, err := run(t, db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema at version 2")

	out, err = run(t, db, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no products")

	_, err = run(t, db, "product", "add", "--name", "Widget", "--quantity", "10")
	require.NoError(t, err)

	out, err = run(t, db, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget")

	_, err = run(t, db, "product", "update", "1", "--name", "Widget", "--quantity", "4", "--description", "blue")
	require.NoError(t, err)

	out, err = run(t, db, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "quantity: 4")

	_, err = run(t, db, "product", "delete", "1")
	require.NoError(t, err)

	_, err = run(t, db, "product", "delete", "1")
	require.Error(t, err)

	_, err = run(t, db, "product", "delete", "abc")
	require.ErrorContains(t, err, "invalid product ID")
}

func TestProductAddRejectsInvalidInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "inventory.db")

	_, err := run(t, db, "product", "add", "--name", "Widget", "--quantity", "-1")
	require.ErrorContains(t, err, "quantity")
}

func TestUserCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "inventory.db")

	out, err := run(t, db, "user", "register", "--username", "alice", "--email", "alice@x.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "registration successful")

	_, err = run(t, db, "user", "register", "--username", "bob", "--email", "alice@x.com", "--password", "pw")
	require.Error(t, err)

	_, err = run(t, db, "user", "register", "--username", "carol", "--email", "c@x.com", "--password", "pw", "--confirm", "nope")
	require.Error(t, err)

	out, err = run(t, db, "user", "login", "--username", "alice", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "login successful")

	_, err = run(t, db, "user", "login", "--username", "alice", "--password", "wrong")
	require.Error(t, err)
}
