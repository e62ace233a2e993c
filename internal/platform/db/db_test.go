package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSqliteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	db, err := OpenSqlite(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (id INTEGER)`)
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestOpenSqliteMemory(t *testing.T) {
	db, err := OpenSqlite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT 1`).Scan(&n))
	require.Equal(t, 1, n)
}
