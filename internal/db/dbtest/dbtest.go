// Package dbtest поднимает временную SQLite базу с применёнными миграциями для тестов.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/plumbing-backend/internal/db"
)

// NewSQLite открывает чистую базу во временном каталоге теста.
func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "plumbing.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(ctx, conn))
	return conn
}
