package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", dsn(":memory:"))
	assert.Equal(t, "runs.db?_pragma=foreign_keys(1)", dsn("runs.db"))
	assert.Equal(t, "file:runs.db?mode=rwc&_pragma=foreign_keys(1)", dsn("file:runs.db?mode=rwc"))
}

// TestForeignKeys_EveryConnection checks that connections opened after
// migration also enforce foreign keys.
func TestForeignKeys_EveryConnection(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	s.db.SetMaxOpenConns(3)
	conns := make([]*sql.Conn, 0, 3)
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()
	for i := 0; i < 3; i++ {
		c, err := s.db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, c)

		var on int
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&on))
		assert.Equal(t, 1, on, "connection %d", i)
	}
}
