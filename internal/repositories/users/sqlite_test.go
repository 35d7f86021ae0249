package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edu2job/edu2job-server/internal/database"
)

func TestSQLiteRepository(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	runRepositoryContract(t, NewSQLiteRepository(db))
}
