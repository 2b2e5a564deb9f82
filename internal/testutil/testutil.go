package testutil

import (
	"testing"

	"github.com/quizhub/quizhub/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied,
// going through db.Open so tests exercise the real migration path.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database
}
