package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-shift-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// NewTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties every table. Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	require.NoError(t, TruncateAllTables(ctx, db))
	return db
}

// TruncateAllTables removes all rows, children first.
func TruncateAllTables(ctx context.Context, db *database.DB) error {
	_, err := db.Exec(ctx, `
		TRUNCATE TABLE notifications, attendances, leave_requests, shift_schedules, employees
		RESTART IDENTITY CASCADE`)
	return err
}
