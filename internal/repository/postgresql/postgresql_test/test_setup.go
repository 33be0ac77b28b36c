package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/mamacare-health/notify-backend-go/internal/pkg/database"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
	testDBErr  error
)

const testSchema = `
CREATE TABLE IF NOT EXISTS recipients (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	full_name TEXT,
	device_tokens JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS appointments (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	patient_id UUID,
	doctor_id UUID,
	doctor_name TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	cancellation_reason TEXT,
	status_updated_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// setupTestDB connects once per test binary and bootstraps the schema.
// Tests are skipped entirely when TEST_DATABASE_URL is not set.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository tests")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
		if testDBErr != nil {
			return
		}
		_, testDBErr = testDB.Exec(context.Background(), testSchema)
	})
	if testDBErr != nil {
		t.Fatal("Failed to set up test database: " + testDBErr.Error())
	}

	return testDB
}

func truncateTables(t *testing.T, ctx context.Context) {
	t.Helper()

	tables := []string{"recipients", "appointments"}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}
