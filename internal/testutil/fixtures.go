package testutil

import (
	"database/sql"
	"testing"
)

// SeedAdmission inserts a bare admission record the way the admissions
// workflow would create it, before any payment has been attempted.
func SeedAdmission(t *testing.T, db *sql.DB, id, fullName, email, program string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO admissions (id, full_name, email, program)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		id, fullName, email, program,
	)
	if err != nil {
		t.Fatalf("seed admission %s: %v", id, err)
	}
}
