package postgres

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

const initMigrationPath = "../../../migrations/001_init.sql"

// The repos hand-write their SQL, so the column names they reference have
// to stay in lockstep with the migration. These checks catch the drift
// that unit tests without a database cannot.
func TestMigrationCoversRepoColumns(t *testing.T) {
	tables := loadTableColumns(t)

	cases := []struct {
		table   string
		columns []string
	}{
		{"users", []string{"id", "email", "password_hash", "display_name", "bio", "avatar_key", "created_at", "updated_at"}},
		{"user_interests", []string{"user_id", "interest", "created_at"}},
		{"matches", []string{"id", "user_a_id", "user_b_id", "user_a_accepted", "user_b_accepted", "score", "is_active", "created_at", "archived_at"}},
		{"match_notes", []string{"id", "match_id", "author_id", "body", "created_at", "updated_at"}},
		{"follows", []string{"follower_id", "followed_id", "created_at"}},
	}

	for _, tc := range cases {
		defined, ok := tables[tc.table]
		if !ok {
			t.Fatalf("migration does not create table %s", tc.table)
		}
		for _, column := range tc.columns {
			if !defined[column] {
				t.Fatalf("table %s is missing column %s referenced by repo SQL", tc.table, column)
			}
		}
	}
}

func loadTableColumns(t *testing.T) map[string]map[string]bool {
	t.Helper()

	data, err := os.ReadFile(initMigrationPath)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}

	tableRe := regexp.MustCompile(`(?s)CREATE TABLE (\w+) \((.*?)\);`)
	columnRe := regexp.MustCompile(`^(\w+)\s`)

	tables := make(map[string]map[string]bool)
	for _, match := range tableRe.FindAllStringSubmatch(string(data), -1) {
		columns := make(map[string]bool)
		for _, line := range strings.Split(match[2], "\n") {
			line = strings.TrimSpace(line)
			cm := columnRe.FindStringSubmatch(line)
			if cm == nil {
				continue
			}
			switch strings.ToUpper(cm[1]) {
			case "PRIMARY", "CONSTRAINT", "UNIQUE", "CHECK", "FOREIGN":
				continue
			}
			columns[cm[1]] = true
		}
		tables[match[1]] = columns
	}
	return tables
}
