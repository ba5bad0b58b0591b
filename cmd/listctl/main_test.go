package main

import (
	"errors"
	"path/filepath"
	"testing"

	"workoutLists/internal/db"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listctl.db")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", path)
	return path
}

func TestRun_Usage(t *testing.T) {
	setupEnv(t)
	for _, args := range [][]string{
		nil,
		{"bogus"},
		{"useradd"},
		{"useradd", "-username", "alice"},
		{"useradd", "-nope"},
	} {
		if err := run(args); !errors.Is(err, errUsage) {
			t.Errorf("run(%q): got %v want usage error", args, err)
		}
	}
}

func TestRun_UserAdd(t *testing.T) {
	path := setupEnv(t)
	if err := run([]string{"useradd", "-username", "alice", "-password", "pw"}); err != nil {
		t.Fatalf("useradd: %v", err)
	}
	err := run([]string{"useradd", "-username", "alice", "-password", "other"})
	if err == nil || errors.Is(err, errUsage) {
		t.Fatalf("duplicate useradd: %v", err)
	}

	d, err := db.Dial(db.DriverSQLite, path)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer d.Close()
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'alice'`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("users=%d err=%v", n, err)
	}
}

func TestRun_RollbackDoesNotMigrate(t *testing.T) {
	path := setupEnv(t)

	// Fresh database: nothing applied, so nothing to roll back and no schema created.
	if err := run([]string{"rollback"}); err != nil {
		t.Fatalf("rollback on empty db: %v", err)
	}
	d, err := db.Dial(db.DriverSQLite, path)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer d.Close()
	if _, err := d.Exec(`SELECT 1 FROM lists`); err == nil {
		t.Fatalf("rollback must not apply migrations")
	}

	if err := run([]string{"useradd", "-username", "bob", "-password", "pw"}); err != nil {
		t.Fatalf("useradd: %v", err)
	}
	if err := run([]string{"rollback"}); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if _, err := d.Exec(`SELECT 1 FROM users`); err == nil {
		t.Fatalf("users table should be dropped")
	}
}
