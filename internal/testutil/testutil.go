package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/metadata"

	"workoutLists/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The database is closed via t.Cleanup. name must be unique per test within a package
// because shared-cache memory databases are visible process-wide.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// OpenFileDB opens a SQLite database in a temp dir. Use it when a test writes
// from several goroutines; shared-cache memory databases report table locks
// instead of waiting on the busy timeout.
func OpenFileDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SeedUser inserts a user with a bcrypt hash of password (minimum cost, tests only).
func SeedUser(t *testing.T, d *sql.DB, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, string(hash)); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

// GenerateJWTHS256 returns a signed session token for name valid for one hour.
func GenerateJWTHS256(t *testing.T, secret, name string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"name": name,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// CtxWithBearer returns a context containing gRPC metadata Authorization header with the given token.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(ctx, md)
}
