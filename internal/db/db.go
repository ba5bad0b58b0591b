package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// Supported driver names. They double as the migrations subdirectory for each dialect.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// sqliteDriverName is mattn/go-sqlite3 with a Unicode-aware lower() installed on every
// connection. The built-in lower() only folds ASCII, so "Éclair" and "éclair" would
// not compare equal in title lookups.
const sqliteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// Connect opens the database for the given driver and applies pending migrations.
// For sqlite3 the dsn is a file path or a file: URI; for mysql it is a go-sql-driver DSN.
// Migrations are versioned .sql files under internal/db/migrations/<driver> following the pattern:
//
//	0001_name.up.sql / 0001_name.down.sql
//
// Only new migrations are applied. Use RollbackLast to revert the last applied migration.
func Connect(driver, dsn string) (*sql.DB, error) {
	d, dialect, err := dial(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := applyMigrations(d, dialect); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// Dial opens the database like Connect but leaves the schema untouched.
func Dial(driver, dsn string) (*sql.DB, error) {
	d, _, err := dial(driver, dsn)
	return d, err
}

// Open opens (or creates) a local SQLite database file and applies pending migrations.
func Open(path string) (*sql.DB, error) {
	return Connect(DriverSQLite, path)
}

// OpenMySQL opens a MySQL database and applies pending migrations.
func OpenMySQL(dsn string) (*sql.DB, error) {
	return Connect(DriverMySQL, dsn)
}

func dial(driver, dsn string) (*sql.DB, string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite, "sqlite":
		d, err := dialSQLite(dsn)
		return d, DriverSQLite, err
	case DriverMySQL:
		d, err := dialMySQL(dsn)
		return d, DriverMySQL, err
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func dialSQLite(path string) (*sql.DB, error) {
	if path == "" {
		path = "app.db"
	}
	d, err := sql.Open(sqliteDriverName, sqliteDSN(path))
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	return d, nil
}

// sqliteDSN appends per-connection settings. PRAGMAs run through d.Exec only reach one
// pooled connection, so foreign keys and the busy timeout are set on the DSN instead.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// dialMySQL forces ClientFoundRows so that UPDATE reports matched rows, keeping
// RowsAffected semantics identical to SQLite (a rename to the same title still succeeds).
func dialMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	cfg.MultiStatements = true
	cfg.ParseTime = true
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	d := sql.OpenDB(connector)
	d.SetConnMaxLifetime(3 * time.Minute)
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// dialectOf reports which migrations directory applies to d.
func dialectOf(d *sql.DB) (string, error) {
	switch d.Driver().(type) {
	case *sqlite3.SQLiteDriver:
		return DriverSQLite, nil
	case *mysql.MySQLDriver:
		return DriverMySQL, nil
	default:
		return "", fmt.Errorf("unsupported driver %T", d.Driver())
	}
}

// RollbackLast rolls back the most recently applied migration, if its down script exists.
func RollbackLast(d *sql.DB) error {
	if d == nil {
		return errors.New("nil db")
	}
	dialect, err := dialectOf(d)
	if err != nil {
		return err
	}
	if err := ensureMigrationsTable(d, dialect); err != nil {
		return err
	}
	var version int
	err = d.QueryRow(`SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // nothing to rollback
	} else if err != nil {
		return err
	}
	migs, err := loadMigrations(dialect)
	if err != nil {
		return err
	}
	m, ok := migs[version]
	if !ok || m.downFile == "" {
		return fmt.Errorf("no down migration found for version %d", version)
	}
	sqlText, err := migrationsFS.ReadFile(m.downFile)
	if err != nil {
		return err
	}
	return runScript(d, string(sqlText), `DELETE FROM schema_migrations WHERE version = ?`, version)
}

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

type migration struct {
	version  int
	name     string
	upFile   string // path inside embedded FS
	downFile string // path inside embedded FS
}

var migFileRe = regexp.MustCompile(`^([0-9]{4})_(.+)\.(up|down)\.sql$`)

func loadMigrations(dialect string) (map[int]migration, error) {
	entries := map[int]migration{}
	dir := "migrations/" + dialect
	list, err := stdfs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", dialect, err)
	}
	for _, de := range list {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		m := migFileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		verStr, migName, kind := m[1], m[2], m[3]
		var ver int
		if _, err := fmt.Sscanf(verStr, "%04d", &ver); err != nil {
			continue
		}
		item := entries[ver]
		item.version = ver
		item.name = migName
		p := dir + "/" + name
		if kind == "up" {
			item.upFile = p
		} else {
			item.downFile = p
		}
		entries[ver] = item
	}
	return entries, nil
}

func ensureMigrationsTable(d *sql.DB, dialect string) error {
	ddl := `CREATE TABLE IF NOT EXISTS schema_migrations (
        version INTEGER PRIMARY KEY,
        applied_at TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
    )`
	if dialect == DriverMySQL {
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (
        version INT PRIMARY KEY,
        applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`
	}
	_, err := d.Exec(ddl)
	return err
}

func appliedVersions(d *sql.DB, dialect string) (map[int]bool, error) {
	if err := ensureMigrationsTable(d, dialect); err != nil {
		return nil, err
	}
	rows, err := d.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	got := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		got[v] = true
	}
	return got, rows.Err()
}

func applyMigrations(d *sql.DB, dialect string) error {
	migs, err := loadMigrations(dialect)
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		return nil
	}
	applied, err := appliedVersions(d, dialect)
	if err != nil {
		return err
	}
	versions := make([]int, 0, len(migs))
	for v := range migs {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	for _, v := range versions {
		if applied[v] {
			continue
		}
		m := migs[v]
		if strings.TrimSpace(m.upFile) == "" {
			return fmt.Errorf("missing up migration for version %04d", v)
		}
		sqlText, err := migrationsFS.ReadFile(m.upFile)
		if err != nil {
			return err
		}
		if err := runScript(d, string(sqlText), `INSERT INTO schema_migrations(version) VALUES(?)`, v); err != nil {
			return fmt.Errorf("migration %04d failed: %w", v, err)
		}
	}
	return nil
}

// runScript executes a migration script followed by its bookkeeping statement.
// Scripts starting with "-- NO_TX" run as-is; MySQL DDL commits implicitly, so its
// migrations are marked that way.
func runScript(d *sql.DB, text, bookkeeping string, version int) error {
	if strings.HasPrefix(strings.TrimSpace(text), "-- NO_TX") {
		if _, err := d.Exec(text); err != nil {
			return err
		}
		_, err := d.Exec(bookkeeping, version)
		return err
	}
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(text); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(bookkeeping, version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
