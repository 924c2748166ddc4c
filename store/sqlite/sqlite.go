/*
Package sqlite stores rule-table versions in SQLite.

PURPOSE:
  Rule tables change by statute (new INSS/IRRF brackets every year, new
  reason codes). Each version is kept as a JSON document so the service can
  show which tables it knows, which one is active, and start from the same
  table after a restart.

KEY TABLES:
  rule_tables: one row per version
    - version:     unique label, e.g. "2025.1"
    - config_json: the rule-table file (see factory/ruletable.go)
    - active:      at most one row is 1

ACTIVE VERSION:
  Activation runs in one transaction: every row is cleared, then the chosen
  row is set. A partial unique index rejects a second active row.

CONCURRENCY:
  Uses sync.RWMutex around the handle. An ":memory:" database is pinned to a
  single connection, since every new connection would see an empty database.

MIGRATION:
  Schema is auto-migrated on New().

USAGE:
  store, err := sqlite.New("./data/rescisao.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  rec, err := store.ActiveRuleTable(ctx)

SEE ALSO:
  - factory/ruletable.go: config_json format
  - cmd/server/main.go: startup import and seeding
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a rule-table version does not exist.
var ErrNotFound = errors.New("rule table version not found")

// Store keeps rule-table versions in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rule_tables (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version TEXT NOT NULL UNIQUE,
		description TEXT,
		config_json TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		activated_at TEXT
	);

	-- At most one active version
	CREATE UNIQUE INDEX IF NOT EXISTS idx_rule_tables_single_active
		ON rule_tables(active) WHERE active = 1;
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RULE TABLE STORE
// =============================================================================

// RuleTableRecord is a stored rule-table version.
type RuleTableRecord struct {
	ID          int64
	Version     string
	Description string
	ConfigJSON  string
	Active      bool
	CreatedAt   time.Time
	ActivatedAt *time.Time
}

const ruleTableColumns = "id, version, description, config_json, active, created_at, activated_at"

// SaveRuleTable inserts a version, or replaces the config of an existing one.
// The active flag is left alone; use ActivateRuleTable.
func (s *Store) SaveRuleTable(ctx context.Context, rec RuleTableRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Version == "" {
		return fmt.Errorf("rule table version is required")
	}

	query := `
		INSERT INTO rule_tables (version, description, config_json, active, created_at)
		VALUES (?, ?, ?, 0, ?)
		ON CONFLICT(version) DO UPDATE SET
			description = excluded.description,
			config_json = excluded.config_json
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query, rec.Version, rec.Description, rec.ConfigJSON, now)
	return err
}

// ActivateRuleTable makes version the only active one.
func (s *Store) ActivateRuleTable(ctx context.Context, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE rule_tables SET active = 0 WHERE active = 1"); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx,
		"UPDATE rule_tables SET active = 1, activated_at = ? WHERE version = ?",
		now, version,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, version)
	}

	return tx.Commit()
}

// GetRuleTable retrieves a version. It returns nil, nil when absent.
func (s *Store) GetRuleTable(ctx context.Context, version string) (*RuleTableRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryOne(ctx, "SELECT "+ruleTableColumns+" FROM rule_tables WHERE version = ?", version)
}

// ActiveRuleTable retrieves the active version. It returns nil, nil when no
// version is active.
func (s *Store) ActiveRuleTable(ctx context.Context) (*RuleTableRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryOne(ctx, "SELECT "+ruleTableColumns+" FROM rule_tables WHERE active = 1")
}

// ListRuleTables returns every version, newest first.
func (s *Store) ListRuleTables(ctx context.Context) ([]RuleTableRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+ruleTableColumns+" FROM rule_tables ORDER BY id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RuleTableRecord
	for rows.Next() {
		rec, err := scanRuleTable(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) queryOne(ctx context.Context, query string, args ...any) (*RuleTableRecord, error) {
	rec, err := scanRuleTable(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRuleTable(row scanner) (RuleTableRecord, error) {
	var rec RuleTableRecord
	var description, activatedAt sql.NullString
	var createdAt string
	var active int

	if err := row.Scan(&rec.ID, &rec.Version, &description, &rec.ConfigJSON, &active, &createdAt, &activatedAt); err != nil {
		return RuleTableRecord{}, err
	}

	rec.Description = description.String
	rec.Active = active == 1
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if activatedAt.Valid {
		t, err := time.Parse(time.RFC3339, activatedAt.String)
		if err == nil {
			rec.ActivatedAt = &t
		}
	}
	return rec, nil
}
