package refdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Kind names one of the reference lists.
type Kind string

const (
	KindDrivers    Kind = "drivers"
	KindRoutes     Kind = "routes"
	KindInspectors Kind = "inspectors"
)

// Kinds lists every reference list in import order.
var Kinds = []Kind{KindDrivers, KindRoutes, KindInspectors}

// ErrUnknownKind is returned for a list name the store does not hold.
var ErrUnknownKind = errors.New("unknown reference list")

// ParseKind maps a list name to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Store keeps the reference lists and the files they were imported from.
// Every value is a JSON blob under a single key; the last write wins.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the store in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(dir, "refdata.db")

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.dbPath }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveDrivers(ctx context.Context, drivers []Driver) error {
	return saveJSON(ctx, s, string(KindDrivers), drivers)
}

func (s *Store) Drivers(ctx context.Context) ([]Driver, error) {
	return loadJSON[Driver](ctx, s, string(KindDrivers))
}

func (s *Store) SaveRoutes(ctx context.Context, routes []Route) error {
	return saveJSON(ctx, s, string(KindRoutes), routes)
}

func (s *Store) Routes(ctx context.Context) ([]Route, error) {
	return loadJSON[Route](ctx, s, string(KindRoutes))
}

func (s *Store) SaveInspectors(ctx context.Context, inspectors []Inspector) error {
	return saveJSON(ctx, s, string(KindInspectors), inspectors)
}

func (s *Store) Inspectors(ctx context.Context) ([]Inspector, error) {
	return loadJSON[Inspector](ctx, s, string(KindInspectors))
}

// SetSourceFile remembers the file a list is imported from.
func (s *Store) SetSourceFile(ctx context.Context, kind Kind, path string) error {
	return s.put(ctx, sourceKey(kind), path)
}

// SourceFile returns the remembered file for a list, or "" when none is set.
func (s *Store) SourceFile(ctx context.Context, kind Kind) (string, error) {
	v, ok, err := s.get(ctx, sourceKey(kind))
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}

func sourceKey(kind Kind) string { return "file." + string(kind) }

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, true, nil
}

func saveJSON[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	return s.put(ctx, key, string(data))
}

// loadJSON returns an empty list for a key that was never written.
func loadJSON[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	raw, ok, err := s.get(ctx, key)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if !ok {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return items, nil
}
