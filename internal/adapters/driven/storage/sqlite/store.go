package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.GenerationStore = (*Store)(nil)

// Store is a SQLite-backed generation store. Generation records survive
// restarts, so a client can poll a generation started by a previous
// process.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store in the given data directory.
// If dataDir is empty, defaults to ~/.coinmaker/data/generations.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".coinmaker", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "generations.db")

	// WAL mode so status polls do not block progress writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// Create inserts a new generation record.
func (s *Store) Create(g *domain.Generation) error {
	_, err := s.db.Exec(`
		INSERT INTO generations (id, client_key, status, step, progress, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.ClientKey, string(g.Status), g.Step, g.Progress, g.Error, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting generation: %w", err)
	}
	return nil
}

// Get returns a generation by ID.
func (s *Store) Get(id string) (*domain.Generation, error) {
	row := s.db.QueryRow(`
		SELECT id, client_key, status, step, progress, error, created_at, updated_at
		FROM generations WHERE id = ?
	`, id)

	var g domain.Generation
	var status string
	err := row.Scan(&g.ID, &g.ClientKey, &status, &g.Step, &g.Progress, &g.Error, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: generation %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning generation: %w", err)
	}
	g.Status = domain.GenerationStatus(status)
	return &g, nil
}

// Update overwrites an existing record.
func (s *Store) Update(g *domain.Generation) error {
	res, err := s.db.Exec(`
		UPDATE generations
		SET client_key = ?, status = ?, step = ?, progress = ?, error = ?, updated_at = ?
		WHERE id = ?
	`, g.ClientKey, string(g.Status), g.Step, g.Progress, g.Error, g.UpdatedAt, g.ID)
	if err != nil {
		return fmt.Errorf("updating generation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: generation %s", domain.ErrNotFound, g.ID)
	}
	return nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec("DELETE FROM generations WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting generation: %w", err)
	}
	return nil
}
