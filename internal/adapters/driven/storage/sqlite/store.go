package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clipsort/clipsort-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clipsort/clipsort-cli/internal/core/domain"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
)

// Store owns the database connection. The per-port views returned by
// ScreenshotStore, CategoryStore and Maintenance all share it.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the metadata database under
// dataDir and brings its schema up to date. Empty dataDir means
// ~/.clipsort/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".clipsort", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL lets concurrent pipeline runs read while one writes; the
	// busy timeout covers the brief writer-vs-writer window.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
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

// ScreenshotStore returns the screenshot metadata view of this store.
func (s *Store) ScreenshotStore() driven.ScreenshotStore {
	return &screenshotStore{store: s}
}

// CategoryStore returns the category view of this store.
func (s *Store) CategoryStore() driven.CategoryStore {
	return &categoryStore{store: s}
}

// Maintenance returns the housekeeping view of this store.
func (s *Store) Maintenance() driven.StoreMaintenance {
	return &maintenanceStore{store: s}
}

// migrate applies every .up.sql file newer than the recorded schema
// version, in filename order. File names carry the version as a
// numeric prefix: "001_initial.up.sql" is version 1.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	var pending []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			pending = append(pending, entry.Name())
		}
	}
	sort.Strings(pending)

	for _, name := range pending {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(keyword)
}

// ==================== Screenshot Store ====================

// screenshotStore implements driven.ScreenshotStore.
type screenshotStore struct {
	store *Store
}

var _ driven.ScreenshotStore = (*screenshotStore)(nil)

// Save upserts a screenshot record by path.
func (s *screenshotStore) Save(ctx context.Context, path, text, category string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO screenshots (path, text, category, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			text = excluded.text,
			category = excluded.category
	`, path, text, category, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("%w: saving screenshot: %v", domain.ErrOperationFailed, err)
	}
	return nil
}

// UpdateCategory changes the category for path, creating a minimal
// record when none exists.
func (s *screenshotStore) UpdateCategory(ctx context.Context, path, category string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO screenshots (path, text, category, created_at)
		VALUES (?, '', ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			category = excluded.category
	`, path, category, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("%w: updating screenshot category: %v", domain.ErrOperationFailed, err)
	}
	return nil
}

// Get retrieves the record for path.
func (s *screenshotStore) Get(ctx context.Context, path string) (*domain.Screenshot, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT path, text, category, created_at
		FROM screenshots WHERE path = ?
	`, path)

	return scanScreenshotRow(row)
}

// Exists reports whether a record exists for path.
func (s *screenshotStore) Exists(ctx context.Context, path string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM screenshots WHERE path = ?", path).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking screenshot: %w", err)
	}
	return count > 0, nil
}

// Delete removes the record for path.
func (s *screenshotStore) Delete(ctx context.Context, path string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM screenshots WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("%w: deleting screenshot: %v", domain.ErrOperationFailed, err)
	}
	return nil
}

// Search returns records whose text contains keyword, case-insensitively.
func (s *screenshotStore) Search(ctx context.Context, keyword string) ([]domain.Screenshot, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, text, category, created_at
		FROM screenshots
		WHERE LOWER(text) LIKE ? ESCAPE '\'
		ORDER BY created_at DESC
	`, "%"+escapeLike(strings.ToLower(keyword))+"%")
	if err != nil {
		return nil, fmt.Errorf("querying screenshots: %w", err)
	}
	defer rows.Close()

	return scanScreenshots(rows)
}

// ListByCategory returns records filed under category, newest first.
func (s *screenshotStore) ListByCategory(ctx context.Context, category string) ([]domain.Screenshot, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, text, category, created_at
		FROM screenshots
		WHERE category = ?
		ORDER BY created_at DESC
	`, category)
	if err != nil {
		return nil, fmt.Errorf("querying screenshots by category: %w", err)
	}
	defer rows.Close()

	return scanScreenshots(rows)
}

// CleanupInvalid deletes records whose files no longer exist on disk.
func (s *screenshotStore) CleanupInvalid(ctx context.Context) (int, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT path FROM screenshots")
	if err != nil {
		return 0, fmt.Errorf("querying screenshot paths: %w", err)
	}

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning screenshot path: %w", err)
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterating screenshot paths: %w", err)
	}
	rows.Close()

	for _, path := range stale {
		if _, err := s.store.db.ExecContext(ctx, "DELETE FROM screenshots WHERE path = ?", path); err != nil {
			return 0, fmt.Errorf("deleting stale record %s: %w", path, err)
		}
	}
	return len(stale), nil
}

// ==================== Category Store ====================

// categoryStore implements driven.CategoryStore.
type categoryStore struct {
	store *Store
}

var _ driven.CategoryStore = (*categoryStore)(nil)

// Save upserts a category by name, preserving its creation time.
func (s *categoryStore) Save(ctx context.Context, name string, keywords []string) error {
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("marshalling keywords: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO categories (name, keywords, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			keywords = excluded.keywords
	`, name, string(keywordsJSON), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("%w: saving category: %v", domain.ErrOperationFailed, err)
	}
	return nil
}

// UpdateKeywords replaces the keywords for an existing category.
func (s *categoryStore) UpdateKeywords(ctx context.Context, name string, keywords []string) error {
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("marshalling keywords: %w", err)
	}

	res, err := s.store.db.ExecContext(ctx,
		"UPDATE categories SET keywords = ? WHERE name = ?", string(keywordsJSON), name)
	if err != nil {
		return fmt.Errorf("updating category keywords: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the category.
func (s *categoryStore) Delete(ctx context.Context, name string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM categories WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a category by name.
func (s *categoryStore) Get(ctx context.Context, name string) (*domain.Category, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT name, keywords, created_at
		FROM categories WHERE name = ?
	`, name)

	var cat domain.Category
	var keywordsJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&cat.Name, &keywordsJSON, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}

	if err := json.Unmarshal([]byte(keywordsJSON), &cat.Keywords); err != nil {
		return nil, fmt.Errorf("unmarshaling keywords: %w", err)
	}
	if createdAt.Valid {
		cat.CreatedAt = createdAt.Time
	}

	return &cat, nil
}

// List returns all categories, oldest first.
func (s *categoryStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name, keywords, created_at
		FROM categories
		ORDER BY created_at ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// Search returns categories with a keyword containing keyword.
func (s *categoryStore) Search(ctx context.Context, keyword string) ([]domain.Category, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name, keywords, created_at
		FROM categories
		WHERE LOWER(keywords) LIKE ? ESCAPE '\'
		ORDER BY created_at ASC, name ASC
	`, "%"+escapeLike(strings.ToLower(keyword))+"%")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	// The LIKE over the JSON column is a coarse prefilter; match
	// keyword-by-keyword to avoid false hits on JSON syntax.
	coarse, err := scanCategories(rows)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(keyword)
	var matched []domain.Category
	for _, cat := range coarse {
		for _, kw := range cat.Keywords {
			if strings.Contains(strings.ToLower(kw), lowered) {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched, nil
}

// ==================== Maintenance ====================

// maintenanceStore implements driven.StoreMaintenance.
type maintenanceStore struct {
	store *Store
}

var _ driven.StoreMaintenance = (*maintenanceStore)(nil)

// Backup writes a consistent copy of the database to destination.
func (s *maintenanceStore) Backup(ctx context.Context, destination string) error {
	if destination == "" {
		return fmt.Errorf("%w: empty backup destination", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0700); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	// VACUUM INTO produces a complete, compacted copy even mid-write.
	if _, err := s.store.db.ExecContext(ctx, "VACUUM INTO ?", destination); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// PerformMaintenance vacuums and re-analyses the database.
func (s *maintenanceStore) PerformMaintenance(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("vacuuming database: %w", err)
	}
	if _, err := s.store.db.ExecContext(ctx, "ANALYZE"); err != nil {
		return fmt.Errorf("analysing database: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanScreenshotRow scans a single screenshot row.
func scanScreenshotRow(row *sql.Row) (*domain.Screenshot, error) {
	var shot domain.Screenshot
	var createdAt sql.NullTime
	if err := row.Scan(&shot.Path, &shot.Text, &shot.Category, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning screenshot: %w", err)
	}
	if createdAt.Valid {
		shot.CreatedAt = createdAt.Time
	}
	return &shot, nil
}

// scanScreenshots scans multiple screenshot rows.
func scanScreenshots(rows *sql.Rows) ([]domain.Screenshot, error) {
	var shots []domain.Screenshot //nolint:prealloc // size unknown from query
	for rows.Next() {
		var shot domain.Screenshot
		var createdAt sql.NullTime
		if err := rows.Scan(&shot.Path, &shot.Text, &shot.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning screenshot: %w", err)
		}
		if createdAt.Valid {
			shot.CreatedAt = createdAt.Time
		}
		shots = append(shots, shot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating screenshots: %w", err)
	}

	return shots, nil
}

// scanCategories scans multiple category rows.
func scanCategories(rows *sql.Rows) ([]domain.Category, error) {
	var categories []domain.Category //nolint:prealloc // size unknown from query
	for rows.Next() {
		var cat domain.Category
		var keywordsJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&cat.Name, &keywordsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &cat.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshaling keywords: %w", err)
		}
		if createdAt.Valid {
			cat.CreatedAt = createdAt.Time
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}
