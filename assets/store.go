// Package assets reads a language's category dump from its SQLite asset
// database and turns it into a category.Graph.
package assets

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teranos/catrim/category"
	"github.com/teranos/catrim/db"
	"github.com/teranos/catrim/errors"
	"github.com/teranos/catrim/logger"
	"github.com/teranos/catrim/progress"
)

// loadBatchSize is how many rows are read between progress updates.
const loadBatchSize = 10000

// Path returns the asset database for language under dir.
func Path(dir, language string) string {
	return filepath.Join(dir, language+"wiki.db")
}

// Stats counts the rows in an asset database.
type Stats struct {
	Categories int `json:"categories"`
	Links      int `json:"links"`
	Titles     int `json:"titles"`
}

// Store reads and writes one language's asset database.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewStore wraps an open, migrated database.
func NewStore(database *sql.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{db: database, logger: log}
}

// Open opens (and migrates) the asset database for language under dir.
func Open(dir, language string, log *zap.SugaredLogger) (*Store, error) {
	path := Path(dir, language)
	database, err := db.OpenWithMigrations(path, log)
	if err != nil {
		return nil, errors.WithHintf(err, "asset database for %q expected at %s", language, path)
	}
	return NewStore(database, log), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutCategory inserts or replaces a category row.
func (s *Store) PutCategory(ctx context.Context, id int64, name string, pageCount int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, page_count) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, page_count = excluded.page_count`,
		id, name, pageCount)
	return errors.Wrapf(err, "put category %d", id)
}

// PutLink records parent -> child.
func (s *Store) PutLink(ctx context.Context, parent, child int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO category_links (parent_id, child_id) VALUES (?, ?)`,
		parent, child)
	return errors.Wrapf(err, "put link %d -> %d", parent, child)
}

// PutTitle maps a canonical title to a category id for language.
func (s *Store) PutTitle(ctx context.Context, language, title string, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO category_titles (language, title, category_id) VALUES (?, ?, ?)
		 ON CONFLICT(language, title) DO UPDATE SET category_id = excluded.category_id`,
		language, title, id)
	return errors.Wrapf(err, "put title %q", title)
}

// ResolveCategory returns the id that title maps to in language.
// Unknown titles yield an error wrapping errors.ErrNotFound.
func (s *Store) ResolveCategory(ctx context.Context, language, title string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT category_id FROM category_titles WHERE language = ? AND title = ?`,
		language, title).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errors.NewNotFoundError("category %q in %s", title, language)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "resolve category %q", title)
	}
	return id, nil
}

// Stats counts rows per table.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	counts := []struct {
		table string
		dst   *int
	}{
		{"categories", &st.Categories},
		{"category_links", &st.Links},
		{"category_titles", &st.Titles},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.table)).Scan(c.dst); err != nil {
			return Stats{}, errors.Wrapf(err, "count %s", c.table)
		}
	}
	return st, nil
}

// Load builds the full category graph. Links whose endpoints are not
// categories are skipped. tracker sees one unit per row read.
func (s *Store) Load(ctx context.Context, tracker progress.Tracker) (*category.Graph, error) {
	if tracker == nil {
		tracker = progress.Nop{}
	}

	st, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	tracker.Start(st.Categories + st.Links)
	defer tracker.Close()

	g := category.New()
	if err := s.loadCategories(ctx, g, tracker); err != nil {
		return nil, err
	}
	skipped, err := s.loadLinks(ctx, g, tracker)
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		s.logger.Warnw("Skipped links to unknown categories", logger.FieldSkipped, skipped)
	}
	s.logger.Infow("Loaded category graph",
		logger.FieldNodes, g.Len(),
		logger.FieldEdges, g.EdgeCount())
	return g, nil
}

func (s *Store) loadCategories(ctx context.Context, g *category.Graph, tracker progress.Tracker) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, page_count FROM categories`)
	if err != nil {
		return errors.Wrap(err, "query categories")
	}
	defer rows.Close()

	batch := 0
	for rows.Next() {
		var (
			id        int64
			name      string
			pageCount sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &pageCount); err != nil {
			return errors.Wrap(err, "scan category")
		}
		g.AddNode(id, name, pageCount.Int64)

		if batch++; batch == loadBatchSize {
			tracker.Update(batch)
			batch = 0
		}
	}
	tracker.Update(batch)
	return errors.Wrap(rows.Err(), "read categories")
}

func (s *Store) loadLinks(ctx context.Context, g *category.Graph, tracker progress.Tracker) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT parent_id, child_id FROM category_links`)
	if err != nil {
		return 0, errors.Wrap(err, "query category links")
	}
	defer rows.Close()

	batch, skipped := 0, 0
	for rows.Next() {
		var parent, child int64
		if err := rows.Scan(&parent, &child); err != nil {
			return 0, errors.Wrap(err, "scan category link")
		}
		if err := g.AddEdge(parent, child); err != nil {
			if !errors.Is(err, category.ErrNodeNotFound) {
				return 0, err
			}
			skipped++
		}

		if batch++; batch == loadBatchSize {
			tracker.Update(batch)
			batch = 0
		}
	}
	tracker.Update(batch)
	return skipped, errors.Wrap(rows.Err(), "read category links")
}
