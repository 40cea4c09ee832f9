package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Visit represents a single activation of a tree item
type Visit struct {
	ID        int64
	SessionID string
	NodeID    string
	Label     string
	Href      string
	External  bool
	VisitedAt time.Time
}

// Store manages visit log persistence
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the visit log at path.
// ":memory:" gives a private in-memory log.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// In-memory databases are per connection
	db.SetMaxOpenConns(1)

	// Create schema
	_, err = db.Exec(schemaSQL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Add appends a visit. A zero VisitedAt is stamped with the current time.
func (s *Store) Add(v Visit) error {
	if v.VisitedAt.IsZero() {
		v.VisitedAt = s.now()
	}
	_, err := s.db.Exec(`
		INSERT INTO visits
		(session_id, node_id, label, href, external, visited_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.SessionID,
		v.NodeID,
		v.Label,
		v.Href,
		v.External,
		v.VisitedAt.UTC(),
	)
	return err
}

// GetRecent retrieves the most recent visits, newest first
func (s *Store) GetRecent(limit int) ([]Visit, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, node_id, label, href, external, visited_at
		FROM visits
		ORDER BY visited_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanVisits(rows)
}

// Search finds visits whose label or href contains query
func (s *Store) Search(query string, limit int) ([]Visit, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id, session_id, node_id, label, href, external, visited_at
		FROM visits
		WHERE label LIKE ? OR href LIKE ?
		ORDER BY visited_at DESC, id DESC
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanVisits(rows)
}

// CountByNode returns how often each node was visited
func (s *Store) CountByNode() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT node_id, COUNT(*) FROM visits GROUP BY node_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// Prune keeps only the newest maxEntries visits. Zero or less disables pruning.
func (s *Store) Prune(maxEntries int) (int64, error) {
	if maxEntries <= 0 {
		return 0, nil
	}
	res, err := s.db.Exec(`
		DELETE FROM visits
		WHERE id NOT IN (
			SELECT id FROM visits
			ORDER BY visited_at DESC, id DESC
			LIMIT ?
		)`, maxEntries)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanVisits(rows *sql.Rows) ([]Visit, error) {
	var visits []Visit
	for rows.Next() {
		var v Visit
		err := rows.Scan(
			&v.ID,
			&v.SessionID,
			&v.NodeID,
			&v.Label,
			&v.Href,
			&v.External,
			&v.VisitedAt,
		)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
