package arxiv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"
)

// DefaultLedgerCacheSize is the number of stamps kept in memory by a Ledger.
const DefaultLedgerCacheSize = 4096

// Ledger is a local SQLite record of parsed stamps, keyed by the unversioned
// identifier. Rows hold canonical strings and are re-parsed on read.
// A Ledger is safe for concurrent use.
type Ledger struct {
	path  string
	db    *sql.DB
	cache *lru.Cache[ID, Stamp]
}

// OpenLedger opens or creates a ledger database at path. cacheSize bounds the
// in-memory lookup cache; zero or less selects DefaultLedgerCacheSize.
func OpenLedger(path string, cacheSize int) (*Ledger, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultLedgerCacheSize
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	cache, err := lru.New[ID, Stamp](cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache: %w", err)
	}

	l := &Ledger{path: path, db: db, cache: cache}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return l, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Path returns the database path.
func (l *Ledger) Path() string {
	return l.path
}

func (l *Ledger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS stamps (
		id          TEXT PRIMARY KEY,
		version     INTEGER NOT NULL,
		archive     TEXT NOT NULL DEFAULT '',
		grp         TEXT NOT NULL DEFAULT '',
		submitted   TEXT NOT NULL,
		stamp       TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stamps_archive ON stamps(archive);
	CREATE INDEX IF NOT EXISTS idx_stamps_grp ON stamps(grp);
	CREATE INDEX IF NOT EXISTS idx_stamps_submitted ON stamps(submitted DESC);
	`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Record stores s, replacing any stamp recorded for the same article.
func (l *Ledger) Record(ctx context.Context, s Stamp) error {
	key := s.ID().WithoutVersion()

	var archive, group string
	if c, ok := s.Category(); ok {
		archive = c.Archive().String()
		group = c.Group().String()
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO stamps (id, version, archive, grp, submitted, stamp, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		key.String(),
		s.ID().Version,
		archive,
		group,
		s.Submitted().String(),
		s.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", key, err)
	}
	l.cache.Add(key, s)
	return nil
}

// RecordLine parses a stamp line and records it.
func (l *Ledger) RecordLine(ctx context.Context, line string) (Stamp, error) {
	s, err := ParseStamp(strings.TrimSpace(line))
	if err != nil {
		return Stamp{}, err
	}
	if err := l.Record(ctx, s); err != nil {
		return Stamp{}, err
	}
	return s, nil
}

// Lookup returns the stamp recorded for id. The version of id is ignored.
func (l *Ledger) Lookup(ctx context.Context, id ID) (Stamp, error) {
	key := id.WithoutVersion()
	if s, ok := l.cache.Get(key); ok {
		return s, nil
	}

	var line string
	err := l.db.QueryRowContext(ctx, "SELECT stamp FROM stamps WHERE id = ?", key.String()).Scan(&line)
	if errors.Is(err, sql.ErrNoRows) {
		return Stamp{}, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return Stamp{}, fmt.Errorf("lookup %s: %w", key, err)
	}

	s, err := ParseStamp(line)
	if err != nil {
		return Stamp{}, fmt.Errorf("decode %s: %w", key, err)
	}
	l.cache.Add(key, s)
	return s, nil
}

// Delete removes the stamp recorded for id.
func (l *Ledger) Delete(ctx context.Context, id ID) error {
	key := id.WithoutVersion()
	res, err := l.db.ExecContext(ctx, "DELETE FROM stamps WHERE id = ?", key.String())
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	l.cache.Remove(key)
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return nil
}

// ListOptions filters and pages ledger listings. Zero values mean no filter.
type ListOptions struct {
	Archive Archive
	Group   Group
	Limit   int
	Offset  int
}

// List returns recorded stamps, most recently submitted first.
func (l *Ledger) List(ctx context.Context, opts ListOptions) ([]Stamp, error) {
	query := "SELECT stamp FROM stamps"
	var (
		where []string
		args  []any
	)
	if opts.Archive.Valid() {
		where = append(where, "archive = ?")
		args = append(args, opts.Archive.String())
	}
	if opts.Group.Valid() {
		where = append(where, "grp = ?")
		args = append(args, opts.Group.String())
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY submitted DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stamps: %w", err)
	}
	defer rows.Close()

	var out []Stamp
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		s, err := ParseStamp(line)
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", line, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LedgerStats summarizes the contents of a ledger.
type LedgerStats struct {
	Total        int64
	WithCategory int64
	ByGroup      map[Group]int64
}

// Stats returns ledger statistics.
func (l *Ledger) Stats(ctx context.Context) (*LedgerStats, error) {
	stats := &LedgerStats{ByGroup: make(map[Group]int64)}

	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stamps").Scan(&stats.Total); err != nil {
		return nil, err
	}

	rows, err := l.db.QueryContext(ctx, "SELECT grp, COUNT(*) FROM stamps WHERE grp != '' GROUP BY grp")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code string
			n    int64
		)
		if err := rows.Scan(&code, &n); err != nil {
			return nil, err
		}
		g, err := ParseGroup(code)
		if err != nil {
			return nil, err
		}
		stats.ByGroup[g] = n
		stats.WithCategory += n
	}
	return stats, rows.Err()
}
