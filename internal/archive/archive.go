package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/meteor/internal/engine"
)

//go:embed schema.sql
var schemaSQL string

// Archive is a SQLite-backed snapshot store. SQLite only supports one writer
// at a time, so the connection pool is pinned to a single connection.
type Archive struct {
	db *sql.DB
}

// Snapshot describes one stored snapshot.
type Snapshot struct {
	ID        string
	Session   string
	Profile   string
	CreatedAt time.Time
	Checksum  string
}

// Open creates or opens an archive database at the given path. Idempotent;
// the schema applies on every open.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to archive: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Export writes one snapshot of the engine's entire store. The whole export
// happens in one transaction: a failed export leaves no partial snapshot.
func (a *Archive) Export(ctx context.Context, eng *engine.Engine) (Snapshot, error) {
	dump := BuildDump(eng)
	sum, err := dump.Checksum()
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		ID:        uuid.NewString(),
		Session:   dump.Session,
		Profile:   dump.Profile,
		CreatedAt: dump.CreatedAt,
		Checksum:  sum,
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, session, profile, created_at, checksum)
		VALUES (?, ?, ?, ?, ?)
	`, snap.ID, snap.Session, snap.Profile, snap.CreatedAt.Format(time.RFC3339Nano), snap.Checksum)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export snapshot row: %w", err)
	}

	for ctxName, namespaces := range dump.Contexts {
		for ns, keys := range namespaces {
			for key, entry := range keys {
				_, err = tx.ExecContext(ctx, `
					INSERT INTO entries (snapshot_id, context, namespace, key, value, content_type)
					VALUES (?, ?, ?, ?, ?, ?)
				`, snap.ID, ctxName, ns, key, entry.Value, entry.ContentType)
				if err != nil {
					return Snapshot{}, fmt.Errorf("export entry %s:%s:%s: %w", ctxName, ns, key, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("export commit: %w", err)
	}
	return snap, nil
}

// Import replays the identified snapshot into the engine.
func (a *Archive) Import(ctx context.Context, id string, eng *engine.Engine) error {
	rows, err := a.db.QueryContext(ctx, `
		SELECT context, namespace, key, value
		FROM entries
		WHERE snapshot_id = ?
		ORDER BY context, namespace, key
	`, id)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		found = true
		var ctxName, ns, key, value string
		if err := rows.Scan(&ctxName, &ns, &key, &value); err != nil {
			return fmt.Errorf("import scan: %w", err)
		}
		if err := eng.Set(ctxName+":"+ns+":"+key, value); err != nil {
			return fmt.Errorf("import %s:%s:%s: %w", ctxName, ns, key, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("import rows: %w", err)
	}
	if !found {
		if ok, err := a.snapshotExists(ctx, id); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("import: snapshot %q not found", id)
		}
	}
	return nil
}

func (a *Archive) snapshotExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking snapshot %q: %w", id, err)
	}
	return n > 0, nil
}

// Snapshots lists stored snapshots, newest first.
func (a *Archive) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, session, profile, created_at, checksum
		FROM snapshots
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var created string
		if err := rows.Scan(&s.ID, &s.Session, &s.Profile, &created, &s.Checksum); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing snapshot timestamp %q: %w", created, err)
		}
		s.CreatedAt = ts
		out = append(out, s)
	}
	return out, rows.Err()
}
