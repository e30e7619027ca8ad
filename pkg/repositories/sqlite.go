package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies the embedded migrations.
func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	scripts, err := readMigrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, script := range scripts {
		if _, err := db.ExecContext(ctx, script); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) LoadOrigin(ctx context.Context, name string) (types.Origin, error) {
	q := `
	SELECT origin_x, origin_y FROM maps WHERE name = ?;
	`
	var origin types.Origin
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&origin.X, &origin.Y); err != nil {
		if err == sql.ErrNoRows {
			return types.Origin{}, &ErrNotFound{What: "map " + name}
		}
		return types.Origin{}, fmt.Errorf("failed to scan map: %v", err)
	}
	return origin, nil
}

func (r *SQLiteRepository) SaveOrigin(ctx context.Context, name string, origin types.Origin) error {
	q := `
	INSERT OR REPLACE INTO maps (name, origin_x, origin_y, updated_at)
	VALUES (?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, name, origin.X, origin.Y, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert map: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) ListOrigins(ctx context.Context) (map[string]types.Origin, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name, origin_x, origin_y FROM maps")
	if err != nil {
		return nil, fmt.Errorf("failed to query maps: %v", err)
	}
	defer rows.Close()

	origins := make(map[string]types.Origin)
	for rows.Next() {
		var name string
		var origin types.Origin
		if err := rows.Scan(&name, &origin.X, &origin.Y); err != nil {
			return nil, fmt.Errorf("failed to scan map: %v", err)
		}
		origins[name] = origin
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maps: %v", err)
	}
	return origins, nil
}

func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, snapshot *types.Snapshot) error {
	if snapshot == nil || snapshot.Map == nil || snapshot.Character == nil {
		return fmt.Errorf("snapshot is incomplete")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT OR REPLACE INTO ticks (session, tick, timestamp, map, x, y)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, q, snapshot.Session, int64(snapshot.Tick), snapshot.Timestamp,
		snapshot.Map.Name, snapshot.Character.Position.X, snapshot.Character.Position.Y)
	if err != nil {
		return fmt.Errorf("failed to insert tick: %v", err)
	}

	q = `
	INSERT INTO sightings (session, tick, kind, identity, entity_id, x, y, health_current, health_max)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	for _, s := range sightings(snapshot.Entities) {
		_, err = tx.ExecContext(ctx, q, snapshot.Session, int64(snapshot.Tick), s.kind, s.identity, s.entityID,
			s.x, s.y, s.healthCurrent, s.healthMax)
		if err != nil {
			return fmt.Errorf("failed to insert sighting: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}
