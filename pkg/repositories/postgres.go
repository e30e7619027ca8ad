package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and applies the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	scripts, err := readMigrations("postgres")
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	for i, script := range scripts {
		if _, err := conn.Exec(ctx, script); err != nil {
			conn.Close(ctx)
			return nil, fmt.Errorf("failed to execute migration %d: %v", i, err)
		}
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) LoadOrigin(ctx context.Context, name string) (types.Origin, error) {
	q := `
	SELECT origin_x, origin_y FROM maps WHERE name = $1;
	`
	var origin types.Origin
	if err := r.conn.QueryRow(ctx, q, name).Scan(&origin.X, &origin.Y); err != nil {
		if err == pgx.ErrNoRows {
			return types.Origin{}, &ErrNotFound{What: "map " + name}
		}
		return types.Origin{}, fmt.Errorf("failed to scan map: %v", err)
	}
	return origin, nil
}

func (r *PostgresRepository) SaveOrigin(ctx context.Context, name string, origin types.Origin) error {
	q := `
	INSERT INTO maps (name, origin_x, origin_y, updated_at) VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO UPDATE SET origin_x = $2, origin_y = $3, updated_at = $4;
	`
	_, err := r.conn.Exec(ctx, q, name, origin.X, origin.Y, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert map: %v", err)
	}
	return nil
}

func (r *PostgresRepository) ListOrigins(ctx context.Context) (map[string]types.Origin, error) {
	rows, err := r.conn.Query(ctx, "SELECT name, origin_x, origin_y FROM maps")
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

func (r *PostgresRepository) SaveSnapshot(ctx context.Context, snapshot *types.Snapshot) error {
	if snapshot == nil || snapshot.Map == nil || snapshot.Character == nil {
		return fmt.Errorf("snapshot is incomplete")
	}

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	q := `
	INSERT INTO ticks (session, tick, timestamp, map, x, y) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (session, tick) DO NOTHING;
	`
	_, err = tx.Exec(ctx, q, snapshot.Session, int64(snapshot.Tick), snapshot.Timestamp,
		snapshot.Map.Name, snapshot.Character.Position.X, snapshot.Character.Position.Y)
	if err != nil {
		return fmt.Errorf("failed to insert tick: %v", err)
	}

	batch := &pgx.Batch{}
	for _, s := range sightings(snapshot.Entities) {
		batch.Queue(`
		INSERT INTO sightings (session, tick, kind, identity, entity_id, x, y, health_current, health_max)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`, snapshot.Session, int64(snapshot.Tick), s.kind, s.identity, s.entityID, s.x, s.y, s.healthCurrent, s.healthMax)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert sightings: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}
