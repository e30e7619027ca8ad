package repositories

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/cbodonnell/worldlens/pkg/game/types"
)

//go:embed migrations
var migrations embed.FS

type Repository interface {
	Close(ctx context.Context) error
	LoadOrigin(ctx context.Context, name string) (types.Origin, error)
	SaveOrigin(ctx context.Context, name string, origin types.Origin) error
	ListOrigins(ctx context.Context) (map[string]types.Origin, error)
	SaveSnapshot(ctx context.Context, snapshot *types.Snapshot) error
}

// readMigrations returns the migration scripts of a dialect in file name order.
func readMigrations(dialect string) ([]string, error) {
	dir := path.Join("migrations", dialect)
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		b, err := fs.ReadFile(migrations, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", entry.Name(), err)
		}
		scripts = append(scripts, string(b))
	}
	return scripts, nil
}

// sighting is one entity row of a snapshot.
type sighting struct {
	kind          string
	identity      int64
	entityID      int64
	x             int64
	y             int64
	healthCurrent *int64
	healthMax     *int64
}

func sightings(es *types.Entities) []sighting {
	if es == nil {
		return nil
	}
	rows := make([]sighting, 0, es.Len())
	for _, list := range [][]*types.Entity{es.NPCs, es.Mobs, es.Players} {
		for _, e := range list {
			s := sighting{
				kind:     e.Kind.String(),
				identity: int64(e.Identity),
				entityID: int64(e.ID),
				x:        int64(e.Position.X),
				y:        int64(e.Position.Y),
			}
			if e.Health != nil {
				cur, max := int64(e.Health.Current), int64(e.Health.Max)
				s.healthCurrent = &cur
				s.healthMax = &max
			}
			rows = append(rows, s)
		}
	}
	return rows
}
