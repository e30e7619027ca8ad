package origins

import (
	"context"
	"fmt"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/repositories"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of map origins kept in memory.
const DefaultCacheSize = 128

// RepositoryResolver resolves origins from a repository through an LRU cache.
type RepositoryResolver struct {
	repository repositories.Repository
	cache      *lru.Cache
}

func NewRepositoryResolver(repository repositories.Repository, cacheSize int) (*RepositoryResolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create origin cache: %v", err)
	}
	return &RepositoryResolver{
		repository: repository,
		cache:      cache,
	}, nil
}

func (r *RepositoryResolver) Origin(ctx context.Context, name string) (types.Origin, error) {
	if v, ok := r.cache.Get(name); ok {
		return v.(types.Origin), nil
	}

	origin, err := r.repository.LoadOrigin(ctx, name)
	if err != nil {
		if repositories.IsNotFound(err) {
			return types.Origin{}, fmt.Errorf("%w: %s", ErrUnknownMap, name)
		}
		return types.Origin{}, fmt.Errorf("failed to load origin of %s: %w", name, err)
	}

	r.cache.Add(name, origin)
	return origin, nil
}

// Save stores the origin of a map and refreshes the cache.
func (r *RepositoryResolver) Save(ctx context.Context, name string, origin types.Origin) error {
	if err := r.repository.SaveOrigin(ctx, name, origin); err != nil {
		return fmt.Errorf("failed to save origin of %s: %w", name, err)
	}
	r.cache.Add(name, origin)
	return nil
}
