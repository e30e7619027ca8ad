// Package origins resolves map names to coordinate origins.
package origins

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/worldlens/pkg/game/types"
)

// ErrUnknownMap is returned when no origin is known for a map name.
var ErrUnknownMap = errors.New("unknown map")

// Resolver looks up the coordinate origin of a map by name.
type Resolver interface {
	Origin(ctx context.Context, name string) (types.Origin, error)
}

// Static resolves origins from a fixed table, typically the config file.
type Static map[string]types.Origin

func (s Static) Origin(ctx context.Context, name string) (types.Origin, error) {
	origin, ok := s[name]
	if !ok {
		return types.Origin{}, fmt.Errorf("%w: %s", ErrUnknownMap, name)
	}
	return origin, nil
}

// Chain tries each resolver in order and returns the first known origin.
// Errors other than ErrUnknownMap stop the lookup.
type Chain []Resolver

func (c Chain) Origin(ctx context.Context, name string) (types.Origin, error) {
	for _, r := range c {
		origin, err := r.Origin(ctx, name)
		if err == nil {
			return origin, nil
		}
		if !errors.Is(err, ErrUnknownMap) {
			return types.Origin{}, err
		}
	}
	return types.Origin{}, fmt.Errorf("%w: %s", ErrUnknownMap, name)
}
