package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cbodonnell/worldlens/pkg/config"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/memory"
	"github.com/cbodonnell/worldlens/pkg/origins"
)

// ReadName reads a sentinel-terminated string one byte at a time.
// More than maxLen bytes without a sentinel is treated as corrupt data.
func ReadName(reader *memory.Reader, address uint64, sentinel byte, maxLen int) (string, error) {
	var sb strings.Builder
	for i := 0; i <= maxLen; i++ {
		c, err := reader.ReadUint8(address + uint64(i))
		if err != nil {
			return "", err
		}
		if c == sentinel {
			return sb.String(), nil
		}
		sb.WriteByte(c)
	}
	return "", fmt.Errorf("%w: no sentinel %q within %d bytes at %#x", memory.ErrCorruptData, sentinel, maxLen, address)
}

// MapContext tracks the current map and replaces it when its name changes.
type MapContext struct {
	reader        *memory.Reader
	offsets       *config.Offsets
	origins       origins.Resolver
	defaultOrigin types.Origin
	bus           *Bus

	lock    sync.RWMutex
	current *types.Map
}

type NewMapContextOptions struct {
	Reader        *memory.Reader
	Offsets       *config.Offsets
	Origins       origins.Resolver
	DefaultOrigin types.Origin
	Bus           *Bus
}

func NewMapContext(opts NewMapContextOptions) *MapContext {
	return &MapContext{
		reader:        opts.Reader,
		offsets:       opts.Offsets,
		origins:       opts.Origins,
		defaultOrigin: opts.DefaultOrigin,
		bus:           opts.Bus,
	}
}

// Current returns the held map, or nil before the first successful tick.
func (mc *MapContext) Current() *types.Map {
	mc.lock.RLock()
	defer mc.lock.RUnlock()
	return mc.current
}

// OnTick reads the map name. If it matches the held map nothing happens.
// Otherwise a new Map replaces the old one, takes over the map-scoped
// subscriptions and MapChanged is emitted.
func (mc *MapContext) OnTick(ctx context.Context) (*types.Map, error) {
	address, err := mc.reader.ResolvePointerChain(mc.offsets.Base, mc.offsets.MapNameChain...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve map name: %w", err)
	}
	name, err := ReadName(mc.reader, address, mc.offsets.Sentinel, mc.offsets.MaxNameLength)
	if err != nil {
		return nil, fmt.Errorf("failed to read map name: %w", err)
	}
	if name == "" {
		return nil, fmt.Errorf("failed to read map name: %w: empty name", memory.ErrCorruptData)
	}

	if current := mc.Current(); current != nil && current.Name == name {
		return current, nil
	}

	origin, err := mc.resolveOrigin(ctx, name)
	if err != nil {
		return nil, err
	}

	m := types.NewMap(name, origin)
	mc.bus.DropScope(ScopeMap)
	mc.bus.Register(ScopeMap, &mapHandler{m: m})
	mc.lock.Lock()
	mc.current = m
	mc.lock.Unlock()

	log.Info("Map changed to %s (origin %.1f, %.1f)", m.Name, m.Origin.X, m.Origin.Y)
	mc.bus.Emit(Event{Type: EventMapChanged, Map: m})
	return m, nil
}

func (mc *MapContext) resolveOrigin(ctx context.Context, name string) (types.Origin, error) {
	if mc.origins == nil {
		return mc.defaultOrigin, nil
	}
	origin, err := mc.origins.Origin(ctx, name)
	if err != nil {
		if errors.Is(err, origins.ErrUnknownMap) {
			log.Warn("No origin known for map %s, using default origin", name)
			return mc.defaultOrigin, nil
		}
		return types.Origin{}, fmt.Errorf("failed to resolve origin of map %s: %w", name, err)
	}
	return origin, nil
}
