package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Offsets is the per-build table of fixed addresses and field offsets in the
// target process. Chains follow memory.Reader.ResolvePointerChain semantics:
// every offset but the last is dereferenced.
type Offsets struct {
	// Base is the load address of the game module.
	Base uint64 `yaml:"base" json:"base"`
	// PointerSize is 4 for 32-bit targets and 8 for 64-bit targets.
	PointerSize int `yaml:"pointerSize" json:"pointerSize" jsonschema:"minimum=4,maximum=8"`

	MapNameChain   []uint64 `yaml:"mapNameChain" json:"mapNameChain"`
	CharacterChain []uint64 `yaml:"characterChain" json:"characterChain"`
	EntityChain    []uint64 `yaml:"entityChain" json:"entityChain"`

	// ListSize is the offset of the live-count field relative to the entity list.
	ListSize uint64 `yaml:"listSize" json:"listSize"`
	// ListHeadChain leads from the entity list to the first node.
	ListHeadChain []uint64 `yaml:"listHeadChain" json:"listHeadChain"`
	NodeNext      uint64   `yaml:"nodeNext" json:"nodeNext"`
	NodeData      uint64   `yaml:"nodeData" json:"nodeData"`

	EntityID uint64 `yaml:"entityId" json:"entityId"`
	EntityX  uint64 `yaml:"entityX" json:"entityX"`
	EntityY  uint64 `yaml:"entityY" json:"entityY"`

	HealthPointer uint64 `yaml:"healthPointer" json:"healthPointer"`
	HealthCurrent uint64 `yaml:"healthCurrent" json:"healthCurrent"`
	HealthMax     uint64 `yaml:"healthMax" json:"healthMax"`

	// Scale converts raw float coordinates into world units.
	Scale float64 `yaml:"scale" json:"scale"`
	// Sentinel terminates the map name string.
	Sentinel byte `yaml:"sentinel" json:"sentinel"`
	// MaxNameLength bounds the map name read.
	MaxNameLength int `yaml:"maxNameLength" json:"maxNameLength"`
	// MaxEntities bounds the entity list length.
	MaxEntities uint32 `yaml:"maxEntities" json:"maxEntities"`

	// NPCThreshold: ids below it (except 0) are NPCs.
	NPCThreshold uint16 `yaml:"npcThreshold" json:"npcThreshold"`
	// MobThreshold: ids from NPCThreshold up to and including it are mobs.
	MobThreshold uint16 `yaml:"mobThreshold" json:"mobThreshold"`
}

type Config struct {
	// Process is the executable name of the game.
	Process string `yaml:"process" json:"process"`
	// TickInterval is the polling period of the read loop.
	TickInterval time.Duration `yaml:"tickInterval" json:"tickInterval"`
	// MaxFailures is the number of consecutive failed ticks before the session ends.
	MaxFailures int `yaml:"maxFailures" json:"maxFailures"`
	// SessionTimeout ends the session when no tick succeeded for this long.
	SessionTimeout time.Duration `yaml:"sessionTimeout" json:"sessionTimeout"`

	Offsets Offsets `yaml:"offsets" json:"offsets"`

	// Maps holds known map origins by name.
	Maps map[string]types.Origin `yaml:"maps" json:"maps"`
	// DefaultOrigin is used for maps without a known origin.
	DefaultOrigin types.Origin `yaml:"defaultOrigin" json:"defaultOrigin"`
}

// DefaultOffsets returns the offsets of the reference client build.
func DefaultOffsets() Offsets {
	return Offsets{
		Base:           0x400000,
		PointerSize:    4,
		MapNameChain:   []uint64{0x62AA18},
		CharacterChain: []uint64{0x62AA14, 0xD0, 0x3C, 0x0},
		EntityChain:    []uint64{0x62AA14, 0xD0, 0x0},
		ListSize:       0x18,
		ListHeadChain:  []uint64{0x14, 0x0, 0x0},
		NodeNext:       0x0,
		NodeData:       0x8,
		EntityID:       0x104,
		EntityX:        0x4,
		EntityY:        0xC,
		HealthPointer:  0x2E8,
		HealthCurrent:  0x78,
		HealthMax:      0x7C,
		Scale:          5,
		Sentinel:       '.',
		MaxNameLength:  256,
		MaxEntities:    4096,
		NPCThreshold:   1000,
		MobThreshold:   2308,
	}
}

func Default() *Config {
	return &Config{
		TickInterval:   100 * time.Millisecond,
		MaxFailures:    50,
		SessionTimeout: 30 * time.Second,
		Offsets:        DefaultOffsets(),
		Maps:           make(map[string]types.Origin),
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %v", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML config on top of the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}
	if cfg.Maps == nil {
		cfg.Maps = make(map[string]types.Origin)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tickInterval must be positive")
	}
	return c.Offsets.Validate()
}

func (o *Offsets) Validate() error {
	if o.PointerSize != 4 && o.PointerSize != 8 {
		return fmt.Errorf("pointerSize must be 4 or 8, got %d", o.PointerSize)
	}
	if o.Scale == 0 {
		return fmt.Errorf("scale must not be zero")
	}
	if o.MaxNameLength <= 0 {
		return fmt.Errorf("maxNameLength must be positive")
	}
	if o.MaxEntities == 0 {
		return fmt.Errorf("maxEntities must be positive")
	}
	if o.NPCThreshold > o.MobThreshold {
		return fmt.Errorf("npcThreshold %d is above mobThreshold %d", o.NPCThreshold, o.MobThreshold)
	}
	if len(o.CharacterChain) == 0 || len(o.EntityChain) == 0 || len(o.ListHeadChain) == 0 {
		return fmt.Errorf("characterChain, entityChain and listHeadChain must not be empty")
	}
	return nil
}

// Schema returns the JSON Schema describing the config file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{}
	s := r.Reflect(&Config{})
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %v", err)
	}
	return b, nil
}
