package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name: "empty document keeps defaults",
			yaml: ``,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultOffsets(), cfg.Offsets)
				assert.Equal(t, 100*time.Millisecond, cfg.TickInterval)
				assert.NotNil(t, cfg.Maps)
			},
		},
		{
			name: "overrides and map origins",
			yaml: `
process: game.exe
tickInterval: 250ms
offsets:
  base: 0x10000
  npcThreshold: 900
  mobThreshold: 3000
maps:
  arena:
    x: 1000
    y: 1000
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "game.exe", cfg.Process)
				assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
				assert.Equal(t, uint64(0x10000), cfg.Offsets.Base)
				assert.Equal(t, uint16(900), cfg.Offsets.NPCThreshold)
				assert.Equal(t, uint16(3000), cfg.Offsets.MobThreshold)
				assert.Equal(t, 5.0, cfg.Offsets.Scale)
				assert.Equal(t, types.Origin{X: 1000, Y: 1000}, cfg.Maps["arena"])
			},
		},
		{
			name: "thresholds out of order",
			yaml: `
offsets:
  npcThreshold: 3000
  mobThreshold: 1000
`,
			wantErr: true,
		},
		{
			name: "bad pointer size",
			yaml: `
offsets:
  pointerSize: 2
`,
			wantErr: true,
		},
		{
			name: "zero scale",
			yaml: `
offsets:
  scale: 0
`,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "offsets: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Contains(t, string(b), "npcThreshold")
}
