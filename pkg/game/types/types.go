package types

import "fmt"

// Point is a world coordinate relative to the current map's origin.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Origin is the coordinate origin of a map in raw float units.
type Origin struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

type Health struct {
	Max     uint32 `json:"max"`
	Current uint32 `json:"current"`
}

// NewHealth returns nil unless 0 < current < max. Anything else is treated as
// uninitialized memory rather than a real reading.
func NewHealth(max, current uint32) *Health {
	if current == 0 || current >= max {
		return nil
	}
	return &Health{Max: max, Current: current}
}

func (h *Health) String() string {
	return fmt.Sprintf("HP %d/%d", h.Current, h.Max)
}
