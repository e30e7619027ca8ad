package types

// Snapshot is the map, character and entities of the most recent complete read cycle.
type Snapshot struct {
	// Session identifies the attach session the snapshot was taken in.
	Session string `json:"session"`
	// Tick counts complete read cycles within the session.
	Tick uint64 `json:"tick"`
	// Timestamp is the time the cycle completed, in unix milliseconds.
	Timestamp int64     `json:"timestamp"`
	Map       *Map      `json:"map"`
	Character *Entity   `json:"character"`
	Entities  *Entities `json:"entities"`
}

// Copy returns a snapshot sharing the immutable Map but owning its entities.
func (s *Snapshot) Copy() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		Session:   s.Session,
		Tick:      s.Tick,
		Timestamp: s.Timestamp,
		Map:       s.Map,
		Character: s.Character.Copy(),
		Entities:  s.Entities.Copy(),
	}
}
