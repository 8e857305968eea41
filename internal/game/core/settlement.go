package core

// BuildKind discriminates entries in a settlement's build queue.
type BuildKind int

const (
	BuildUnit BuildKind = iota
	BuildWonder
)

// BuildOrder is one queued production item.
type BuildOrder struct {
	Kind BuildKind `json:"kind"`
	ID   string    `json:"id"`
}

// Settlement is a founded city. Health tracks siege damage; conquest is a
// separate caller-triggered step once health reaches zero.
type Settlement struct {
	ID         SettlementID `json:"id"`
	Name       string       `json:"name"`
	Owner      TribeID      `json:"owner"`
	Position   HexCoord     `json:"position"`
	Health     int          `json:"health"`
	MaxHealth  int          `json:"max_health"`
	Population int          `json:"population"`
	BuildQueue []BuildOrder `json:"build_queue,omitempty"`
}

// HasWonderQueued reports whether any wonder order sits in the queue.
func (s *Settlement) HasWonderQueued() bool {
	for _, o := range s.BuildQueue {
		if o.Kind == BuildWonder {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the settlement.
func (s *Settlement) Clone() *Settlement {
	c := *s
	if s.BuildQueue != nil {
		c.BuildQueue = make([]BuildOrder, len(s.BuildQueue))
		copy(c.BuildQueue, s.BuildQueue)
	}
	return &c
}
