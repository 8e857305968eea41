package core

// Stance is the diplomatic relationship category between two tribes.
type Stance int

const (
	StanceWar Stance = iota
	StanceHostile
	StanceNeutral
	StanceFriendly
	StanceAllied
)

var stanceNames = [...]string{"war", "hostile", "neutral", "friendly", "allied"}

func (s Stance) String() string {
	if int(s) < 0 || int(s) >= len(stanceNames) {
		return "unknown"
	}
	return stanceNames[s]
}

// DiplomaticRelation is the pairwise relationship state, keyed by PairKey so
// exactly one relation exists per unordered tribe pair.
type DiplomaticRelation struct {
	Stance        Stance `json:"stance"`
	TurnsAtStance int    `json:"turns_at_stance"`
	Reputation    int    `json:"reputation"`
}

// Clone returns a copy of the relation.
func (r *DiplomaticRelation) Clone() *DiplomaticRelation {
	c := *r
	return &c
}

// ReputationEvent is an append-only ledger entry recording a reputation
// change for a tribe. The ledger exists for auditability; current values
// live on the relation.
type ReputationEvent struct {
	Kind   string `json:"kind"`
	Turn   int    `json:"turn"`
	Amount int    `json:"amount"`
}

// DiplomacyState is the full diplomatic component of a snapshot.
type DiplomacyState struct {
	// Relations maps PairKey(a, b) to the single relation for that pair.
	Relations map[string]*DiplomaticRelation `json:"relations"`
	// Events is the per-tribe reputation ledger.
	Events map[TribeID][]ReputationEvent `json:"events"`
	// PeaceRejections maps DirKey(proposer, target) to the turn the last
	// peace proposal was rejected.
	PeaceRejections map[string]int `json:"peace_rejections,omitempty"`
}

// NewDiplomacyState returns an empty diplomacy component.
func NewDiplomacyState() DiplomacyState {
	return DiplomacyState{
		Relations:       make(map[string]*DiplomaticRelation),
		Events:          make(map[TribeID][]ReputationEvent),
		PeaceRejections: make(map[string]int),
	}
}

// Clone returns a deep copy of the diplomacy state.
func (d DiplomacyState) Clone() DiplomacyState {
	c := NewDiplomacyState()
	for k, rel := range d.Relations {
		c.Relations[k] = rel.Clone()
	}
	for tribe, events := range d.Events {
		copied := make([]ReputationEvent, len(events))
		copy(copied, events)
		c.Events[tribe] = copied
	}
	for k, turn := range d.PeaceRejections {
		c.PeaceRejections[k] = turn
	}
	return c
}
