// Package game owns the engine: it applies discrete actions to immutable
// state snapshots and runs end-of-turn processing. Every mutating operation
// clones the snapshot first; the input state is never touched.
package game

import (
	"github.com/hexfall/tribesim/internal/game/core"
)

// Action is one discrete order submitted by a player or the AI director.
// The set of implementations is closed; Apply switches over it exhaustively.
type Action interface {
	// Tribe returns the acting tribe.
	Tribe() core.TribeID
	// Kind returns a stable name for logging and event payloads.
	Kind() string
}

// MoveUnitAction moves a unit to a hex reachable with its remaining
// movement this turn.
type MoveUnitAction struct {
	TribeID core.TribeID
	UnitID  core.UnitID
	Target  core.HexCoord
}

func (a MoveUnitAction) Tribe() core.TribeID { return a.TribeID }
func (a MoveUnitAction) Kind() string        { return "move_unit" }

// AttackAction resolves one battle between two units.
type AttackAction struct {
	TribeID    core.TribeID
	AttackerID core.UnitID
	DefenderID core.UnitID
}

func (a AttackAction) Tribe() core.TribeID { return a.TribeID }
func (a AttackAction) Kind() string        { return "attack" }

// AttackSettlementAction strikes a settlement with a unit's siege strength.
type AttackSettlementAction struct {
	TribeID      core.TribeID
	AttackerID   core.UnitID
	SettlementID core.SettlementID
}

func (a AttackSettlementAction) Tribe() core.TribeID { return a.TribeID }
func (a AttackSettlementAction) Kind() string        { return "attack_settlement" }

// FoundSettlementAction consumes a settler to found a settlement where it
// stands.
type FoundSettlementAction struct {
	TribeID   core.TribeID
	SettlerID core.UnitID
	Name      string
}

func (a FoundSettlementAction) Tribe() core.TribeID { return a.TribeID }
func (a FoundSettlementAction) Kind() string        { return "found_settlement" }

// BuildImprovementAction has a builder improve the resource tile it stands
// on.
type BuildImprovementAction struct {
	TribeID   core.TribeID
	BuilderID core.UnitID
}

func (a BuildImprovementAction) Tribe() core.TribeID { return a.TribeID }
func (a BuildImprovementAction) Kind() string        { return "build_improvement" }

// PromoteUnitAction spends a banked promotion pick.
type PromoteUnitAction struct {
	TribeID   core.TribeID
	UnitID    core.UnitID
	Promotion core.PromotionID
}

func (a PromoteUnitAction) Tribe() core.TribeID { return a.TribeID }
func (a PromoteUnitAction) Kind() string        { return "promote_unit" }

// SetResearchAction points the tribe's research at a tech.
type SetResearchAction struct {
	TribeID core.TribeID
	Tech    string
}

func (a SetResearchAction) Tribe() core.TribeID { return a.TribeID }
func (a SetResearchAction) Kind() string        { return "set_research" }

// SetCultureAction points the tribe's culture track at an option.
type SetCultureAction struct {
	TribeID core.TribeID
	Culture string
}

func (a SetCultureAction) Tribe() core.TribeID { return a.TribeID }
func (a SetCultureAction) Kind() string        { return "set_culture" }

// QueueWonderAction enqueues a wonder in a settlement's build queue.
type QueueWonderAction struct {
	TribeID      core.TribeID
	SettlementID core.SettlementID
	Wonder       string
}

func (a QueueWonderAction) Tribe() core.TribeID { return a.TribeID }
func (a QueueWonderAction) Kind() string        { return "queue_wonder" }

// DeclareWarAction declares war on another tribe.
type DeclareWarAction struct {
	TribeID core.TribeID
	Target  core.TribeID
}

func (a DeclareWarAction) Tribe() core.TribeID { return a.TribeID }
func (a DeclareWarAction) Kind() string        { return "declare_war" }

// ProposePeaceAction offers peace to a tribe the actor is at war with.
type ProposePeaceAction struct {
	TribeID core.TribeID
	Target  core.TribeID
}

func (a ProposePeaceAction) Tribe() core.TribeID { return a.TribeID }
func (a ProposePeaceAction) Kind() string        { return "propose_peace" }

// ProposeAllianceAction upgrades a friendly relation to an alliance.
type ProposeAllianceAction struct {
	TribeID core.TribeID
	Target  core.TribeID
}

func (a ProposeAllianceAction) Tribe() core.TribeID { return a.TribeID }
func (a ProposeAllianceAction) Kind() string        { return "propose_alliance" }

// BreakAllianceAction downgrades an alliance to friendly.
type BreakAllianceAction struct {
	TribeID core.TribeID
	Target  core.TribeID
}

func (a BreakAllianceAction) Tribe() core.TribeID { return a.TribeID }
func (a BreakAllianceAction) Kind() string        { return "break_alliance" }

// EstablishTradeRouteAction opens a trade route between two settlements.
type EstablishTradeRouteAction struct {
	TribeID core.TribeID
	From    core.SettlementID
	To      core.SettlementID
}

func (a EstablishTradeRouteAction) Tribe() core.TribeID { return a.TribeID }
func (a EstablishTradeRouteAction) Kind() string        { return "establish_trade_route" }

// ClaimGreatPersonAction claims one of the global one-per-game great
// people.
type ClaimGreatPersonAction struct {
	TribeID     core.TribeID
	GreatPerson core.GreatPersonID
}

func (a ClaimGreatPersonAction) Tribe() core.TribeID { return a.TribeID }
func (a ClaimGreatPersonAction) Kind() string        { return "claim_great_person" }

// EndTurnAction is the terminal marker of every action list. Applying it
// runs end-of-turn processing for the whole world and advances the turn
// counter.
type EndTurnAction struct {
	TribeID core.TribeID
}

func (a EndTurnAction) Tribe() core.TribeID { return a.TribeID }
func (a EndTurnAction) Kind() string        { return "end_turn" }
