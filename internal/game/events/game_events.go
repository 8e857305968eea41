package events

import (
	"time"

	"github.com/hexfall/tribesim/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted        = "game.started"
	TypeTurnStarted        = "turn.started"
	TypeTurnEnded          = "turn.ended"
	TypeActionRejected     = "action.rejected"
	TypeUnitMoved          = "unit.moved"
	TypeCombatResolved     = "combat.resolved"
	TypeUnitKilled         = "unit.killed"
	TypeSettlementFounded  = "settlement.founded"
	TypeSettlementAttacked = "settlement.attacked"
	TypeSettlementFell     = "settlement.fell"
	TypeWarDeclared        = "diplomacy.war_declared"
	TypePeaceMade          = "diplomacy.peace_made"
	TypeAllianceFormed     = "diplomacy.alliance_formed"
	TypeGreatPersonClaimed = "great_person.claimed"
	TypeLootboxClaimed     = "lootbox.claimed"
)

func base(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

// GameStartedEvent is published once when a simulation begins.
type GameStartedEvent struct {
	BaseEvent
	NumTribes int
	MapRadius int
	Seed      int64
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, numTribes, mapRadius int, seed int64) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: base(TypeGameStarted, gameID),
		NumTribes: numTribes,
		MapRadius: mapRadius,
		Seed:      seed,
	}
}

// TurnStartedEvent marks the beginning of a turn.
type TurnStartedEvent struct {
	BaseEvent
	Turn int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{BaseEvent: base(TypeTurnStarted, gameID), Turn: turn}
}

// TurnEndedEvent marks the end of a turn, after end-of-turn processing.
type TurnEndedEvent struct {
	BaseEvent
	Turn         int
	ActionsCount int
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn, actionsCount int) *TurnEndedEvent {
	return &TurnEndedEvent{BaseEvent: base(TypeTurnEnded, gameID), Turn: turn, ActionsCount: actionsCount}
}

// ActionRejectedEvent records an action that failed its legality check.
type ActionRejectedEvent struct {
	BaseEvent
	Tribe  core.TribeID
	Kind   string
	Reason string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(gameID string, tribe core.TribeID, kind, reason string) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: base(TypeActionRejected, gameID),
		Tribe:     tribe,
		Kind:      kind,
		Reason:    reason,
	}
}

// UnitMovedEvent records a completed move.
type UnitMovedEvent struct {
	BaseEvent
	Unit core.UnitID
	From core.HexCoord
	To   core.HexCoord
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(gameID string, unit core.UnitID, from, to core.HexCoord) *UnitMovedEvent {
	return &UnitMovedEvent{BaseEvent: base(TypeUnitMoved, gameID), Unit: unit, From: from, To: to}
}

// CombatResolvedEvent records a finished battle between two units.
type CombatResolvedEvent struct {
	BaseEvent
	Attacker       core.UnitID
	Defender       core.UnitID
	AttackerDamage int
	DefenderDamage int
	AttackerKilled bool
	DefenderKilled bool
}

// NewCombatResolvedEvent creates a new CombatResolvedEvent
func NewCombatResolvedEvent(gameID string, attacker, defender core.UnitID, attackerDamage, defenderDamage int, attackerKilled, defenderKilled bool) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:      base(TypeCombatResolved, gameID),
		Attacker:       attacker,
		Defender:       defender,
		AttackerDamage: attackerDamage,
		DefenderDamage: defenderDamage,
		AttackerKilled: attackerKilled,
		DefenderKilled: defenderKilled,
	}
}

// UnitKilledEvent records a unit's death in combat.
type UnitKilledEvent struct {
	BaseEvent
	Unit   core.UnitID
	Owner  core.TribeID
	Killer core.UnitID
}

// NewUnitKilledEvent creates a new UnitKilledEvent
func NewUnitKilledEvent(gameID string, unit core.UnitID, owner core.TribeID, killer core.UnitID) *UnitKilledEvent {
	return &UnitKilledEvent{BaseEvent: base(TypeUnitKilled, gameID), Unit: unit, Owner: owner, Killer: killer}
}

// SettlementFoundedEvent records a settler founding a settlement.
type SettlementFoundedEvent struct {
	BaseEvent
	Settlement core.SettlementID
	Tribe      core.TribeID
	Position   core.HexCoord
}

// NewSettlementFoundedEvent creates a new SettlementFoundedEvent
func NewSettlementFoundedEvent(gameID string, settlement core.SettlementID, tribe core.TribeID, pos core.HexCoord) *SettlementFoundedEvent {
	return &SettlementFoundedEvent{
		BaseEvent:  base(TypeSettlementFounded, gameID),
		Settlement: settlement,
		Tribe:      tribe,
		Position:   pos,
	}
}

// SettlementAttackedEvent records a siege strike.
type SettlementAttackedEvent struct {
	BaseEvent
	Settlement core.SettlementID
	Attacker   core.UnitID
	Damage     int
	Fell       bool
}

// NewSettlementAttackedEvent creates a new SettlementAttackedEvent
func NewSettlementAttackedEvent(gameID string, settlement core.SettlementID, attacker core.UnitID, damage int, fell bool) *SettlementAttackedEvent {
	return &SettlementAttackedEvent{
		BaseEvent:  base(TypeSettlementAttacked, gameID),
		Settlement: settlement,
		Attacker:   attacker,
		Damage:     damage,
		Fell:       fell,
	}
}

// SettlementFellEvent records a settlement changing hands after a siege.
type SettlementFellEvent struct {
	BaseEvent
	Settlement    core.SettlementID
	PreviousOwner core.TribeID
	Attacker      core.TribeID
}

// NewSettlementFellEvent creates a new SettlementFellEvent
func NewSettlementFellEvent(gameID string, settlement core.SettlementID, prev, attacker core.TribeID) *SettlementFellEvent {
	return &SettlementFellEvent{BaseEvent: base(TypeSettlementFell, gameID), Settlement: settlement, PreviousOwner: prev, Attacker: attacker}
}

// WarDeclaredEvent records a declaration of war.
type WarDeclaredEvent struct {
	BaseEvent
	Aggressor core.TribeID
	Target    core.TribeID
}

// NewWarDeclaredEvent creates a new WarDeclaredEvent
func NewWarDeclaredEvent(gameID string, aggressor, target core.TribeID) *WarDeclaredEvent {
	return &WarDeclaredEvent{BaseEvent: base(TypeWarDeclared, gameID), Aggressor: aggressor, Target: target}
}

// PeaceMadeEvent records a successful peace proposal.
type PeaceMadeEvent struct {
	BaseEvent
	Proposer core.TribeID
	Target   core.TribeID
}

// NewPeaceMadeEvent creates a new PeaceMadeEvent
func NewPeaceMadeEvent(gameID string, proposer, target core.TribeID) *PeaceMadeEvent {
	return &PeaceMadeEvent{BaseEvent: base(TypePeaceMade, gameID), Proposer: proposer, Target: target}
}

// AllianceFormedEvent records a new alliance.
type AllianceFormedEvent struct {
	BaseEvent
	TribeA core.TribeID
	TribeB core.TribeID
}

// NewAllianceFormedEvent creates a new AllianceFormedEvent
func NewAllianceFormedEvent(gameID string, a, b core.TribeID) *AllianceFormedEvent {
	return &AllianceFormedEvent{BaseEvent: base(TypeAllianceFormed, gameID), TribeA: a, TribeB: b}
}

// GreatPersonClaimedEvent records a tribe claiming a great person.
type GreatPersonClaimedEvent struct {
	BaseEvent
	GreatPerson core.GreatPersonID
	Tribe       core.TribeID
}

// NewGreatPersonClaimedEvent creates a new GreatPersonClaimedEvent
func NewGreatPersonClaimedEvent(gameID string, gp core.GreatPersonID, tribe core.TribeID) *GreatPersonClaimedEvent {
	return &GreatPersonClaimedEvent{BaseEvent: base(TypeGreatPersonClaimed, gameID), GreatPerson: gp, Tribe: tribe}
}

// LootboxClaimedEvent records a unit picking up a lootbox.
type LootboxClaimedEvent struct {
	BaseEvent
	Unit     core.UnitID
	Tribe    core.TribeID
	Position core.HexCoord
}

// NewLootboxClaimedEvent creates a new LootboxClaimedEvent
func NewLootboxClaimedEvent(gameID string, u core.UnitID, tribe core.TribeID, pos core.HexCoord) *LootboxClaimedEvent {
	return &LootboxClaimedEvent{BaseEvent: base(TypeLootboxClaimed, gameID), Unit: u, Tribe: tribe, Position: pos}
}
