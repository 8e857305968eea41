package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the simulation engine. Every tunable
// rule constant lives here and is loaded once at startup; packages read the
// values through Get() and treat them as immutable.
type Config struct {
	Game GameConfig `mapstructure:"game"`
	AI   AIConfig   `mapstructure:"ai"`
	Log  LogConfig  `mapstructure:"log"`
}

// GameConfig holds rules constants for the simulation core.
type GameConfig struct {
	Movement   MovementConfig             `mapstructure:"movement"`
	Combat     CombatConfig               `mapstructure:"combat"`
	Rarity     RarityConfig               `mapstructure:"rarity"`
	Diplomacy  DiplomacyConfig            `mapstructure:"diplomacy"`
	Healing    HealingConfig              `mapstructure:"healing"`
	Settlement SettlementConfig           `mapstructure:"settlement"`
	Units      map[string]UnitConfig      `mapstructure:"units"`
	Promotions map[string]PromotionConfig `mapstructure:"promotions"`
	Camps      CampConfig                 `mapstructure:"camps"`
}

// MovementConfig holds per-terrain entry costs and stacking caps.
type MovementConfig struct {
	OpenCost         int `mapstructure:"open_cost"`
	RoughCost        int `mapstructure:"rough_cost"`
	MilitaryStackCap int `mapstructure:"military_stack_cap"`
	CivilianStackCap int `mapstructure:"civilian_stack_cap"`
}

// CombatConfig holds the combat modifier tables and damage constants.
type CombatConfig struct {
	BaseDamage          int     `mapstructure:"base_damage"`
	ForestDefensePct    int     `mapstructure:"forest_defense_pct"`
	JungleDefensePct    int     `mapstructure:"jungle_defense_pct"`
	HillsDefensePct     int     `mapstructure:"hills_defense_pct"`
	DesertDefensePct    int     `mapstructure:"desert_defense_pct"`
	MarshDefensePct     int     `mapstructure:"marsh_defense_pct"`
	StackingDefensePct  int     `mapstructure:"stacking_defense_pct"`
	AdjacencyPct        int     `mapstructure:"adjacency_pct"`
	AdjacencyCapPct     int     `mapstructure:"adjacency_cap_pct"`
	FortificationPct    int     `mapstructure:"fortification_pct"`
	HealthPenaltyFactor float64 `mapstructure:"health_penalty_factor"`
	RiverCrossingFactor float64 `mapstructure:"river_crossing_factor"`
	CombatXP            int     `mapstructure:"combat_xp"`
	KillXP              int     `mapstructure:"kill_xp"`
	XPPerLevel          int     `mapstructure:"xp_per_level"`
	RangedAttackRange   int     `mapstructure:"ranged_attack_range"`
}

// RarityConfig holds the cumulative-weight roll table and per-tier bonuses.
// Index order is common, uncommon, rare, epic, legendary.
type RarityConfig struct {
	Weights []int           `mapstructure:"weights"`
	Bonuses []RarityBonuses `mapstructure:"bonuses"`
}

// RarityBonuses are the flat stat bonuses granted by a rarity tier.
type RarityBonuses struct {
	Combat   int `mapstructure:"combat"`
	Movement int `mapstructure:"movement"`
	Vision   int `mapstructure:"vision"`
}

// DiplomacyConfig holds stance machine thresholds and reputation penalties.
type DiplomacyConfig struct {
	FriendlyThreshold      int `mapstructure:"friendly_threshold"`
	AllianceThreshold      int `mapstructure:"alliance_threshold"`
	MinTurnsAtWar          int `mapstructure:"min_turns_at_war"`
	PeaceRejectionCooldown int `mapstructure:"peace_rejection_cooldown"`
	HostileToNeutralTurns  int `mapstructure:"hostile_to_neutral_turns"`
	WearinessPerTurn       int `mapstructure:"weariness_per_turn"`
	PeaceWearinessRelief   int `mapstructure:"peace_weariness_relief"`
	WarOnNeutralPenalty    int `mapstructure:"war_on_neutral_penalty"`
	WarOnFriendlyPenalty   int `mapstructure:"war_on_friendly_penalty"`
	BetrayalPenalty        int `mapstructure:"betrayal_penalty"`
	BetrayalGlobalPenalty  int `mapstructure:"betrayal_global_penalty"`
	HonoredAllianceBonus   int `mapstructure:"honored_alliance_bonus"`
	AllianceFormedBonus    int `mapstructure:"alliance_formed_bonus"`
	BreakAlliancePenalty   int `mapstructure:"break_alliance_penalty"`
}

// HealingConfig holds the three location-based healing tiers.
type HealingConfig struct {
	InSettlement      int `mapstructure:"in_settlement"`
	FriendlyTerritory int `mapstructure:"friendly_territory"`
	Elsewhere         int `mapstructure:"elsewhere"`
}

// SettlementConfig holds settlement combat and founding constants.
type SettlementConfig struct {
	BaseDefense   int `mapstructure:"base_defense"`
	MaxHealth     int `mapstructure:"max_health"`
	QueueCapacity int `mapstructure:"queue_capacity"`
	MinSpacing    int `mapstructure:"min_spacing"`
}

// UnitConfig holds per-type base stats.
type UnitConfig struct {
	CombatStrength     int  `mapstructure:"combat_strength"`
	RangedStrength     int  `mapstructure:"ranged_strength"`
	SettlementStrength int  `mapstructure:"settlement_strength"`
	MaxMovement        int  `mapstructure:"max_movement"`
	MaxHealth          int  `mapstructure:"max_health"`
	Vision             int  `mapstructure:"vision"`
	Civilian           bool `mapstructure:"civilian"`
	Siege              bool `mapstructure:"siege"`
}

// PromotionConfig holds the flat bonuses granted by a promotion.
type PromotionConfig struct {
	AttackBonus  int  `mapstructure:"attack_bonus"`
	DefenseBonus int  `mapstructure:"defense_bonus"`
	Regeneration bool `mapstructure:"regeneration"`
}

// CampConfig holds barbarian camp spawn behavior.
type CampConfig struct {
	SpawnCooldown int    `mapstructure:"spawn_cooldown"`
	SpawnUnitType string `mapstructure:"spawn_unit_type"`
}

// AIConfig holds director thresholds and the personality table.
type AIConfig struct {
	WarStrengthRatio      float64 `mapstructure:"war_strength_ratio"`
	FriendlyWarExtraRatio float64 `mapstructure:"friendly_war_extra_ratio"`
	PeaceStrengthRatio    float64 `mapstructure:"peace_strength_ratio"`
	PeaceWearinessBase    float64 `mapstructure:"peace_weariness_base"`
	MarginalPeaceChance   float64 `mapstructure:"marginal_peace_chance"`
	WarRollChance         float64 `mapstructure:"war_roll_chance"`
	AllianceRollChance    float64 `mapstructure:"alliance_roll_chance"`
	SettlementFloor       int     `mapstructure:"settlement_floor"`
	WonderScoreBar        float64 `mapstructure:"wonder_score_bar"`
	TradeScoreBar         float64 `mapstructure:"trade_score_bar"`
	EraLengthTurns        int     `mapstructure:"era_length_turns"`

	Personalities map[string]PersonalityConfig `mapstructure:"personalities"`
}

// PersonalityConfig parameterizes one AI temperament. Loaded once at startup
// and treated as immutable.
type PersonalityConfig struct {
	Aggression         float64            `mapstructure:"aggression"`
	Peacefulness       float64            `mapstructure:"peacefulness"`
	AllianceSeeking    float64            `mapstructure:"alliance_seeking"`
	WarThresholdMod    float64            `mapstructure:"war_threshold_mod"`
	PeaceThresholdMod  float64            `mapstructure:"peace_threshold_mod"`
	TargetPreference   string             `mapstructure:"target_preference"`
	WearinessTolerance float64            `mapstructure:"weariness_tolerance"`
	MaxWars            int                `mapstructure:"max_wars"`
	MaxAllies          int                `mapstructure:"max_allies"`
	TradeAffinity      float64            `mapstructure:"trade_affinity"`
	CategoryWeights    map[string]float64 `mapstructure:"category_weights"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Movement defaults
	v.SetDefault("game.movement.open_cost", 1)
	v.SetDefault("game.movement.rough_cost", 2)
	v.SetDefault("game.movement.military_stack_cap", 2)
	v.SetDefault("game.movement.civilian_stack_cap", 1)

	// Combat defaults
	v.SetDefault("game.combat.base_damage", 30)
	v.SetDefault("game.combat.forest_defense_pct", 25)
	v.SetDefault("game.combat.jungle_defense_pct", 25)
	v.SetDefault("game.combat.hills_defense_pct", 30)
	v.SetDefault("game.combat.desert_defense_pct", -10)
	v.SetDefault("game.combat.marsh_defense_pct", -15)
	v.SetDefault("game.combat.stacking_defense_pct", 10)
	v.SetDefault("game.combat.adjacency_pct", 5)
	v.SetDefault("game.combat.adjacency_cap_pct", 15)
	v.SetDefault("game.combat.fortification_pct", 10)
	v.SetDefault("game.combat.health_penalty_factor", 0.5)
	v.SetDefault("game.combat.river_crossing_factor", -0.25)
	v.SetDefault("game.combat.combat_xp", 5)
	v.SetDefault("game.combat.kill_xp", 10)
	v.SetDefault("game.combat.xp_per_level", 15)
	v.SetDefault("game.combat.ranged_attack_range", 2)

	// Rarity roll table: common, uncommon, rare, epic, legendary
	v.SetDefault("game.rarity.weights", []int{50, 30, 15, 4, 1})
	v.SetDefault("game.rarity.bonuses", []map[string]int{
		{"combat": 0, "movement": 0, "vision": 0},
		{"combat": 2, "movement": 0, "vision": 0},
		{"combat": 4, "movement": 0, "vision": 1},
		{"combat": 6, "movement": 1, "vision": 1},
		{"combat": 10, "movement": 1, "vision": 2},
	})

	// Diplomacy defaults
	v.SetDefault("game.diplomacy.friendly_threshold", 20)
	v.SetDefault("game.diplomacy.alliance_threshold", 40)
	v.SetDefault("game.diplomacy.min_turns_at_war", 5)
	v.SetDefault("game.diplomacy.peace_rejection_cooldown", 3)
	v.SetDefault("game.diplomacy.hostile_to_neutral_turns", 5)
	v.SetDefault("game.diplomacy.weariness_per_turn", 2)
	v.SetDefault("game.diplomacy.peace_weariness_relief", 20)
	v.SetDefault("game.diplomacy.war_on_neutral_penalty", -10)
	v.SetDefault("game.diplomacy.war_on_friendly_penalty", -25)
	v.SetDefault("game.diplomacy.betrayal_penalty", -50)
	v.SetDefault("game.diplomacy.betrayal_global_penalty", -15)
	v.SetDefault("game.diplomacy.honored_alliance_bonus", 15)
	v.SetDefault("game.diplomacy.alliance_formed_bonus", 20)
	v.SetDefault("game.diplomacy.break_alliance_penalty", -30)

	// Healing tiers
	v.SetDefault("game.healing.in_settlement", 10)
	v.SetDefault("game.healing.friendly_territory", 5)
	v.SetDefault("game.healing.elsewhere", 2)

	// Settlement defaults
	v.SetDefault("game.settlement.base_defense", 25)
	v.SetDefault("game.settlement.max_health", 100)
	v.SetDefault("game.settlement.queue_capacity", 3)
	v.SetDefault("game.settlement.min_spacing", 3)

	// Unit base stats
	v.SetDefault("game.units.warrior", map[string]any{
		"combat_strength": 20, "ranged_strength": 0, "settlement_strength": 10,
		"max_movement": 2, "max_health": 100, "vision": 2,
	})
	v.SetDefault("game.units.spearman", map[string]any{
		"combat_strength": 25, "ranged_strength": 0, "settlement_strength": 12,
		"max_movement": 2, "max_health": 100, "vision": 2,
	})
	v.SetDefault("game.units.archer", map[string]any{
		"combat_strength": 15, "ranged_strength": 25, "settlement_strength": 8,
		"max_movement": 2, "max_health": 100, "vision": 2,
	})
	v.SetDefault("game.units.horseman", map[string]any{
		"combat_strength": 30, "ranged_strength": 0, "settlement_strength": 15,
		"max_movement": 4, "max_health": 100, "vision": 2,
	})
	v.SetDefault("game.units.catapult", map[string]any{
		"combat_strength": 10, "ranged_strength": 0, "settlement_strength": 30,
		"max_movement": 2, "max_health": 100, "vision": 2, "siege": true,
	})
	v.SetDefault("game.units.scout", map[string]any{
		"combat_strength": 10, "ranged_strength": 0, "settlement_strength": 5,
		"max_movement": 3, "max_health": 100, "vision": 3,
	})
	v.SetDefault("game.units.raider", map[string]any{
		"combat_strength": 15, "ranged_strength": 0, "settlement_strength": 8,
		"max_movement": 2, "max_health": 100, "vision": 2,
	})
	v.SetDefault("game.units.settler", map[string]any{
		"combat_strength": 0, "ranged_strength": 0, "settlement_strength": 0,
		"max_movement": 2, "max_health": 100, "vision": 2, "civilian": true,
	})
	v.SetDefault("game.units.builder", map[string]any{
		"combat_strength": 0, "ranged_strength": 0, "settlement_strength": 0,
		"max_movement": 2, "max_health": 100, "vision": 2, "civilian": true,
	})

	// Promotions
	v.SetDefault("game.promotions.assault", map[string]any{"attack_bonus": 5})
	v.SetDefault("game.promotions.bulwark", map[string]any{"defense_bonus": 5})
	v.SetDefault("game.promotions.vanguard", map[string]any{"attack_bonus": 3, "defense_bonus": 3})
	v.SetDefault("game.promotions.regeneration", map[string]any{"regeneration": true})

	// Camps
	v.SetDefault("game.camps.spawn_cooldown", 8)
	v.SetDefault("game.camps.spawn_unit_type", "raider")

	// AI defaults
	v.SetDefault("ai.war_strength_ratio", 1.3)
	v.SetDefault("ai.friendly_war_extra_ratio", 0.4)
	v.SetDefault("ai.peace_strength_ratio", 1.5)
	v.SetDefault("ai.peace_weariness_base", 50)
	v.SetDefault("ai.marginal_peace_chance", 0.15)
	v.SetDefault("ai.war_roll_chance", 0.4)
	v.SetDefault("ai.alliance_roll_chance", 0.3)
	v.SetDefault("ai.settlement_floor", 2)
	v.SetDefault("ai.wonder_score_bar", 0.5)
	v.SetDefault("ai.trade_score_bar", 4.0)
	v.SetDefault("ai.era_length_turns", 50)

	// Personality table. Multipliers are relative to 1.0 = neutral.
	v.SetDefault("ai.personalities.aggressive", map[string]any{
		"aggression": 1.6, "peacefulness": 0.5, "alliance_seeking": 0.6,
		"war_threshold_mod": -0.2, "peace_threshold_mod": 0.3,
		"target_preference": "weakest", "weariness_tolerance": 1.5,
		"max_wars": 2, "max_allies": 1, "trade_affinity": 0.2,
		"category_weights": map[string]float64{"military": 1.5, "economy": 0.8, "culture": 0.7, "science": 0.9, "production": 1.0},
	})
	v.SetDefault("ai.personalities.defensive", map[string]any{
		"aggression": 0.6, "peacefulness": 1.4, "alliance_seeking": 1.2,
		"war_threshold_mod": 0.4, "peace_threshold_mod": -0.2,
		"target_preference": "closest", "weariness_tolerance": 0.7,
		"max_wars": 1, "max_allies": 2, "trade_affinity": 0.4,
		"category_weights": map[string]float64{"military": 1.1, "economy": 1.0, "culture": 1.0, "science": 1.0, "production": 1.1},
	})
	v.SetDefault("ai.personalities.expansionist", map[string]any{
		"aggression": 1.1, "peacefulness": 0.9, "alliance_seeking": 0.8,
		"war_threshold_mod": 0.0, "peace_threshold_mod": 0.0,
		"target_preference": "closest", "weariness_tolerance": 1.0,
		"max_wars": 1, "max_allies": 1, "trade_affinity": 0.3,
		"category_weights": map[string]float64{"military": 0.9, "economy": 1.2, "culture": 0.8, "science": 1.0, "production": 1.3},
	})
	v.SetDefault("ai.personalities.trader", map[string]any{
		"aggression": 0.4, "peacefulness": 1.5, "alliance_seeking": 1.5,
		"war_threshold_mod": 0.6, "peace_threshold_mod": -0.3,
		"target_preference": "weakest", "weariness_tolerance": 0.5,
		"max_wars": 1, "max_allies": 3, "trade_affinity": 0.8,
		"category_weights": map[string]float64{"military": 0.7, "economy": 1.5, "culture": 1.1, "science": 1.1, "production": 0.9},
	})
	v.SetDefault("ai.personalities.balanced", map[string]any{
		"aggression": 1.0, "peacefulness": 1.0, "alliance_seeking": 1.0,
		"war_threshold_mod": 0.0, "peace_threshold_mod": 0.0,
		"target_preference": "strongest", "weariness_tolerance": 1.0,
		"max_wars": 1, "max_allies": 2, "trade_affinity": 0.4,
		"category_weights": map[string]float64{"military": 1.0, "economy": 1.0, "culture": 1.0, "science": 1.0, "production": 1.0},
	})

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/tribesim")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("TRIBESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.Movement.OpenCost < 1 {
		return fmt.Errorf("game.movement.open_cost must be at least 1")
	}
	if c.Game.Movement.RoughCost < c.Game.Movement.OpenCost {
		return fmt.Errorf("game.movement.rough_cost must be >= open_cost")
	}
	if c.Game.Movement.MilitaryStackCap < 1 || c.Game.Movement.CivilianStackCap < 1 {
		return fmt.Errorf("game.movement stack caps must be at least 1")
	}

	if c.Game.Combat.BaseDamage <= 0 {
		return fmt.Errorf("game.combat.base_damage must be positive")
	}
	if c.Game.Combat.AdjacencyCapPct < c.Game.Combat.AdjacencyPct {
		return fmt.Errorf("game.combat.adjacency_cap_pct must be >= adjacency_pct")
	}
	if c.Game.Combat.HealthPenaltyFactor < 0 || c.Game.Combat.HealthPenaltyFactor > 1 {
		return fmt.Errorf("game.combat.health_penalty_factor must be between 0 and 1")
	}
	if c.Game.Combat.RiverCrossingFactor > 0 {
		return fmt.Errorf("game.combat.river_crossing_factor must not be positive")
	}
	if c.Game.Combat.XPPerLevel <= 0 {
		return fmt.Errorf("game.combat.xp_per_level must be positive")
	}
	if c.Game.Combat.RangedAttackRange < 1 {
		return fmt.Errorf("game.combat.ranged_attack_range must be at least 1")
	}

	if len(c.Game.Rarity.Weights) == 0 || len(c.Game.Rarity.Weights) != len(c.Game.Rarity.Bonuses) {
		return fmt.Errorf("game.rarity.weights and bonuses must be non-empty and the same length")
	}
	total := 0
	for i, w := range c.Game.Rarity.Weights {
		if w < 0 {
			return fmt.Errorf("game.rarity.weights[%d] must be non-negative", i)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("game.rarity.weights must sum to a positive total")
	}

	if c.Game.Diplomacy.MinTurnsAtWar < 0 {
		return fmt.Errorf("game.diplomacy.min_turns_at_war must be non-negative")
	}
	if c.Game.Diplomacy.PeaceRejectionCooldown < 0 {
		return fmt.Errorf("game.diplomacy.peace_rejection_cooldown must be non-negative")
	}
	if c.Game.Diplomacy.HostileToNeutralTurns < 1 {
		return fmt.Errorf("game.diplomacy.hostile_to_neutral_turns must be at least 1")
	}

	if c.Game.Settlement.BaseDefense <= 0 {
		return fmt.Errorf("game.settlement.base_defense must be positive")
	}
	if c.Game.Settlement.MaxHealth <= 0 {
		return fmt.Errorf("game.settlement.max_health must be positive")
	}
	if c.Game.Settlement.QueueCapacity < 1 {
		return fmt.Errorf("game.settlement.queue_capacity must be at least 1")
	}

	for name, u := range c.Game.Units {
		if u.CombatStrength < 0 || u.RangedStrength < 0 || u.SettlementStrength < 0 {
			return fmt.Errorf("game.units.%s strengths must be non-negative", name)
		}
		if u.MaxMovement < 1 {
			return fmt.Errorf("game.units.%s.max_movement must be at least 1", name)
		}
		if u.MaxHealth < 1 {
			return fmt.Errorf("game.units.%s.max_health must be at least 1", name)
		}
	}

	for name, p := range c.AI.Personalities {
		switch p.TargetPreference {
		case "weakest", "strongest", "closest":
		default:
			return fmt.Errorf("ai.personalities.%s.target_preference must be weakest, strongest or closest", name)
		}
		if p.WearinessTolerance <= 0 {
			return fmt.Errorf("ai.personalities.%s.weariness_tolerance must be positive", name)
		}
		if p.MaxWars < 0 || p.MaxAllies < 0 {
			return fmt.Errorf("ai.personalities.%s war/ally caps must be non-negative", name)
		}
	}

	if c.AI.EraLengthTurns < 1 {
		return fmt.Errorf("ai.era_length_turns must be at least 1")
	}

	return nil
}
