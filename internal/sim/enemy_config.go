package sim

import (
	"fmt"
	"math"
)

// EnemyType keys the closed per-type tuning table.
type EnemyType int

const (
	EnemyGrunt EnemyType = iota
	EnemyScout
	EnemyRaider
	EnemyHeavy
	EnemyMarksman
	EnemyCutthroat
	EnemyHound
	EnemyWarlord
	EnemyDeserter
	EnemyRobot
	enemyTypeCount
)

func (t EnemyType) String() string {
	switch t {
	case EnemyGrunt:
		return "grunt"
	case EnemyScout:
		return "scout"
	case EnemyRaider:
		return "raider"
	case EnemyHeavy:
		return "heavy"
	case EnemyMarksman:
		return "marksman"
	case EnemyCutthroat:
		return "cutthroat"
	case EnemyHound:
		return "hound"
	case EnemyWarlord:
		return "warlord"
	case EnemyDeserter:
		return "deserter"
	case EnemyRobot:
		return "robot"
	default:
		return "unknown"
	}
}

// BehaviorKind selects the behavior-specific transitions layered on the
// shared state machine.
type BehaviorKind int

const (
	// BehaviorAggressive closes and fires, no special transitions.
	BehaviorAggressive BehaviorKind = iota
	// BehaviorTactical flanks from chase and breaks to cover at low health.
	BehaviorTactical
	// BehaviorCoward retreats below 30% health until recovered.
	BehaviorCoward
	// BehaviorSniper opens fire from 80% of optimal range.
	BehaviorSniper
	// BehaviorMelee closes to contact; damage is the flat configured value.
	BehaviorMelee
)

func (b BehaviorKind) String() string {
	switch b {
	case BehaviorAggressive:
		return "aggressive"
	case BehaviorTactical:
		return "tactical"
	case BehaviorCoward:
		return "coward"
	case BehaviorSniper:
		return "sniper"
	case BehaviorMelee:
		return "melee"
	default:
		return "unknown"
	}
}

// EnemyMovement is per-type locomotion tuning.
type EnemyMovement struct {
	WalkSpeed     float64 // patrol / investigate, units per second
	RunSpeed      float64 // chase / flank / retreat
	RotationSpeed float64 // radians per second
	Acceleration  float64 // velocity lerp rate, 1/s
}

// EnemyCombat is per-type weapon tuning. FireInterval/MagazineSize/
// ReloadTime feed the shared Weapon state machine.
type EnemyCombat struct {
	Damage       float64
	Accuracy     float64 // base hit probability at point blank, [0,1]
	OptimalRange float64 // preferred engagement distance
	MaxRange     float64 // beyond this, no fire and chase resumes
	FireInterval float64 // seconds between shots
	BurstLength  int     // consecutive shots before the enforced pause
	MagazineSize int
	ReserveAmmo  int
	ReloadTime   float64
}

// EnemyAI is per-type perception and disposition tuning.
type EnemyAI struct {
	AlertRadius       float64 // vision range
	HearingRadius     float64 // hears a running player inside this
	FieldOfView       float64 // radians, full arc
	Behavior          BehaviorKind
	Teamwork          float64 // [0,1]; >0.5 shares intel, >0.7 coordinates flanks
	InvestigationTime float64 // seconds spent at a last-known position
	MemoryDuration    float64 // seconds a lost target stays "chased"
}

// LootDrop is one entry of a reward table.
type LootDrop struct {
	Item   string
	Chance float64
}

// EnemyReward is granted on kill. Consumed by the (external) progression
// layer; the core only carries it.
type EnemyReward struct {
	XP   int
	Loot []LootDrop
}

// EnemyConfig is the full immutable per-type record. Only health.Current on
// the agent itself changes after spawn.
type EnemyConfig struct {
	Type        EnemyType
	Health      float64
	HealthRegen float64 // per second, enemies regen without a delay
	Armor       Armor
	Movement    EnemyMovement
	Combat      EnemyCombat
	AI          EnemyAI
	Reward      EnemyReward
}

func deg(d float64) float64 { return d * math.Pi / 180 }

// enemyConfigs is the closed tuning table, indexed by EnemyType.
var enemyConfigs = [enemyTypeCount]EnemyConfig{
	EnemyGrunt: {
		Type:     EnemyGrunt,
		Health:   50,
		Movement: EnemyMovement{WalkSpeed: 2.0, RunSpeed: 4.5, RotationSpeed: 3.0, Acceleration: 8},
		Combat:   EnemyCombat{Damage: 8, Accuracy: 0.55, OptimalRange: 12, MaxRange: 25, FireInterval: 0.5, BurstLength: 3, MagazineSize: 12, ReserveAmmo: 48, ReloadTime: 2.5},
		AI:       EnemyAI{AlertRadius: 20, HearingRadius: 30, FieldOfView: deg(120), Behavior: BehaviorAggressive, Teamwork: 0.3, InvestigationTime: 8, MemoryDuration: 5},
		Reward:   EnemyReward{XP: 10, Loot: []LootDrop{{Item: "scrap", Chance: 0.6}, {Item: "pistol_ammo", Chance: 0.4}}},
	},
	EnemyScout: {
		Type:     EnemyScout,
		Health:   35,
		Movement: EnemyMovement{WalkSpeed: 3.0, RunSpeed: 6.5, RotationSpeed: 4.0, Acceleration: 10},
		Combat:   EnemyCombat{Damage: 6, Accuracy: 0.50, OptimalRange: 15, MaxRange: 28, FireInterval: 0.35, BurstLength: 2, MagazineSize: 10, ReserveAmmo: 40, ReloadTime: 2.0},
		AI:       EnemyAI{AlertRadius: 30, HearingRadius: 45, FieldOfView: deg(140), Behavior: BehaviorAggressive, Teamwork: 0.6, InvestigationTime: 6, MemoryDuration: 8},
		Reward:   EnemyReward{XP: 12, Loot: []LootDrop{{Item: "cloth", Chance: 0.5}, {Item: "bandage", Chance: 0.3}}},
	},
	EnemyRaider: {
		Type:     EnemyRaider,
		Health:   70,
		Armor:    Armor{Chest: 20},
		Movement: EnemyMovement{WalkSpeed: 2.2, RunSpeed: 5.0, RotationSpeed: 3.0, Acceleration: 8},
		Combat:   EnemyCombat{Damage: 12, Accuracy: 0.60, OptimalRange: 14, MaxRange: 30, FireInterval: 0.4, BurstLength: 4, MagazineSize: 20, ReserveAmmo: 80, ReloadTime: 2.8},
		AI:       EnemyAI{AlertRadius: 25, HearingRadius: 35, FieldOfView: deg(120), Behavior: BehaviorAggressive, Teamwork: 0.6, InvestigationTime: 8, MemoryDuration: 7},
		Reward:   EnemyReward{XP: 18, Loot: []LootDrop{{Item: "rifle_ammo", Chance: 0.5}, {Item: "scrap", Chance: 0.5}}},
	},
	EnemyHeavy: {
		Type:     EnemyHeavy,
		Health:   140,
		Armor:    Armor{Head: 30, Chest: 50, Legs: 25},
		Movement: EnemyMovement{WalkSpeed: 1.4, RunSpeed: 3.0, RotationSpeed: 2.0, Acceleration: 5},
		Combat:   EnemyCombat{Damage: 15, Accuracy: 0.55, OptimalRange: 10, MaxRange: 22, FireInterval: 0.15, BurstLength: 8, MagazineSize: 60, ReserveAmmo: 180, ReloadTime: 4.0},
		AI:       EnemyAI{AlertRadius: 22, HearingRadius: 30, FieldOfView: deg(100), Behavior: BehaviorAggressive, Teamwork: 0.5, InvestigationTime: 10, MemoryDuration: 10},
		Reward:   EnemyReward{XP: 35, Loot: []LootDrop{{Item: "armor_plate", Chance: 0.4}, {Item: "rifle_ammo", Chance: 0.6}}},
	},
	EnemyMarksman: {
		Type:     EnemyMarksman,
		Health:   45,
		Movement: EnemyMovement{WalkSpeed: 2.0, RunSpeed: 4.0, RotationSpeed: 2.5, Acceleration: 7},
		Combat:   EnemyCombat{Damage: 40, Accuracy: 0.80, OptimalRange: 40, MaxRange: 60, FireInterval: 2.2, BurstLength: 1, MagazineSize: 5, ReserveAmmo: 25, ReloadTime: 3.5},
		AI:       EnemyAI{AlertRadius: 50, HearingRadius: 40, FieldOfView: deg(90), Behavior: BehaviorSniper, Teamwork: 0.2, InvestigationTime: 12, MemoryDuration: 15},
		Reward:   EnemyReward{XP: 30, Loot: []LootDrop{{Item: "sniper_ammo", Chance: 0.5}, {Item: "scope", Chance: 0.1}}},
	},
	EnemyCutthroat: {
		Type:     EnemyCutthroat,
		Health:   60,
		Movement: EnemyMovement{WalkSpeed: 2.5, RunSpeed: 6.0, RotationSpeed: 4.0, Acceleration: 10},
		Combat:   EnemyCombat{Damage: 20, Accuracy: 0.85, OptimalRange: 1.5, MaxRange: 2.0, FireInterval: 0.9, BurstLength: 0, MagazineSize: 1, ReserveAmmo: 0, ReloadTime: 0},
		AI:       EnemyAI{AlertRadius: 18, HearingRadius: 35, FieldOfView: deg(130), Behavior: BehaviorMelee, Teamwork: 0.4, InvestigationTime: 6, MemoryDuration: 6},
		Reward:   EnemyReward{XP: 15, Loot: []LootDrop{{Item: "knife", Chance: 0.2}, {Item: "cloth", Chance: 0.6}}},
	},
	EnemyHound: {
		Type:     EnemyHound,
		Health:   40,
		Movement: EnemyMovement{WalkSpeed: 3.5, RunSpeed: 8.0, RotationSpeed: 5.0, Acceleration: 14},
		Combat:   EnemyCombat{Damage: 12, Accuracy: 0.90, OptimalRange: 1.2, MaxRange: 1.6, FireInterval: 0.7, BurstLength: 0, MagazineSize: 1, ReserveAmmo: 0, ReloadTime: 0},
		AI:       EnemyAI{AlertRadius: 25, HearingRadius: 50, FieldOfView: deg(160), Behavior: BehaviorMelee, Teamwork: 0.8, InvestigationTime: 4, MemoryDuration: 6},
		Reward:   EnemyReward{XP: 8, Loot: []LootDrop{{Item: "hide", Chance: 0.7}}},
	},
	EnemyWarlord: {
		Type:        EnemyWarlord,
		Health:      100,
		HealthRegen: 1.0,
		Armor:       Armor{Head: 20, Chest: 35, Legs: 15},
		Movement:    EnemyMovement{WalkSpeed: 2.2, RunSpeed: 4.8, RotationSpeed: 3.2, Acceleration: 8},
		Combat:      EnemyCombat{Damage: 14, Accuracy: 0.70, OptimalRange: 16, MaxRange: 32, FireInterval: 0.3, BurstLength: 4, MagazineSize: 30, ReserveAmmo: 120, ReloadTime: 2.6},
		AI:          EnemyAI{AlertRadius: 28, HearingRadius: 38, FieldOfView: deg(120), Behavior: BehaviorTactical, Teamwork: 0.9, InvestigationTime: 9, MemoryDuration: 12},
		Reward:      EnemyReward{XP: 50, Loot: []LootDrop{{Item: "rifle", Chance: 0.3}, {Item: "armor_plate", Chance: 0.4}}},
	},
	EnemyDeserter: {
		Type:        EnemyDeserter,
		Health:      55,
		HealthRegen: 2.0,
		Movement:    EnemyMovement{WalkSpeed: 2.0, RunSpeed: 5.5, RotationSpeed: 3.5, Acceleration: 9},
		Combat:      EnemyCombat{Damage: 9, Accuracy: 0.45, OptimalRange: 13, MaxRange: 26, FireInterval: 0.45, BurstLength: 3, MagazineSize: 15, ReserveAmmo: 45, ReloadTime: 2.4},
		AI:          EnemyAI{AlertRadius: 24, HearingRadius: 36, FieldOfView: deg(130), Behavior: BehaviorCoward, Teamwork: 0.3, InvestigationTime: 5, MemoryDuration: 6},
		Reward:      EnemyReward{XP: 12, Loot: []LootDrop{{Item: "rations", Chance: 0.5}, {Item: "scrap", Chance: 0.4}}},
	},
	EnemyRobot: {
		Type:     EnemyRobot,
		Health:   100,
		Armor:    Armor{Head: 50, Chest: 70, Legs: 40},
		Movement: EnemyMovement{WalkSpeed: 1.8, RunSpeed: 3.5, RotationSpeed: 2.5, Acceleration: 6},
		Combat:   EnemyCombat{Damage: 18, Accuracy: 0.75, OptimalRange: 18, MaxRange: 35, FireInterval: 0.2, BurstLength: 6, MagazineSize: 50, ReserveAmmo: 200, ReloadTime: 3.0},
		AI:       EnemyAI{AlertRadius: 35, HearingRadius: 25, FieldOfView: deg(110), Behavior: BehaviorTactical, Teamwork: 0.8, InvestigationTime: 15, MemoryDuration: 20},
		Reward:   EnemyReward{XP: 60, Loot: []LootDrop{{Item: "electronics", Chance: 0.8}, {Item: "metal", Chance: 0.6}}},
	},
}

// EnemyConfigFor returns the static tuning for an enemy type. An unknown
// type is a static configuration bug: panic rather than limp along.
func EnemyConfigFor(t EnemyType) *EnemyConfig {
	if t < 0 || t >= enemyTypeCount {
		panic(fmt.Sprintf("sim: unknown enemy type %d", t))
	}
	return &enemyConfigs[t]
}

// AllEnemyTypes lists every defined type, in table order.
func AllEnemyTypes() []EnemyType {
	out := make([]EnemyType, 0, enemyTypeCount)
	for t := EnemyType(0); t < enemyTypeCount; t++ {
		out = append(out, t)
	}
	return out
}
