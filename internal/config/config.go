// Package config loads simulation settings from an optional JSON file with
// sane defaults, so every binary runs without any file present.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/aldenmott/stagfall/internal/sim"
)

// Config is the full settings tree for the simulation binaries.
type Config struct {
	LogLevel string         `json:"logLevel" mapstructure:"logLevel"`
	Sim      SimSettings    `json:"sim" mapstructure:"sim"`
	Player   PlayerSettings `json:"player" mapstructure:"player"`
	World    WorldSettings  `json:"world" mapstructure:"world"`
	Serve    ServeSettings  `json:"serve" mapstructure:"serve"`
	// Spawns maps enemy type names to how many to place at startup.
	Spawns map[string]int `json:"spawns" mapstructure:"spawns"`
}

// SimSettings tune the clock and roster behavior.
type SimSettings struct {
	Seed       int64   `json:"seed" mapstructure:"seed"`
	TickRate   int     `json:"tickRate" mapstructure:"tickRate"`
	CorpseTime float64 `json:"corpseTime" mapstructure:"corpseTime"`
	VerboseLog bool    `json:"verboseLog" mapstructure:"verboseLog"`
}

// PlayerSettings pick the player's loadout.
type PlayerSettings struct {
	Weapon      string `json:"weapon" mapstructure:"weapon"`
	ReserveAmmo int    `json:"reserveAmmo" mapstructure:"reserveAmmo"`
}

// WorldSettings tune seeded object generation.
type WorldSettings struct {
	Trees       int     `json:"trees" mapstructure:"trees"`
	Stones      int     `json:"stones" mapstructure:"stones"`
	HalfExtent  float64 `json:"halfExtent" mapstructure:"halfExtent"`
	ClearRadius float64 `json:"clearRadius" mapstructure:"clearRadius"`
}

// ServeSettings configure the snapshot stream server.
type ServeSettings struct {
	ListenAddr string `json:"listenAddr" mapstructure:"listenAddr"`
	// SnapshotEvery is the tick interval between broadcast snapshots.
	SnapshotEvery int `json:"snapshotEvery" mapstructure:"snapshotEvery"`
}

// Load reads stagfall.cfg.json from configDir, falling back to defaults when
// the file is absent. A present-but-broken file is an error.
func Load(configDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logLevel", "info")

	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.tickRate", 60)
	v.SetDefault("sim.corpseTime", 0.0)
	v.SetDefault("sim.verboseLog", false)

	v.SetDefault("player.weapon", "rifle")
	v.SetDefault("player.reserveAmmo", 90)

	v.SetDefault("world.trees", 60)
	v.SetDefault("world.stones", 25)
	v.SetDefault("world.halfExtent", 120.0)
	v.SetDefault("world.clearRadius", 10.0)

	v.SetDefault("serve.listenAddr", ":8844")
	v.SetDefault("serve.snapshotEvery", 3)

	v.SetDefault("spawns", map[string]int{"grunt": 4, "scout": 2})

	v.SetConfigName("stagfall.cfg.json")
	v.AddConfigPath(configDir)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// SimConfig converts the loaded settings into a sim.SimConfig.
func (c *Config) SimConfig() (sim.SimConfig, error) {
	weapon, err := ParseWeaponType(c.Player.Weapon)
	if err != nil {
		return sim.SimConfig{}, err
	}
	out := sim.DefaultSimConfig()
	out.Seed = c.Sim.Seed
	out.TickRate = c.Sim.TickRate
	out.CorpseTime = c.Sim.CorpseTime
	out.Verbose = c.Sim.VerboseLog
	out.PlayerWeapon = weapon
	out.PlayerReserveAmmo = c.Player.ReserveAmmo
	out.WorldGen = sim.WorldGenConfig{
		Trees:       c.World.Trees,
		Stones:      c.World.Stones,
		HalfExtent:  c.World.HalfExtent,
		ClearRadius: c.World.ClearRadius,
	}
	return out, nil
}

// SpawnList expands the spawn table into concrete enemy types. Unknown names
// are an error, matching the fail-fast policy on type tables.
func (c *Config) SpawnList() ([]sim.EnemyType, error) {
	var out []sim.EnemyType
	for name, count := range c.Spawns {
		typ, err := ParseEnemyType(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			out = append(out, typ)
		}
	}
	return out, nil
}

// ParseWeaponType resolves a weapon name from config.
func ParseWeaponType(name string) (sim.WeaponType, error) {
	for _, t := range []sim.WeaponType{
		sim.WeaponPistol, sim.WeaponRifle, sim.WeaponShotgun, sim.WeaponSMG, sim.WeaponSniper,
	} {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown weapon type %q", name)
}

// ParseEnemyType resolves an enemy type name from config.
func ParseEnemyType(name string) (sim.EnemyType, error) {
	for _, t := range sim.AllEnemyTypes() {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown enemy type %q", name)
}
