package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/aldenmott/stagfall/internal/config"
	"github.com/aldenmott/stagfall/internal/sim"
	"github.com/aldenmott/stagfall/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}
	s := sim.NewSim(simCfg, logger)

	spawns, err := cfg.SpawnList()
	if err != nil {
		return err
	}
	placeSpawns(s, spawns, simCfg.Seed)
	logger.Info().Int("enemies", s.Enemies.EnemyCount()).Msg("world ready")

	ebiten.SetWindowTitle("Stagfall")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetTPS(simCfg.TickRate)
	return ebiten.RunGame(view.New(s))
}

// placeSpawns scatters the configured enemies on a ring around the player,
// outside every type's vision radius so the fight starts cold.
func placeSpawns(s *sim.Sim, spawns []sim.EnemyType, seed int64) {
	rng := rand.New(rand.NewSource(seed + 3)) // #nosec G404 -- placement only
	for _, typ := range spawns {
		angle := rng.Float64() * 2 * math.Pi
		radius := 60 + rng.Float64()*40
		s.Enemies.SpawnEnemy(typ, sim.Vec3{
			X: math.Cos(angle) * radius,
			Z: math.Sin(angle) * radius,
		})
	}
}
