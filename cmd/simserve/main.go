package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aldenmott/stagfall/internal/config"
	"github.com/aldenmott/stagfall/internal/sim"
	"github.com/aldenmott/stagfall/internal/stream"
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

	b := stream.NewBroadcaster(s.ObjectSnapshots(), logger.With().Str("component", "stream").Logger())
	defer b.Close()

	mux := http.NewServeMux()
	mux.Handle("/ws", b.Handler())
	srv := &http.Server{
		Addr:              cfg.Serve.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Serve.ListenAddr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The server drives the player as a stationary sentinel that returns
	// fire, so spectators get a fight instead of an execution.
	in := sim.Input{Aim: true, Fire: true}
	ticker := time.NewTicker(time.Second / time.Duration(simCfg.TickRate))
	defer ticker.Stop()

	logger.Info().
		Int("enemies", s.Enemies.EnemyCount()).
		Int("tick_rate", simCfg.TickRate).
		Int("snapshot_every", cfg.Serve.SnapshotEvery).
		Msg("simulation running")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		case <-ticker.C:
			s.Step(in)
			if cfg.Serve.SnapshotEvery > 0 && s.Tick()%cfg.Serve.SnapshotEvery == 0 {
				b.Broadcast(s.Snapshot())
			}
		}
	}
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
