// Package view is a top-down debug viewer for the simulation: agents, patrol
// routes, alert rings and the static field, drawn from snapshots. It exists
// for eyeballing behavior; the simulation itself never depends on it.
package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/aldenmott/stagfall/internal/sim"
)

const (
	screenW = 1280
	screenH = 800
	// pixels per world unit
	viewScale = 5.0
)

var stateColors = map[string]color.RGBA{
	"patrolling":    {R: 90, G: 160, B: 90, A: 255},
	"investigating": {R: 200, G: 200, B: 80, A: 255},
	"chasing":       {R: 230, G: 150, B: 60, A: 255},
	"attacking":     {R: 230, G: 70, B: 70, A: 255},
	"taking_cover":  {R: 90, G: 140, B: 220, A: 255},
	"reloading":     {R: 170, G: 110, B: 220, A: 255},
	"flanking":      {R: 240, G: 110, B: 160, A: 255},
	"retreating":    {R: 120, G: 200, B: 220, A: 255},
	"dead":          {R: 70, G: 70, B: 70, A: 255},
}

// App drives one simulation under the ebiten loop, sampling the keyboard into
// controller input each tick.
type App struct {
	sim     *sim.Sim
	objects []sim.ObjectSnapshot
}

// New wraps a constructed simulation.
func New(s *sim.Sim) *App {
	return &App{sim: s, objects: s.ObjectSnapshots()}
}

// Update samples input and advances the simulation one tick.
func (a *App) Update() error {
	a.sim.Step(a.readInput())
	return nil
}

func (a *App) readInput() sim.Input {
	return sim.Input{
		Forward:  ebiten.IsKeyPressed(ebiten.KeyW),
		Backward: ebiten.IsKeyPressed(ebiten.KeyS),
		Left:     ebiten.IsKeyPressed(ebiten.KeyA),
		Right:    ebiten.IsKeyPressed(ebiten.KeyD),
		Run:      ebiten.IsKeyPressed(ebiten.KeyShift),
		Crouch:   ebiten.IsKeyPressed(ebiten.KeyControl),
		Prone:    ebiten.IsKeyPressed(ebiten.KeyZ),
		Jump:     ebiten.IsKeyPressed(ebiten.KeySpace),
		Aim:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Fire:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Reload:   ebiten.IsKeyPressed(ebiten.KeyR),
	}
}

// worldToScreen centers the camera on the player.
func (a *App) worldToScreen(snap sim.Snapshot, x, z float64) (float32, float32) {
	sx := (x-snap.Player.Pos.X)*viewScale + screenW/2
	sy := (z-snap.Player.Pos.Z)*viewScale + screenH/2
	return float32(sx), float32(sy)
}

// Draw renders the current snapshot.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 30, B: 24, A: 255})
	snap := a.sim.Snapshot()

	for _, o := range a.objects {
		x, y := a.worldToScreen(snap, o.Pos.X, o.Pos.Z)
		col := color.RGBA{R: 60, G: 110, B: 60, A: 255}
		if o.Kind == "stone" {
			col = color.RGBA{R: 110, G: 110, B: 110, A: 255}
		}
		vector.FillCircle(screen, x, y, float32(o.Radius*viewScale), col, false)
	}

	for _, e := range a.sim.Enemies.AliveEnemies() {
		a.drawEnemy(screen, snap, e)
	}
	a.drawPlayer(screen, snap)
	a.drawHUD(screen, snap)
}

func (a *App) drawEnemy(screen *ebiten.Image, snap sim.Snapshot, e *sim.Enemy) {
	x, y := a.worldToScreen(snap, e.Pos.X, e.Pos.Z)
	col, ok := stateColors[e.State.String()]
	if !ok {
		col = color.RGBA{R: 255, B: 255, A: 255}
	}

	// Patrol route, faint.
	path := e.PatrolPath()
	for i := range path {
		x0, y0 := a.worldToScreen(snap, path[i].X, path[i].Z)
		next := path[(i+1)%len(path)]
		x1, y1 := a.worldToScreen(snap, next.X, next.Z)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1.0,
			color.RGBA{R: 70, G: 90, B: 70, A: 120}, false)
	}

	// Alert ring grows with alert level.
	if e.Alert > 0 {
		vector.StrokeCircle(screen, x, y, float32(4+e.Alert*10), 1.0,
			color.RGBA{R: 230, G: 80, B: 80, A: uint8(60 + e.Alert*150)}, false)
	}

	vector.FillCircle(screen, x, y, 4, col, false)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s %s", e.Label(), e.State), int(x)+6, int(y)-6)
}

func (a *App) drawPlayer(screen *ebiten.Image, snap sim.Snapshot) {
	x, y := a.worldToScreen(snap, snap.Player.Pos.X, snap.Player.Pos.Z)
	vector.FillCircle(screen, x, y, 5, color.RGBA{R: 80, G: 170, B: 240, A: 255}, false)
}

func (a *App) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	hud := fmt.Sprintf(
		"T=%d  %s\nhp %.0f  stamina %.0f\nammo %d/%d\nenemies alive: %d",
		snap.Tick, snap.Player.State,
		snap.Player.Health, snap.Player.Stamina,
		snap.Player.Ammo, snap.Player.Reserve,
		a.sim.Enemies.EnemyCount(),
	)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}

// Layout implements ebiten.Game.
func (a *App) Layout(int, int) (int, int) {
	return screenW, screenH
}
