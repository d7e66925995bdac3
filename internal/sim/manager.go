package sim

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
)

const (
	patrolWaypointsMin  = 3
	patrolWaypointsSpan = 4 // waypoint count uniform in [min, min+span)
	patrolRadiusMin     = 5.0
	patrolRadiusSpan    = 15.0
)

// Manager owns the enemy roster: spawning, the per-tick bulk update, dead
// sweeps, and spatial queries. Linear scans throughout — the roster is tens
// of agents, not thousands.
type Manager struct {
	enemies []*Enemy
	nextID  int

	// CorpseTime is how long a dead enemy stays on the roster before the
	// sweep removes it. Zero sweeps on the next update, matching the
	// original's immediate removal.
	CorpseTime float64

	rng   *rand.Rand
	sched *Scheduler
	sound SoundPlayer
	log   zerolog.Logger
}

// NewManager creates an empty roster with its own seeded RNG and event
// scheduler.
func NewManager(seed int64, sound SoundPlayer, log zerolog.Logger) *Manager {
	return &Manager{
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation only
		sched: NewScheduler(),
		sound: sound,
		log:   log,
	}
}

// Scheduler exposes the deferred-event queue, mainly for tests.
func (m *Manager) Scheduler() *Scheduler { return m.sched }

// SpawnEnemy constructs a full-health enemy of the given type at pos with a
// procedurally generated patrol loop around its spawn point. Unknown types
// panic via the config table.
func (m *Manager) SpawnEnemy(t EnemyType, pos Vec3) *Enemy {
	id := m.nextID
	m.nextID++
	e := newEnemy(id, t, pos, m.generatePatrol(pos), m.rng, m.sched, m.sound)
	m.enemies = append(m.enemies, e)
	m.log.Debug().
		Str("uid", e.UID.String()).
		Str("type", t.String()).
		Float64("x", pos.X).Float64("z", pos.Z).
		Msg("enemy spawned")
	return e
}

// generatePatrol builds 3–6 waypoints at randomized angle/radius around the
// spawn point, visited in a fixed cyclic order.
func (m *Manager) generatePatrol(around Vec3) []Vec3 {
	n := patrolWaypointsMin + m.rng.Intn(patrolWaypointsSpan)
	path := make([]Vec3, 0, n)
	for i := 0; i < n; i++ {
		angle := m.rng.Float64() * 2 * math.Pi
		radius := patrolRadiusMin + m.rng.Float64()*patrolRadiusSpan
		path = append(path, Vec3{
			X: around.X + math.Cos(angle)*radius,
			Y: around.Y,
			Z: around.Z + math.Sin(angle)*radius,
		})
	}
	return path
}

// UpdateEnemies runs one tick over the whole roster, then sweeps expired
// corpses. Every agent sees the full live roster for teamwork queries, and
// each agent's update completes before the next begins.
func (m *Manager) UpdateEnemies(dt, now float64, player *Player) {
	m.sched.Run(now, m.byID)

	for _, e := range m.enemies {
		if e.State == StateDead {
			continue
		}
		wasAlive := e.Health.Current > 0
		e.Update(dt, now, player, m.enemies)
		if wasAlive && e.State == StateDead {
			m.logDeath(e)
		}
	}

	kept := m.enemies[:0]
	for _, e := range m.enemies {
		if e.State == StateDead && now-e.diedAt >= m.CorpseTime {
			continue
		}
		kept = append(kept, e)
	}
	// Clear the tail so removed agents can be collected.
	for i := len(kept); i < len(m.enemies); i++ {
		m.enemies[i] = nil
	}
	m.enemies = kept
}

// NotifyKilled records a death caused outside UpdateEnemies (player fire
// lands between manager ticks). The sweep still removes the corpse.
func (m *Manager) NotifyKilled(e *Enemy) {
	m.logDeath(e)
}

func (m *Manager) logDeath(e *Enemy) {
	m.log.Debug().
		Str("uid", e.UID.String()).
		Str("type", e.Type.String()).
		Int("xp", e.cfg.Reward.XP).
		Msg("enemy killed")
}

func (m *Manager) byID(id int) *Enemy {
	for _, e := range m.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// EnemiesInRadius returns live enemies within radius of pos.
func (m *Manager) EnemiesInRadius(pos Vec3, radius float64) []*Enemy {
	var out []*Enemy
	for _, e := range m.enemies {
		if e.State == StateDead {
			continue
		}
		if DistXZ(e.Pos, pos) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// AliveEnemies returns the live roster. The rendering layer polls this to
// create and destroy visual representations; there is no other event bus.
func (m *Manager) AliveEnemies() []*Enemy {
	var out []*Enemy
	for _, e := range m.enemies {
		if e.State != StateDead {
			out = append(out, e)
		}
	}
	return out
}

// EnemyCount returns the number of live enemies.
func (m *Manager) EnemyCount() int {
	n := 0
	for _, e := range m.enemies {
		if e.State != StateDead {
			n++
		}
	}
	return n
}

// ClearEnemies empties the roster.
func (m *Manager) ClearEnemies() {
	for i := range m.enemies {
		m.enemies[i] = nil
	}
	m.enemies = m.enemies[:0]
}
