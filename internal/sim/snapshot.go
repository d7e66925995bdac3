package sim

// PlayerSnapshot is the wire/render view of the player for one tick.
type PlayerSnapshot struct {
	Pos     Vec3    `json:"pos"`
	Yaw     float64 `json:"yaw"`
	State   string  `json:"state"`
	Health  float64 `json:"health"`
	Stamina float64 `json:"stamina"`
	Ammo    int     `json:"ammo"`
	Reserve int     `json:"reserve"`
}

// EnemySnapshot is the wire/render view of one enemy for one tick.
type EnemySnapshot struct {
	UID    string  `json:"uid"`
	Label  string  `json:"label"`
	Type   string  `json:"type"`
	State  string  `json:"state"`
	Pos    Vec3    `json:"pos"`
	Yaw    float64 `json:"yaw"`
	Health float64 `json:"health"`
	Alert  float64 `json:"alert"`
}

// ObjectSnapshot is the wire/render view of a static world object.
type ObjectSnapshot struct {
	Kind   string  `json:"kind"`
	Pos    Vec3    `json:"pos"`
	Radius float64 `json:"radius"`
}

// Snapshot is the full simulation state at one tick, safe to serialize and
// hand to a renderer or stream consumer. Values are copies; mutating a
// snapshot never touches the simulation.
type Snapshot struct {
	Tick    int             `json:"tick"`
	Time    float64         `json:"time"`
	Player  PlayerSnapshot  `json:"player"`
	Enemies []EnemySnapshot `json:"enemies"`
}

// Snapshot captures the current tick's state.
func (s *Sim) Snapshot() Snapshot {
	p := s.Player
	snap := Snapshot{
		Tick: s.tick,
		Time: s.now,
		Player: PlayerSnapshot{
			Pos:     p.Pos,
			Yaw:     p.Yaw,
			State:   p.State.String(),
			Health:  p.Health.Current,
			Stamina: p.Stamina.Current,
			Ammo:    p.Weapon.CurrentAmmo,
			Reserve: p.Weapon.ReserveAmmo,
		},
	}
	for _, e := range s.Enemies.enemies {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			UID:    e.UID.String(),
			Label:  e.Label(),
			Type:   e.Type.String(),
			State:  e.State.String(),
			Pos:    e.Pos,
			Yaw:    e.Yaw,
			Health: e.Health.Current,
			Alert:  e.Alert,
		})
	}
	return snap
}

// ObjectSnapshots returns the static world objects in wire form. These never
// change after generation, so callers can fetch them once.
func (s *Sim) ObjectSnapshots() []ObjectSnapshot {
	out := make([]ObjectSnapshot, 0, len(s.Objects))
	for _, o := range s.Objects {
		out = append(out, ObjectSnapshot{
			Kind:   o.Kind.String(),
			Pos:    o.Pos,
			Radius: o.Radius,
		})
	}
	return out
}
