package sim

// Terrain answers ground-height queries. The renderer owns the real
// height-field; the core only needs it for the player's grounded check and
// for placing world objects at ground level.
type Terrain interface {
	// HeightAt returns the interpolated ground height at (x, z).
	HeightAt(x, z float64) float64
}

// FlatTerrain is a Terrain with a constant height everywhere.
type FlatTerrain struct {
	Height float64
}

// HeightAt implements Terrain.
func (f FlatTerrain) HeightAt(_, _ float64) float64 {
	return f.Height
}

// SoundID identifies a one-shot sound effect at the audio boundary.
type SoundID string

const (
	SoundShot     SoundID = "weapon_shot"
	SoundDryFire  SoundID = "weapon_dry"
	SoundReload   SoundID = "weapon_reload"
	SoundHit      SoundID = "combatant_hit"
	SoundDeath    SoundID = "combatant_death"
	SoundFootstep SoundID = "footstep"
)

// SoundPlayer is the fire-and-forget audio boundary. Playback failure is the
// host's problem; the core never checks it.
type SoundPlayer interface {
	Play(id SoundID)
}

// NullSound discards all sound triggers. Used headless and in tests that
// don't assert on audio.
type NullSound struct{}

// Play implements SoundPlayer.
func (NullSound) Play(SoundID) {}
