package sim

// Squad signalling thresholds. Teamwork is a per-type coefficient: loners
// below shareThreshold keep what they see to themselves.
const (
	teamworkShareRadius    = 30.0
	teamworkShareThreshold = 0.5
	teamworkFlankThreshold = 0.7
	teamworkFlankChance    = 0.30
	// alertPropagationCap: teammates never get more than this fraction of
	// the broadcaster's own alert second-hand.
	alertPropagationCap = 0.8
)

// engaged reports whether the agent is actively committed to the fight.
func (e *Enemy) engaged() bool {
	switch e.State {
	case StateChasing, StateAttacking, StateFlanking, StateReloading:
		return true
	default:
		return false
	}
}

// shareIntel propagates the broadcaster's sighting to nearby teammates.
// Only runs on ticks with a live visual — squads coordinate on contact, not
// on rumor. Simple local signalling, deliberately not globally optimal.
func (e *Enemy) shareIntel(visible bool, all []*Enemy) {
	if !visible || e.cfg.AI.Teamwork <= teamworkShareThreshold {
		return
	}

	nearbyEngaged := 0
	var flankCandidate *Enemy
	for _, other := range all {
		if other == e || other.State == StateDead {
			continue
		}
		if DistXZ(e.Pos, other.Pos) > teamworkShareRadius {
			continue
		}

		// Share the sighting; cap second-hand alert below first-hand.
		other.LastKnownPlayerPos = e.LastKnownPlayerPos
		other.hasLastKnown = true
		if propagated := e.Alert * alertPropagationCap; other.Alert < propagated {
			other.Alert = propagated
		}
		if other.target == nil {
			other.target = e.target
		}

		if other.engaged() {
			nearbyEngaged++
			if other.State == StateChasing && flankCandidate == nil {
				flankCandidate = other
			}
		}
	}

	// Strong teamwork with enough guns already in the fight: sometimes send
	// one chaser wide.
	if e.cfg.AI.Teamwork > teamworkFlankThreshold &&
		nearbyEngaged >= 2 &&
		flankCandidate != nil &&
		e.rng.Float64() < teamworkFlankChance {
		flankCandidate.enterFlank(e.lastSeenNow)
	}
}
