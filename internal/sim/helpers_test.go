package sim

import "math/rand"

// testRNG returns a deterministic RNG for tests that build agents directly.
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1)) // #nosec G404 -- test helper
}
