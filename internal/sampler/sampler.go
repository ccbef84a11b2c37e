// Package sampler produces the per-frame light directions driving the bake.
package sampler

import (
	"math"
	"math/rand"

	"ao-lightmap-baker/internal/mathutil"
)

// DefaultKeyLight is the fixed key-light direction jittered samples cluster
// around. Well above the horizon so hemisphere clamping never folds the
// penumbra cone.
var DefaultKeyLight = mathutil.Vec3{180, 260, 140}.Normalize()

// DefaultJitter is the key-light jitter radius. Tuned for a unit-magnitude
// key light; it bounds the penumbra cone at asin(jitter) ≈ 17°.
const DefaultJitter = 0.3

// Directional alternates between uniform sky sampling and jittered key-light
// sampling, restricted to the upper hemisphere. Deterministic for a given
// seed, which makes bakes reproducible and resumable.
type Directional struct {
	keyLight mathutil.Vec3
	jitter   float64
	rng      *rand.Rand
	frame    int
}

// New creates a sampler around the given key light (normalized internally)
// using a dedicated PRNG seeded with seed.
func New(keyLight mathutil.Vec3, jitter float64, seed int64) *Directional {
	return &Directional{
		keyLight: keyLight.Normalize(),
		jitter:   jitter,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Next returns one unit direction. Even frames sample the sphere uniformly;
// odd frames jitter around the key light, with sqrt-weighted radius so samples
// concentrate near the light for a tight core shadow and thin out toward the
// penumbra edge. Directions below the horizon are folded up: light arrives
// only from the sky.
func (s *Directional) Next() mathutil.Vec3 {
	var dir mathutil.Vec3
	if s.frame%2 == 0 {
		dir = s.uniformSphere()
	} else {
		off := s.uniformSphere().Scale(s.jitter * math.Sqrt(s.rng.Float64()))
		dir = s.keyLight.Add(off).Normalize()
	}
	s.frame++

	if dir[1] < 0 {
		dir = dir.Neg()
	}
	return dir
}

// uniformSphere returns a uniformly distributed unit vector via the
// Archimedes cylinder mapping.
func (s *Directional) uniformSphere() mathutil.Vec3 {
	z := 2*s.rng.Float64() - 1
	phi := 2 * math.Pi * s.rng.Float64()
	r := math.Sqrt(1 - z*z)
	return mathutil.Vec3{r * math.Cos(phi), z, r * math.Sin(phi)}
}
