package game

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// randomUnitVec3 samples a direction uniformly on the unit sphere:
// theta ~ U(0, 2π), phi = acos(2u-1). Sampling phi ~ U(0, π) instead would
// cluster directions at the poles.
func randomUnitVec3(r *rand.Rand) mgl32.Vec3 {
	theta := r.Float64() * 2 * math.Pi
	phi := math.Acos(2*r.Float64() - 1)
	sinPhi := math.Sin(phi)
	return mgl32.Vec3{
		float32(sinPhi * math.Cos(theta)),
		float32(sinPhi * math.Sin(theta)),
		float32(math.Cos(phi)),
	}
}

// randRange returns a uniform value in [lo, hi).
func randRange(r *rand.Rand, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}

// randRangeInt returns a uniform int in [lo, hi].
func randRangeInt(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// uniformScale builds a Transform scale from a single size.
func uniformScale(size float32) mgl32.Vec3 {
	return mgl32.Vec3{size, size, size}
}
