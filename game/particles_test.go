package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurstCountWithinRange(t *testing.T) {
	ctx := testContext(1)
	cfg := DefaultConfig()
	s := NewParticleSystem(ctx, cfg)

	s.SpawnBurst(mgl32.Vec3{1, 2, 3}, 10)
	n := s.Active()
	assert.GreaterOrEqual(t, n, cfg.Particles.BurstMin)
	assert.LessOrEqual(t, n, cfg.Particles.BurstMax)

	for _, tr := range s.Transforms() {
		assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Position)
	}
}

func TestBurstDroppedAtSaturation(t *testing.T) {
	ctx := testContext(1)
	cfg := DefaultConfig()
	cfg.Particles.Capacity = 5
	s := NewParticleSystem(ctx, cfg)

	s.SpawnBurst(mgl32.Vec3{}, 10)
	assert.Equal(t, 5, s.Active(), "overflow is silently dropped")

	s.SpawnBurst(mgl32.Vec3{}, 10)
	assert.Equal(t, 5, s.Active())
}

func TestParticlesExpire(t *testing.T) {
	ctx := testContext(1)
	cfg := DefaultConfig()
	s := NewParticleSystem(ctx, cfg)

	s.SpawnBurst(mgl32.Vec3{}, 10)
	require.Greater(t, s.Active(), 0)

	s.Update(cfg.Particles.MaxLife + 0.1)
	assert.Equal(t, 0, s.Active())
}

func TestParticlesShrinkOverLife(t *testing.T) {
	p := &Particle{Lifetime: 1, Size: 4}
	full := p.Transform().Scale.X()

	p.Age = 0.5
	assert.InDelta(t, float64(full)/2, float64(p.Transform().Scale.X()), 1e-4)

	p.Age = 2
	assert.Equal(t, float32(0), p.Transform().Scale.X(), "scale never goes negative")
}
