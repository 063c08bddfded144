package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Particle is one explosion fragment. Purely visual: particles never collide.
type Particle struct {
	pooledEntity
	Pos      mgl32.Vec3
	Vel      mgl32.Vec3
	Age      float32
	Lifetime float32
	Size     float32
}

var _ Updatable = (*Particle)(nil)

// Update ages the particle and drifts it along its velocity.
func (p *Particle) Update(dt float32) {
	p.Age += dt
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))
}

// Expired reports whether the particle's lifetime has run out.
func (p *Particle) Expired() bool { return p.Age >= p.Lifetime }

func (p *Particle) Transform() Transform {
	// Shrink toward zero over the lifetime so bursts fade out.
	frac := 1 - p.Age/p.Lifetime
	if frac < 0 {
		frac = 0
	}
	return Transform{Position: p.Pos, Scale: uniformScale(p.Size * frac)}
}

// ParticleSystem owns the particle pool and implements BurstSink for the
// other controllers. With a 3000-entity cap a busy frame can drop particles;
// that is the intended soft cap, not an error.
type ParticleSystem struct {
	ctx  *Context
	cfg  ParticleConfig
	pool *Pool[*Particle]
}

func NewParticleSystem(ctx *Context, cfg Config) *ParticleSystem {
	return &ParticleSystem{
		ctx:  ctx,
		cfg:  cfg.Particles,
		pool: NewPool[*Particle](cfg.Particles.Capacity),
	}
}

// SpawnBurst emits a radial burst at pos, scaled by the source size.
// Implements BurstSink.
func (s *ParticleSystem) SpawnBurst(pos mgl32.Vec3, size float32) {
	r := s.ctx.Rand
	count := randRangeInt(r, s.cfg.BurstMin, s.cfg.BurstMax)
	for i := 0; i < count; i++ {
		p := &Particle{
			pooledEntity: newPooledEntity(),
			Pos:          pos,
			Vel:          randomUnitVec3(r).Mul(randRange(r, s.cfg.MinSpeed, s.cfg.MaxSpeed)),
			Lifetime:     randRange(r, s.cfg.MinLife, s.cfg.MaxLife),
			Size:         randRange(r, 0.5, 1.5) * size * 0.15,
		}
		if _, err := s.pool.Insert(p); err != nil {
			// Pool saturated; the rest of the burst is dropped.
			return
		}
	}
}

// Update ages particles and removes the expired ones. Reverse iteration: the
// loop removes as it goes.
func (s *ParticleSystem) Update(dt float32) {
	s.pool.ReverseEach(func(slot int, p *Particle) {
		p.Update(dt)
		if p.Expired() {
			s.pool.RemoveEntity(p)
			return
		}
		s.pool.SyncTransform(slot)
	})
}

// Active returns the number of live particles.
func (s *ParticleSystem) Active() int { return s.pool.Active() }

// ClearAll empties the pool at level teardown.
func (s *ParticleSystem) ClearAll() { s.pool.Clear() }

func (s *ParticleSystem) Flush()                  { s.pool.Flush() }
func (s *ParticleSystem) Transforms() []Transform { return s.pool.Transforms() }
func (s *ParticleSystem) Dirty() bool             { return s.pool.Dirty() }
func (s *ParticleSystem) MarkClean()              { s.pool.MarkClean() }
