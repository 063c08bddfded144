package game

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Hitbox sits slightly inside the visual: collision radius is size * 0.9.
const asteroidHitboxScale = 0.9

// BurstSink receives requests for explosion bursts. The particle controller
// implements it; asteroid/enemy controllers only hold the interface.
type BurstSink interface {
	SpawnBurst(pos mgl32.Vec3, size float32)
}

// DropSink rolls and spawns destruction drops (booty, power-ups).
type DropSink interface {
	SpawnDrops(pos, vel mgl32.Vec3, size float32)
}

// Asteroid is one tumbling hazard. The controller is the sole mutator of its
// physics fields; the pool alone touches the slot handle.
type Asteroid struct {
	pooledEntity
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Rot    mgl32.Vec3
	RotVel mgl32.Vec3
	Size   float32
	alive  bool
}

func (a *Asteroid) Transform() Transform {
	return Transform{Position: a.Pos, Rotation: a.Rot, Scale: uniformScale(a.Size)}
}

func (a *Asteroid) Position() mgl32.Vec3     { return a.Pos }
func (a *Asteroid) CollisionRadius() float32 { return a.Size * asteroidHitboxScale }
func (a *Asteroid) Alive() bool              { return a.alive }

// AsteroidSystem owns the asteroid pool plus spawn, boundary and
// fragmentation policy.
type AsteroidSystem struct {
	ctx    *Context
	cfg    AsteroidConfig
	world  WorldConfig
	pool   *Pool[*Asteroid]
	bursts BurstSink
	drops  DropSink
}

// NewAsteroidSystem builds the controller. bursts and drops may be nil; the
// corresponding side effects are then skipped.
func NewAsteroidSystem(ctx *Context, cfg Config, bursts BurstSink, drops DropSink) *AsteroidSystem {
	return &AsteroidSystem{
		ctx:    ctx,
		cfg:    cfg.Asteroids,
		world:  cfg.World,
		pool:   NewPool[*Asteroid](cfg.Asteroids.Capacity),
		bursts: bursts,
		drops:  drops,
	}
}

// Spawn places a fresh asteroid on a uniform-sphere direction at the
// configured fraction of the world radius. Returns nil when the pool is full;
// a skipped spawn is not an error.
func (s *AsteroidSystem) Spawn() *Asteroid {
	r := s.ctx.Rand
	pos := randomUnitVec3(r).Mul(s.world.Radius * s.cfg.SpawnRadiusFrac)
	vel := randomUnitVec3(r).Mul(randRange(r, s.cfg.MinSpeed, s.cfg.MaxSpeed))
	size := randRange(r, s.cfg.MinSize, s.cfg.MaxSize)
	return s.spawnAt(pos, vel, size)
}

func (s *AsteroidSystem) spawnAt(pos, vel mgl32.Vec3, size float32) *Asteroid {
	r := s.ctx.Rand
	a := &Asteroid{
		pooledEntity: newPooledEntity(),
		Pos:          pos,
		Vel:          vel,
		RotVel:       randomUnitVec3(r).Mul(randRange(r, 0.2, 1.2)),
		Size:         size,
		alive:        true,
	}
	if _, err := s.pool.Insert(a); err != nil {
		if errors.Is(err, ErrPoolFull) {
			s.ctx.Log.Debug("asteroid spawn skipped, pool full",
				zap.Int("capacity", s.pool.Capacity()))
		}
		return nil
	}
	return a
}

// Update advances every asteroid and recycles the ones that drift past the
// world bound: each such asteroid is removed and immediately replaced, so the
// active-hazard budget is conserved. Reverse iteration because the loop
// removes as it goes.
func (s *AsteroidSystem) Update(dt float32) {
	s.pool.ReverseEach(func(slot int, a *Asteroid) {
		a.Pos = a.Pos.Add(a.Vel.Mul(dt))
		a.Rot = a.Rot.Add(a.RotVel.Mul(dt))
		if a.Pos.Len() > s.world.Radius {
			s.destroy(a)
			s.Spawn()
			return
		}
		s.pool.SyncTransform(slot)
	})
}

// Active returns the number of live asteroids.
func (s *AsteroidSystem) Active() int { return s.pool.Active() }

// destroy removes the asteroid from the pool and flags it dead for any
// collision pair still holding a snapshot reference.
func (s *AsteroidSystem) destroy(a *Asteroid) {
	if !s.pool.RemoveEntity(a) {
		return
	}
	a.alive = false
}

// fragment spawns 2-5 smaller asteroids from a destroyed parent. Fragment
// velocity is mostly random with a 10-20% pull toward the parent's prior
// heading, at 20-30% of the parent speed. Fragments that would come out below
// the minimum size are not spawned at all.
func (s *AsteroidSystem) fragment(parent *Asteroid) {
	r := s.ctx.Rand
	count := randRangeInt(r, s.cfg.MinFragments, s.cfg.MaxFragments)
	parentSpeed := parent.Vel.Len()
	var parentDir mgl32.Vec3
	if parentSpeed > 0 {
		parentDir = parent.Vel.Mul(1 / parentSpeed)
	}
	for i := 0; i < count; i++ {
		size := parent.Size / float32(count) * randRange(r, 0.8, 1.2)
		if size < s.cfg.FragmentMinSize {
			continue
		}
		bias := randRange(r, 0.1, 0.2)
		dir := randomUnitVec3(r).Mul(1 - bias).Add(parentDir.Mul(bias))
		if l := dir.Len(); l > 0 {
			dir = dir.Mul(1 / l)
		}
		speed := parentSpeed * randRange(r, 0.2, 0.3)
		s.spawnAt(parent.Pos, dir.Mul(speed), size)
	}
}

// CollisionKind implements CollisionHandler.
func (s *AsteroidSystem) CollisionKind() Kind { return KindAsteroid }

// ActiveColliders implements CollisionHandler with a fresh snapshot slice.
func (s *AsteroidSystem) ActiveColliders() []Collider {
	out := make([]Collider, 0, s.pool.Active())
	for i := 0; i < s.pool.Active(); i++ {
		out = append(out, s.pool.At(i))
	}
	return out
}

// HandleCollisionWith is the only entry point by which another subsystem
// affects asteroids. A bullet hit fragments the asteroid and rolls drops; a
// player hit just destroys it (the ship side of the pair handles the ship).
func (s *AsteroidSystem) HandleCollisionWith(kind Kind, self, other Collider) {
	a, ok := self.(*Asteroid)
	if !ok || !a.alive {
		return
	}
	switch kind {
	case KindBullet:
		s.destroy(a)
		s.fragment(a)
		if s.bursts != nil {
			s.bursts.SpawnBurst(a.Pos, a.Size)
		}
		if s.drops != nil && s.ctx.Rand.Float64() < s.cfg.DropChance {
			s.drops.SpawnDrops(a.Pos, a.Vel, a.Size)
		}
		s.ctx.Stats.AsteroidsDestroyed++
		s.ctx.Stats.Score += int(a.Size)
		s.ctx.Audio.Play(CueExplosion)
	case KindPlayer:
		s.destroy(a)
		if s.bursts != nil {
			s.bursts.SpawnBurst(a.Pos, a.Size)
		}
	}
}

// AllForState returns read-only snapshots for external consumers.
func (s *AsteroidSystem) AllForState() []Snapshot {
	out := make([]Snapshot, 0, s.pool.Active())
	for i := 0; i < s.pool.Active(); i++ {
		a := s.pool.At(i)
		out = append(out, Snapshot{
			ID:       a.ID(),
			Position: snapshotPosition(a.Pos),
			Kind:     string(KindAsteroid),
			Size:     a.Size,
		})
	}
	return out
}

// ClearAll flags every asteroid dead and empties the pool. Used at level
// teardown.
func (s *AsteroidSystem) ClearAll() {
	for i := 0; i < s.pool.Active(); i++ {
		s.pool.At(i).alive = false
	}
	s.pool.Clear()
}

// Flush marks the transform buffer for the renderer; called once per frame.
func (s *AsteroidSystem) Flush() { s.pool.Flush() }

// Transforms exposes the live render buffer prefix.
func (s *AsteroidSystem) Transforms() []Transform { return s.pool.Transforms() }

// Dirty / MarkClean bridge the pool's flush handshake to the renderer.
func (s *AsteroidSystem) Dirty() bool { return s.pool.Dirty() }
func (s *AsteroidSystem) MarkClean() { s.pool.MarkClean() }
