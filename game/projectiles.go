package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projectile is a single shot. Velocity is fixed at spawn: aim direction
// times muzzle speed, plus the firer's own velocity for momentum inheritance.
type Projectile struct {
	pooledEntity
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Age    float32
	Side   Faction
	radius float32
	alive  bool
}

func (p *Projectile) Transform() Transform {
	return Transform{Position: p.Pos, Scale: uniformScale(p.radius)}
}

func (p *Projectile) Position() mgl32.Vec3     { return p.Pos }
func (p *Projectile) Alive() bool              { return p.alive }
func (p *Projectile) Faction() Faction         { return p.Side }
func (p *Projectile) CollisionRadius() float32 { return p.radius }

// ProjectileSystem owns the projectile pool. Both the player and enemy
// shooters fire through it; the faction tag keeps friendly fire out at the
// dispatcher's pair filters.
type ProjectileSystem struct {
	ctx   *Context
	cfg   ProjectileConfig
	world WorldConfig
	pool  *Pool[*Projectile]
}

func NewProjectileSystem(ctx *Context, cfg Config) *ProjectileSystem {
	return &ProjectileSystem{
		ctx:   ctx,
		cfg:   cfg.Projectiles,
		world: cfg.World,
		pool:  NewPool[*Projectile](cfg.Projectiles.Capacity),
	}
}

// Spawn fires a shot from pos along aim (unit vector), offset by the muzzle
// distance and inheriting firerVel. Returns nil when the pool is full: the
// trigger simply does nothing that frame.
func (s *ProjectileSystem) Spawn(pos, aim, firerVel mgl32.Vec3, side Faction) *Projectile {
	p := &Projectile{
		pooledEntity: newPooledEntity(),
		Pos:          pos.Add(aim.Mul(s.cfg.MuzzleOffset)),
		Vel:          aim.Mul(s.cfg.Speed).Add(firerVel),
		Side:         side,
		alive:        true,
	}
	p.radius = s.cfg.Radius
	if _, err := s.pool.Insert(p); err != nil {
		s.ctx.Log.Debug("projectile spawn skipped, pool full")
		return nil
	}
	s.ctx.Stats.ShotsFired++
	s.ctx.Audio.Play(CueShot)
	return p
}

// Update advances shots and permanently removes any that expire or leave the
// world bound. Reverse iteration: the loop removes as it goes.
func (s *ProjectileSystem) Update(dt float32) {
	s.pool.ReverseEach(func(slot int, p *Projectile) {
		p.Age += dt
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		if p.Age >= s.cfg.Lifetime || p.Pos.Len() > s.world.Radius {
			s.destroy(p)
			return
		}
		s.pool.SyncTransform(slot)
	})
}

func (s *ProjectileSystem) destroy(p *Projectile) {
	if s.pool.RemoveEntity(p) {
		p.alive = false
	}
}

// Active returns the number of live projectiles.
func (s *ProjectileSystem) Active() int { return s.pool.Active() }

// CollisionKind implements CollisionHandler.
func (s *ProjectileSystem) CollisionKind() Kind { return KindBullet }

// ActiveColliders implements CollisionHandler.
func (s *ProjectileSystem) ActiveColliders() []Collider {
	out := make([]Collider, 0, s.pool.Active())
	for i := 0; i < s.pool.Active(); i++ {
		out = append(out, s.pool.At(i))
	}
	return out
}

// HandleCollisionWith destroys the projectile unconditionally: any hit
// consumes the shot.
func (s *ProjectileSystem) HandleCollisionWith(_ Kind, self, _ Collider) {
	if p, ok := self.(*Projectile); ok {
		s.destroy(p)
	}
}

// AllForState returns read-only snapshots for external consumers.
func (s *ProjectileSystem) AllForState() []Snapshot {
	out := make([]Snapshot, 0, s.pool.Active())
	for i := 0; i < s.pool.Active(); i++ {
		p := s.pool.At(i)
		out = append(out, Snapshot{
			ID:       p.ID(),
			Position: snapshotPosition(p.Pos),
			Kind:     string(KindBullet),
			Size:     p.radius,
		})
	}
	return out
}

// ClearAll empties the pool at level teardown.
func (s *ProjectileSystem) ClearAll() {
	for i := 0; i < s.pool.Active(); i++ {
		s.pool.At(i).alive = false
	}
	s.pool.Clear()
}

func (s *ProjectileSystem) Flush()                  { s.pool.Flush() }
func (s *ProjectileSystem) Transforms() []Transform { return s.pool.Transforms() }
func (s *ProjectileSystem) Dirty() bool             { return s.pool.Dirty() }
func (s *ProjectileSystem) MarkClean()              { s.pool.MarkClean() }
