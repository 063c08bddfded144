package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CollectibleType distinguishes what a pickup grants.
type CollectibleType int

const (
	// CollectibleBooty is a plain resource unit.
	CollectibleBooty CollectibleType = iota
	// CollectibleShield grants a timed shield.
	CollectibleShield
	// CollectibleRapid grants timed rapid fire.
	CollectibleRapid
)

func (t CollectibleType) String() string {
	switch t {
	case CollectibleShield:
		return "shield"
	case CollectibleRapid:
		return "rapid"
	default:
		return "booty"
	}
}

// GrantSink receives the effect of a claimed pickup. The ship implements it;
// the collectible controller never sees the ship type.
type GrantSink interface {
	GrantBooty(amount int)
	GrantShield(seconds float32)
	GrantRapidFire(seconds float32)
}

// Collectible is one floating pickup.
type Collectible struct {
	pooledEntity
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Type   CollectibleType
	Age    float32
	radius float32
	alive  bool
}

func (c *Collectible) Transform() Transform {
	return Transform{Position: c.Pos, Scale: uniformScale(c.radius)}
}

func (c *Collectible) Position() mgl32.Vec3     { return c.Pos }
func (c *Collectible) CollisionRadius() float32 { return c.radius }
func (c *Collectible) Alive() bool              { return c.alive }

// CollectibleSystem owns the pickup pool. It implements DropSink so the
// asteroid and enemy controllers can roll drops without knowing about it.
type CollectibleSystem struct {
	ctx           *Context
	cfg           CollectibleConfig
	powerUpChance float64
	pool          *Pool[*Collectible]
	grants        GrantSink
}

func NewCollectibleSystem(ctx *Context, cfg Config, grants GrantSink) *CollectibleSystem {
	return &CollectibleSystem{
		ctx:           ctx,
		cfg:           cfg.Collectibles,
		powerUpChance: cfg.Asteroids.PowerUpChance,
		pool:          NewPool[*Collectible](cfg.Collectibles.Capacity),
		grants:        grants,
	}
}

// SpawnDrops implements DropSink: a destroyed hazard leaves a pickup behind,
// usually booty, occasionally a power-up. Large sources shed an extra booty
// unit. Drops inherit a fraction of the source velocity and drift.
func (s *CollectibleSystem) SpawnDrops(pos, vel mgl32.Vec3, size float32) {
	typ := CollectibleBooty
	if s.ctx.Rand.Float64() < s.powerUpChance {
		if s.ctx.Rand.Float64() < 0.5 {
			typ = CollectibleShield
		} else {
			typ = CollectibleRapid
		}
	}
	s.spawnOne(pos, vel, typ)
	if size >= 12 {
		s.spawnOne(pos, vel, CollectibleBooty)
	}
}

func (s *CollectibleSystem) spawnOne(pos, vel mgl32.Vec3, typ CollectibleType) {
	c := &Collectible{
		pooledEntity: newPooledEntity(),
		Pos:          pos,
		Vel:          vel.Mul(0.2).Add(randomUnitVec3(s.ctx.Rand).Mul(s.cfg.DriftSpeed)),
		Type:         typ,
		radius:       s.cfg.Radius,
		alive:        true,
	}
	if _, err := s.pool.Insert(c); err != nil {
		s.ctx.Log.Debug("drop skipped, collectible pool full")
	}
}

// Update drifts pickups and despawns unclaimed ones after their lifetime.
// Reverse iteration: the loop removes as it goes.
func (s *CollectibleSystem) Update(dt float32) {
	s.pool.ReverseEach(func(slot int, c *Collectible) {
		c.Age += dt
		c.Pos = c.Pos.Add(c.Vel.Mul(dt))
		if c.Age >= s.cfg.Lifetime {
			s.destroy(c)
			return
		}
		s.pool.SyncTransform(slot)
	})
}

// Active returns the number of live pickups.
func (s *CollectibleSystem) Active() int { return s.pool.Active() }

func (s *CollectibleSystem) destroy(c *Collectible) {
	if s.pool.RemoveEntity(c) {
		c.alive = false
	}
}

// CollisionKind implements CollisionHandler.
func (s *CollectibleSystem) CollisionKind() Kind { return KindCollectible }

// ActiveColliders implements CollisionHandler.
func (s *CollectibleSystem) ActiveColliders() []Collider {
	out := make([]Collider, 0, s.pool.Active())
	for i := 0; i < s.pool.Active(); i++ {
		out = append(out, s.pool.At(i))
	}
	return out
}

// HandleCollisionWith applies the grant and removes the pickup when the
// player touches it.
func (s *CollectibleSystem) HandleCollisionWith(kind Kind, self, _ Collider) {
	c, ok := self.(*Collectible)
	if !ok || !c.alive || kind != KindPlayer {
		return
	}
	s.destroy(c)
	if s.grants != nil {
		switch c.Type {
		case CollectibleShield:
			s.grants.GrantShield(s.cfg.ShieldSeconds)
		case CollectibleRapid:
			s.grants.GrantRapidFire(s.cfg.RapidSeconds)
		default:
			s.grants.GrantBooty(1)
		}
	}
	s.ctx.Audio.Play(CuePickup)
}

// AllForState returns read-only snapshots for external consumers.
func (s *CollectibleSystem) AllForState() []Snapshot {
	out := make([]Snapshot, 0, s.pool.Active())
	for i := 0; i < s.pool.Active(); i++ {
		c := s.pool.At(i)
		out = append(out, Snapshot{
			ID:       c.ID(),
			Position: snapshotPosition(c.Pos),
			Kind:     c.Type.String(),
			Size:     c.radius,
		})
	}
	return out
}

// ClearAll empties the pool at level teardown.
func (s *CollectibleSystem) ClearAll() {
	for i := 0; i < s.pool.Active(); i++ {
		s.pool.At(i).alive = false
	}
	s.pool.Clear()
}

func (s *CollectibleSystem) Flush()                  { s.pool.Flush() }
func (s *CollectibleSystem) Transforms() []Transform { return s.pool.Transforms() }
func (s *CollectibleSystem) Dirty() bool             { return s.pool.Dirty() }
func (s *CollectibleSystem) MarkClean()              { s.pool.MarkClean() }
