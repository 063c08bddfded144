package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// EnemyType selects an enemy behaviour.
type EnemyType int

const (
	// EnemyChaser flies straight at the player and detonates on contact.
	EnemyChaser EnemyType = iota
	// EnemyShooter keeps its distance and fires enemy-faction projectiles.
	EnemyShooter
)

// randomEnemyType is weighted toward chasers.
func randomEnemyType(ctx *Context) EnemyType {
	if ctx.Rand.Float64() < 0.8 {
		return EnemyChaser
	}
	return EnemyShooter
}

// ProjectileSpawner is the narrow surface enemies (and the ship) use to fire.
type ProjectileSpawner interface {
	Spawn(pos, aim, firerVel mgl32.Vec3, side Faction) *Projectile
}

// TargetProvider yields the current player position, or ok=false when there
// is no player to hunt (dead, not yet spawned). Enemies then idle for the
// frame instead of failing.
type TargetProvider interface {
	TargetPosition() (mgl32.Vec3, bool)
}

// Enemy is one hostile craft.
type Enemy struct {
	pooledEntity
	Pos      mgl32.Vec3
	Vel      mgl32.Vec3
	Rot      mgl32.Vec3
	Type     EnemyType
	Cooldown float32
	radius   float32
	alive    bool
}

func (e *Enemy) Transform() Transform {
	return Transform{Position: e.Pos, Rotation: e.Rot, Scale: uniformScale(e.radius)}
}

func (e *Enemy) Position() mgl32.Vec3     { return e.Pos }
func (e *Enemy) CollisionRadius() float32 { return e.radius }
func (e *Enemy) Alive() bool              { return e.alive }
func (e *Enemy) Faction() Faction         { return FactionEnemy }

// EnemySystem owns the enemy pool plus steering and fire policy.
type EnemySystem struct {
	ctx    *Context
	cfg    EnemyConfig
	world  WorldConfig
	pool   *Pool[*Enemy]
	guns   ProjectileSpawner
	target TargetProvider
	bursts BurstSink
	drops  DropSink
}

func NewEnemySystem(ctx *Context, cfg Config, guns ProjectileSpawner, target TargetProvider, bursts BurstSink, drops DropSink) *EnemySystem {
	return &EnemySystem{
		ctx:    ctx,
		cfg:    cfg.Enemies,
		world:  cfg.World,
		pool:   NewPool[*Enemy](cfg.Enemies.Capacity),
		guns:   guns,
		target: target,
		bursts: bursts,
		drops:  drops,
	}
}

// Spawn places an enemy of a random type near the world edge. Returns nil
// when the pool is full.
func (s *EnemySystem) Spawn() *Enemy {
	r := s.ctx.Rand
	e := &Enemy{
		pooledEntity: newPooledEntity(),
		Pos:          randomUnitVec3(r).Mul(s.world.Radius * 0.9),
		Type:         randomEnemyType(s.ctx),
		Cooldown:     randRange(r, 0, s.cfg.ShootCooldown),
		radius:       s.cfg.Radius,
		alive:        true,
	}
	if _, err := s.pool.Insert(e); err != nil {
		s.ctx.Log.Debug("enemy spawn skipped, pool full")
		return nil
	}
	return e
}

// Update steers every enemy toward the player. Chasers close to contact;
// shooters hold at range and fire when their cooldown allows. With no target
// available the whole pass idles.
func (s *EnemySystem) Update(dt float32) {
	targetPos, ok := s.target.TargetPosition()
	s.pool.ReverseEach(func(slot int, e *Enemy) {
		e.Cooldown -= dt
		if ok {
			toTarget := targetPos.Sub(e.Pos)
			dist := toTarget.Len()
			if dist > 0.01 {
				dir := toTarget.Mul(1 / dist)
				switch e.Type {
				case EnemyChaser:
					e.Vel = dir.Mul(s.cfg.ChaserSpeed)
				case EnemyShooter:
					if dist > s.cfg.ShooterRange {
						e.Vel = dir.Mul(s.cfg.ShooterSpeed)
					} else {
						e.Vel = mgl32.Vec3{}
						if e.Cooldown <= 0 && s.guns != nil {
							s.guns.Spawn(e.Pos, dir, e.Vel, FactionEnemy)
							e.Cooldown = s.cfg.ShootCooldown
						}
					}
				}
			}
		}
		e.Pos = e.Pos.Add(e.Vel.Mul(dt))
		if e.Pos.Len() > s.world.Radius {
			// Clamp to the bound rather than recycling; enemies always
			// converge back toward the player.
			e.Pos = e.Pos.Normalize().Mul(s.world.Radius)
		}
		s.pool.SyncTransform(slot)
	})
}

// Active returns the number of live enemies.
func (s *EnemySystem) Active() int { return s.pool.Active() }

func (s *EnemySystem) destroy(e *Enemy) {
	if s.pool.RemoveEntity(e) {
		e.alive = false
	}
}

// CollisionKind implements CollisionHandler.
func (s *EnemySystem) CollisionKind() Kind { return KindEnemy }

// ActiveColliders implements CollisionHandler.
func (s *EnemySystem) ActiveColliders() []Collider {
	out := make([]Collider, 0, s.pool.Active())
	for i := 0; i < s.pool.Active(); i++ {
		out = append(out, s.pool.At(i))
	}
	return out
}

// HandleCollisionWith destroys the enemy on any registered hit: a bullet
// kills it, and a chaser detonates against the ship.
func (s *EnemySystem) HandleCollisionWith(kind Kind, self, _ Collider) {
	e, ok := self.(*Enemy)
	if !ok || !e.alive {
		return
	}
	s.destroy(e)
	if s.bursts != nil {
		s.bursts.SpawnBurst(e.Pos, e.radius*2)
	}
	if kind == KindBullet {
		s.ctx.Stats.EnemiesDestroyed++
		s.ctx.Stats.Score += 50
		if s.drops != nil && s.ctx.Rand.Float64() < 0.5 {
			s.drops.SpawnDrops(e.Pos, e.Vel, e.radius)
		}
	}
	s.ctx.Audio.Play(CueExplosion)
}

// AllForState returns read-only snapshots for external consumers.
func (s *EnemySystem) AllForState() []Snapshot {
	out := make([]Snapshot, 0, s.pool.Active())
	for i := 0; i < s.pool.Active(); i++ {
		e := s.pool.At(i)
		out = append(out, Snapshot{
			ID:       e.ID(),
			Position: snapshotPosition(e.Pos),
			Kind:     string(KindEnemy),
			Size:     e.radius,
		})
	}
	return out
}

// ClearAll empties the pool at level teardown.
func (s *EnemySystem) ClearAll() {
	for i := 0; i < s.pool.Active(); i++ {
		s.pool.At(i).alive = false
	}
	s.pool.Clear()
}

func (s *EnemySystem) Flush()                  { s.pool.Flush() }
func (s *EnemySystem) Transforms() []Transform { return s.pool.Transforms() }
func (s *EnemySystem) Dirty() bool             { return s.pool.Dirty() }
func (s *EnemySystem) MarkClean()              { s.pool.MarkClean() }
