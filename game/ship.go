package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ship is the single player craft. It is not pooled; the system holds exactly
// one and exposes it to the dispatcher as a one-element collider list.
type Ship struct {
	id     string
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Yaw    float32
	Pitch  float32
	radius float32
	alive  bool
}

func (sh *Ship) ID() string               { return sh.id }
func (sh *Ship) Position() mgl32.Vec3     { return sh.Pos }
func (sh *Ship) CollisionRadius() float32 { return sh.radius }
func (sh *Ship) Alive() bool              { return sh.alive }

// Forward derives the aim direction from yaw and pitch.
func (sh *Ship) Forward() mgl32.Vec3 {
	cy := float32(math.Cos(float64(sh.Yaw)))
	sy := float32(math.Sin(float64(sh.Yaw)))
	cp := float32(math.Cos(float64(sh.Pitch)))
	sp := float32(math.Sin(float64(sh.Pitch)))
	return mgl32.Vec3{cp * sy, sp, -cp * cy}
}

// ShipSystem owns the player craft: flight physics, fire control, power-up
// timers and the shield capability. It implements CollisionHandler (kind
// "player"), TargetProvider for enemies and GrantSink for pickups.
type ShipSystem struct {
	ctx    *Context
	cfg    ShipConfig
	world  WorldConfig
	input  InputProvider
	guns   ProjectileSpawner
	bursts BurstSink

	ship        *Ship
	cooldown    float32
	shieldLeft  float32
	rapidLeft   float32
	onDestroyed func()
}

func NewShipSystem(ctx *Context, cfg Config, input InputProvider, guns ProjectileSpawner, bursts BurstSink) *ShipSystem {
	s := &ShipSystem{
		ctx:    ctx,
		cfg:    cfg.Ship,
		world:  cfg.World,
		input:  input,
		guns:   guns,
		bursts: bursts,
	}
	s.spawnShip()
	return s
}

// OnDestroyed installs the callback the orchestrator uses to enter its
// game-over state.
func (s *ShipSystem) OnDestroyed(f func()) { s.onDestroyed = f }

func (s *ShipSystem) spawnShip() {
	s.ship = &Ship{
		id:     uuid.NewString(),
		radius: s.cfg.Radius,
		alive:  true,
	}
	s.cooldown = 0
	s.shieldLeft = 0
	s.rapidLeft = 0
}

// Ship returns the craft for the renderer and camera. May be dead; check
// Alive.
func (s *ShipSystem) Ship() *Ship { return s.ship }

// ShieldActive reports whether the shield capability is up.
func (s *ShipSystem) ShieldActive() bool { return s.shieldLeft > 0 }

// RapidActive reports whether rapid fire is up.
func (s *ShipSystem) RapidActive() bool { return s.rapidLeft > 0 }

// Respawn brings a destroyed ship back at the origin.
func (s *ShipSystem) Respawn() {
	s.spawnShip()
	s.ctx.Log.Info("ship respawned")
}

// Update integrates flight physics from the input provider, runs the
// power-up timers and fires while the trigger is held and the cooldown
// allows.
func (s *ShipSystem) Update(dt float32) {
	if !s.ship.alive {
		return
	}

	sh := s.ship
	sh.Yaw += s.input.Yaw() * s.cfg.TurnRate * dt
	sh.Pitch += s.input.Pitch() * s.cfg.TurnRate * dt
	if sh.Pitch > mgl32.DegToRad(85) {
		sh.Pitch = mgl32.DegToRad(85)
	}
	if sh.Pitch < mgl32.DegToRad(-85) {
		sh.Pitch = mgl32.DegToRad(-85)
	}

	if t := s.input.Thrust(); t > 0 {
		sh.Vel = sh.Vel.Add(sh.Forward().Mul(s.cfg.ThrustAccel * t * dt))
		if speed := sh.Vel.Len(); speed > s.cfg.MaxSpeed {
			sh.Vel = sh.Vel.Mul(s.cfg.MaxSpeed / speed)
		}
	}
	sh.Pos = sh.Pos.Add(sh.Vel.Mul(dt))
	if sh.Pos.Len() > s.world.Radius {
		// Soft wall: clamp to the bound and kill outward velocity.
		sh.Pos = sh.Pos.Normalize().Mul(s.world.Radius)
		sh.Vel = mgl32.Vec3{}
	}

	s.cooldown -= dt
	s.shieldLeft -= dt
	s.rapidLeft -= dt

	if s.input.Firing() && s.cooldown <= 0 && s.guns != nil {
		s.guns.Spawn(sh.Pos, sh.Forward(), sh.Vel, FactionPlayer)
		s.cooldown = s.cfg.FireCooldown
		if s.RapidActive() {
			s.cooldown = s.cfg.FireCooldown / s.cfg.RapidFactor
		}
	}
}

// TargetPosition implements TargetProvider for the enemy controller.
func (s *ShipSystem) TargetPosition() (mgl32.Vec3, bool) {
	if !s.ship.alive {
		return mgl32.Vec3{}, false
	}
	return s.ship.Pos, true
}

// GrantBooty implements GrantSink.
func (s *ShipSystem) GrantBooty(amount int) {
	s.ctx.Stats.Booty += amount
	s.ctx.Stats.Score += 10 * amount
}

// GrantShield implements GrantSink. Picking up a second shield extends the
// timer rather than stacking.
func (s *ShipSystem) GrantShield(seconds float32) {
	if seconds > s.shieldLeft {
		s.shieldLeft = seconds
	}
	s.ctx.Log.Info("shield up", zap.Float32("seconds", seconds))
}

// GrantRapidFire implements GrantSink.
func (s *ShipSystem) GrantRapidFire(seconds float32) {
	if seconds > s.rapidLeft {
		s.rapidLeft = seconds
	}
}

// CollisionKind implements CollisionHandler.
func (s *ShipSystem) CollisionKind() Kind { return KindPlayer }

// ActiveColliders returns the ship, or nothing while it is dead — which
// silently skips every ship pair for the frame.
func (s *ShipSystem) ActiveColliders() []Collider {
	if !s.ship.alive {
		return nil
	}
	return []Collider{s.ship}
}

// HandleCollisionWith routes a hazard hit through the shield when it is up:
// the hazard side still destroys itself as normal, but the death path is
// skipped and a shield-absorb effect fires instead. Collectible contact is a
// no-op here; the pickup side applies the grant.
func (s *ShipSystem) HandleCollisionWith(kind Kind, self, other Collider) {
	if !s.ship.alive || kind == KindCollectible {
		return
	}
	if s.ShieldActive() {
		s.ctx.Stats.ShieldAbsorbs++
		if s.bursts != nil {
			s.bursts.SpawnBurst(other.Position(), other.CollisionRadius())
		}
		s.ctx.Audio.Play(CueShieldAbsorb)
		return
	}
	s.ship.alive = false
	if s.bursts != nil {
		s.bursts.SpawnBurst(s.ship.Pos, s.ship.radius*3)
	}
	s.ctx.Audio.Play(CueShipDestroyed)
	s.ctx.Log.Info("ship destroyed", zap.String("by", string(kind)))
	if s.onDestroyed != nil {
		s.onDestroyed()
	}
}

// AllForState returns the ship snapshot (empty while dead).
func (s *ShipSystem) AllForState() []Snapshot {
	if !s.ship.alive {
		return nil
	}
	return []Snapshot{{
		ID:       s.ship.id,
		Position: snapshotPosition(s.ship.Pos),
		Kind:     string(KindPlayer),
		Size:     s.ship.radius,
	}}
}
