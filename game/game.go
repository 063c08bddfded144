package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// Game owns every controller and drives the frame loop: input, entity
// updates, collision dispatch, transform flush, draw. It satisfies
// ebiten.Game.
type Game struct {
	ctx *Context
	cfg Config

	input        *PlayerInput
	shipSys      *ShipSystem
	asteroids    *AsteroidSystem
	projectiles  *ProjectileSystem
	particles    *ParticleSystem
	enemies      *EnemySystem
	collectibles *CollectibleSystem
	collisions   *CollisionSystem
	renderer     *Renderer

	waveTimer float32
	over      bool
	last      time.Time
}

func New(cfg Config, log *zap.Logger, seed int64) *Game {
	ctx := NewContext(log, seed)

	g := &Game{
		ctx:       ctx,
		cfg:       cfg,
		input:     NewPlayerInput(),
		waveTimer: cfg.Enemies.WaveInterval,
	}

	g.projectiles = NewProjectileSystem(ctx, cfg)
	g.particles = NewParticleSystem(ctx, cfg)
	g.shipSys = NewShipSystem(ctx, cfg, g.input, g.projectiles, g.particles)
	g.collectibles = NewCollectibleSystem(ctx, cfg, g.shipSys)
	g.asteroids = NewAsteroidSystem(ctx, cfg, g.particles, g.collectibles)
	g.enemies = NewEnemySystem(ctx, cfg, g.projectiles, g.shipSys, g.particles, g.collectibles)

	g.shipSys.OnDestroyed(func() { g.over = true })

	g.collisions = NewCollisionSystem(ctx)
	g.collisions.Register(g.shipSys)
	g.collisions.Register(g.asteroids)
	g.collisions.Register(g.projectiles)
	g.collisions.Register(g.enemies)
	g.collisions.Register(g.collectibles)
	g.wirePairs()

	cam := NewCamera(cfg.World.ScreenWidth, cfg.World.ScreenHeight)
	g.renderer = NewRenderer(cam)
	g.renderer.AddSource(g.asteroids, RenderResource{
		Color: color.NRGBA{R: 150, G: 130, B: 110, A: 255}, MinPixels: 1.5,
	})
	g.renderer.AddSource(g.enemies, RenderResource{
		Color: color.NRGBA{R: 230, G: 70, B: 70, A: 255}, MinPixels: 2,
	})
	g.renderer.AddSource(g.projectiles, RenderResource{
		Color: color.NRGBA{R: 255, G: 235, B: 120, A: 255}, MinPixels: 1.5,
	})
	g.renderer.AddSource(g.collectibles, RenderResource{
		Color: color.NRGBA{R: 90, G: 220, B: 230, A: 255}, MinPixels: 2,
	})
	g.renderer.AddSource(g.particles, RenderResource{
		Color: color.NRGBA{R: 255, G: 160, B: 60, A: 200}, MinPixels: 1,
	})

	g.populateAsteroids()
	return g
}

func bulletOfFaction(f Faction) PairFilter {
	return func(a, b Collider) bool {
		pr, ok := a.(*Projectile)
		if !ok {
			pr, ok = b.(*Projectile)
		}
		return ok && pr.Faction() == f
	}
}

// bulletHostileTo admits only shots fired by a faction hostile to f.
func bulletHostileTo(f Faction) PairFilter {
	return func(a, b Collider) bool {
		pr, ok := a.(*Projectile)
		if !ok {
			pr, ok = b.(*Projectile)
		}
		return ok && Hostile(pr.Faction(), f)
	}
}

// wirePairs declares which collider kinds interact. Pickups come before
// hazard pairs so a shield absorb cannot suppress a pickup in the same
// frame; the ship stops at its first hazard hit, a bullet at its first
// target.
func (g *Game) wirePairs() {
	// Pickups use a generous radius so flying near one is enough.
	g.collisions.AddPair(Pair{A: KindPlayer, B: KindCollectible, RadiusScale: 1.5})

	g.collisions.AddPair(Pair{
		A: KindBullet, B: KindAsteroid,
		ConsumeA: true,
		Filter:   bulletOfFaction(FactionPlayer),
	})
	g.collisions.AddPair(Pair{
		A: KindBullet, B: KindEnemy,
		ConsumeA: true,
		Filter:   bulletHostileTo(FactionEnemy),
	})

	g.collisions.AddPair(Pair{A: KindPlayer, B: KindAsteroid, ConsumeA: true})
	g.collisions.AddPair(Pair{
		A: KindPlayer, B: KindBullet,
		ConsumeA: true, ConsumeB: true,
		Filter: bulletHostileTo(FactionPlayer),
	})
	g.collisions.AddPair(Pair{A: KindPlayer, B: KindEnemy, ConsumeA: true})
}

// populateAsteroids tops the field up to the configured population.
func (g *Game) populateAsteroids() {
	for g.asteroids.Active() < g.cfg.Asteroids.Population {
		if g.asteroids.Spawn() == nil {
			break
		}
	}
}

func (g *Game) Update() error {
	now := time.Now()
	dt := float32(now.Sub(g.last).Seconds())
	g.last = now
	if dt <= 0 || dt > 0.1 {
		dt = 1.0 / 60
	}

	g.input.Update(dt)

	if g.over {
		if g.input.Respawn() {
			g.restart()
		}
		// keep the world drifting behind the game-over screen
		g.asteroids.Update(dt)
		g.particles.Update(dt)
		g.flushAll()
		return nil
	}

	g.shipSys.Update(dt)
	g.asteroids.Update(dt)
	g.enemies.Update(dt)
	g.projectiles.Update(dt)
	g.collectibles.Update(dt)
	g.particles.Update(dt)

	g.populateAsteroids()
	g.waveTimer -= dt
	if g.waveTimer <= 0 {
		g.waveTimer = g.cfg.Enemies.WaveInterval
		for i := 0; i < g.cfg.Enemies.WaveSize; i++ {
			if g.enemies.Spawn() == nil {
				break
			}
		}
	}

	g.collisions.Check()

	g.flushAll()
	return nil
}

func (g *Game) flushAll() {
	g.asteroids.Flush()
	g.projectiles.Flush()
	g.particles.Flush()
	g.enemies.Flush()
	g.collectibles.Flush()
}

// restart clears every pool and respawns the ship with fresh stats. Score
// does not carry over.
func (g *Game) restart() {
	g.asteroids.ClearAll()
	g.projectiles.ClearAll()
	g.particles.ClearAll()
	g.enemies.ClearAll()
	g.collectibles.ClearAll()

	*g.ctx.Stats = Stats{}
	g.shipSys.Respawn()
	g.waveTimer = g.cfg.Enemies.WaveInterval
	g.over = false
	g.populateAsteroids()
}

// StateSnapshot reports every live entity across all pools, for overlays and
// tests.
func (g *Game) StateSnapshot() []Snapshot {
	var out []Snapshot
	out = append(out, g.shipSys.AllForState()...)
	out = append(out, g.asteroids.AllForState()...)
	out = append(out, g.enemies.AllForState()...)
	out = append(out, g.projectiles.AllForState()...)
	out = append(out, g.collectibles.AllForState()...)
	return out
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 8, G: 8, B: 16, A: 255})
	g.renderer.Draw(screen, g.shipSys.Ship())
	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.ctx.Stats
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("SCORE %d   BOOTY %d   ROCKS %d   FOES %d",
			st.Score, st.Booty, g.asteroids.Active(), g.enemies.Active()),
		8, 8)

	status := ""
	if g.shipSys.ShieldActive() {
		status += "[SHIELD] "
	}
	if g.shipSys.RapidActive() {
		status += "[RAPID] "
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 8, 24)
	}

	if g.over {
		cx := g.cfg.World.ScreenWidth/2 - 60
		cy := g.cfg.World.ScreenHeight / 2
		ebitenutil.DebugPrintAt(screen, "SHIP DESTROYED", cx, cy)
		ebitenutil.DebugPrintAt(screen, "press R to fly again", cx-10, cy+16)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.World.ScreenWidth, g.cfg.World.ScreenHeight
}
