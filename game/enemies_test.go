package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTarget struct {
	pos mgl32.Vec3
	ok  bool
}

func (f *fixedTarget) TargetPosition() (mgl32.Vec3, bool) { return f.pos, f.ok }

type recordingGuns struct {
	shots []Faction
}

func (g *recordingGuns) Spawn(_, _, _ mgl32.Vec3, side Faction) *Projectile {
	g.shots = append(g.shots, side)
	return nil
}

func TestChaserClosesOnTarget(t *testing.T) {
	ctx := testContext(1)
	cfg := DefaultConfig()
	target := &fixedTarget{ok: true}
	s := NewEnemySystem(ctx, cfg, nil, target, nil, nil)

	e := s.Spawn()
	require.NotNil(t, e)
	e.Type = EnemyChaser

	before := e.Pos.Sub(target.pos).Len()
	for i := 0; i < 60; i++ {
		s.Update(1.0 / 60)
	}
	after := e.Pos.Sub(target.pos).Len()
	assert.Less(t, after, before, "chasers must close distance")
}

func TestShooterHoldsRangeAndFires(t *testing.T) {
	ctx := testContext(1)
	cfg := DefaultConfig()
	target := &fixedTarget{ok: true}
	guns := &recordingGuns{}
	s := NewEnemySystem(ctx, cfg, guns, target, nil, nil)

	e := s.Spawn()
	require.NotNil(t, e)
	e.Type = EnemyShooter
	e.Pos = mgl32.Vec3{cfg.Enemies.ShooterRange * 0.5, 0, 0}
	e.Cooldown = 0

	s.Update(1.0 / 60)
	require.Len(t, guns.shots, 1)
	assert.Equal(t, FactionEnemy, guns.shots[0], "enemy shots carry the enemy faction")
	assert.Equal(t, mgl32.Vec3{}, e.Vel, "shooters hold position inside range")

	// Cooldown was reset; the very next frame must not fire again.
	s.Update(1.0 / 60)
	assert.Len(t, guns.shots, 1)
}

func TestEnemiesIdleWithoutTarget(t *testing.T) {
	ctx := testContext(1)
	cfg := DefaultConfig()
	target := &fixedTarget{ok: false}
	guns := &recordingGuns{}
	s := NewEnemySystem(ctx, cfg, guns, target, nil, nil)

	e := s.Spawn()
	require.NotNil(t, e)
	pos := e.Pos

	for i := 0; i < 30; i++ {
		s.Update(1.0 / 60)
	}
	assert.Equal(t, pos, e.Pos, "no target, no movement")
	assert.Empty(t, guns.shots)
}

func TestEnemyBulletKillScoresAndDrops(t *testing.T) {
	ctx := testContext(2)
	cfg := DefaultConfig()
	bursts := &recordingBursts{}
	drops := &recordingDrops{}
	target := &fixedTarget{ok: true}
	s := NewEnemySystem(ctx, cfg, nil, target, bursts, drops)

	e := s.Spawn()
	require.NotNil(t, e)

	s.HandleCollisionWith(KindBullet, e, nil)
	assert.False(t, e.Alive())
	assert.Equal(t, 0, s.Active())
	assert.Equal(t, 1, ctx.Stats.EnemiesDestroyed)
	assert.Equal(t, 50, ctx.Stats.Score)
	assert.Len(t, bursts.calls, 1)
}

func TestEnemyRamKillNoScore(t *testing.T) {
	ctx := testContext(2)
	cfg := DefaultConfig()
	target := &fixedTarget{ok: true}
	s := NewEnemySystem(ctx, cfg, nil, target, nil, nil)

	e := s.Spawn()
	s.HandleCollisionWith(KindPlayer, e, nil)
	assert.False(t, e.Alive())
	assert.Equal(t, 0, ctx.Stats.Score, "detonating on the ship scores nothing")
}
