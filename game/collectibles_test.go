package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGrants struct {
	booty  int
	shield float32
	rapid  float32
}

func (g *recordingGrants) GrantBooty(n int)         { g.booty += n }
func (g *recordingGrants) GrantShield(s float32)    { g.shield = s }
func (g *recordingGrants) GrantRapidFire(s float32) { g.rapid = s }

func TestDropRollBootyVsPowerUp(t *testing.T) {
	ctx := testContext(4)
	cfg := DefaultConfig()
	cfg.Asteroids.PowerUpChance = 0
	s := NewCollectibleSystem(ctx, cfg, nil)

	s.SpawnDrops(mgl32.Vec3{}, mgl32.Vec3{}, 5)
	require.Equal(t, 1, s.Active())
	assert.Equal(t, CollectibleBooty, s.pool.At(0).Type)
}

func TestLargeSourceShedsExtraBooty(t *testing.T) {
	ctx := testContext(4)
	cfg := DefaultConfig()
	cfg.Asteroids.PowerUpChance = 0
	s := NewCollectibleSystem(ctx, cfg, nil)

	s.SpawnDrops(mgl32.Vec3{}, mgl32.Vec3{}, 15)
	assert.Equal(t, 2, s.Active())
}

func TestPowerUpDropAlwaysRolled(t *testing.T) {
	ctx := testContext(4)
	cfg := DefaultConfig()
	cfg.Asteroids.PowerUpChance = 1
	s := NewCollectibleSystem(ctx, cfg, nil)

	for i := 0; i < 20; i++ {
		s.SpawnDrops(mgl32.Vec3{}, mgl32.Vec3{}, 5)
	}
	for i := 0; i < s.Active(); i++ {
		typ := s.pool.At(i).Type
		assert.Contains(t, []CollectibleType{CollectibleShield, CollectibleRapid}, typ)
	}
}

func TestPickupAppliesGrant(t *testing.T) {
	ctx := testContext(4)
	cfg := DefaultConfig()
	grants := &recordingGrants{}
	s := NewCollectibleSystem(ctx, cfg, grants)

	s.spawnOne(mgl32.Vec3{}, mgl32.Vec3{}, CollectibleShield)
	s.spawnOne(mgl32.Vec3{}, mgl32.Vec3{}, CollectibleRapid)
	s.spawnOne(mgl32.Vec3{}, mgl32.Vec3{}, CollectibleBooty)
	require.Equal(t, 3, s.Active())

	for _, c := range []*Collectible{s.pool.At(0), s.pool.At(1), s.pool.At(2)} {
		s.HandleCollisionWith(KindPlayer, c, nil)
	}

	assert.Equal(t, 0, s.Active())
	assert.Equal(t, 1, grants.booty)
	assert.Equal(t, cfg.Collectibles.ShieldSeconds, grants.shield)
	assert.Equal(t, cfg.Collectibles.RapidSeconds, grants.rapid)
}

func TestPickupIgnoresNonPlayerContact(t *testing.T) {
	ctx := testContext(4)
	cfg := DefaultConfig()
	s := NewCollectibleSystem(ctx, cfg, &recordingGrants{})

	s.spawnOne(mgl32.Vec3{}, mgl32.Vec3{}, CollectibleBooty)
	c := s.pool.At(0)
	s.HandleCollisionWith(KindBullet, c, nil)
	assert.Equal(t, 1, s.Active(), "bullets fly through pickups")
}

func TestUnclaimedDropDespawns(t *testing.T) {
	ctx := testContext(4)
	cfg := DefaultConfig()
	cfg.Collectibles.Lifetime = 1
	s := NewCollectibleSystem(ctx, cfg, nil)

	s.spawnOne(mgl32.Vec3{}, mgl32.Vec3{}, CollectibleBooty)
	s.Update(0.5)
	assert.Equal(t, 1, s.Active())
	s.Update(0.6)
	assert.Equal(t, 0, s.Active())
}
