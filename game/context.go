package game

import (
	"math/rand"

	"go.uber.org/zap"
)

// Cue identifies a sound effect at the audio boundary. Playback itself lives
// outside the core.
type Cue int

const (
	CueShot Cue = iota
	CueExplosion
	CuePickup
	CueShieldAbsorb
	CueShipDestroyed
)

// AudioPlayer is the boundary to the (external) audio subsystem.
type AudioPlayer interface {
	Play(cue Cue)
}

// NopAudio discards every cue. It is the default so the core never depends on
// a live audio device.
type NopAudio struct{}

func (NopAudio) Play(Cue) {}

// Stats accumulates run totals for the HUD and external state consumers.
type Stats struct {
	Score             int
	AsteroidsDestroyed int
	EnemiesDestroyed  int
	Booty             int
	ShieldAbsorbs     int
	ShotsFired        int
}

// Context bundles the dependencies every controller needs: no globals, so
// controllers are testable without a live environment.
type Context struct {
	Log   *zap.Logger
	Rand  *rand.Rand
	Audio AudioPlayer
	Stats *Stats
}

// NewContext builds a Context with the given logger and seed. A nil logger
// falls back to zap.NewNop so tests need no setup.
func NewContext(log *zap.Logger, seed int64) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{
		Log:   log,
		Rand:  rand.New(rand.NewSource(seed)),
		Audio: NopAudio{},
		Stats: &Stats{},
	}
}
