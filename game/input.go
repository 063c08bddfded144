package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputProvider abstracts the ship's controls so flight logic is testable
// without a keyboard. Axes are -1..1, thrust 0..1.
type InputProvider interface {
	Yaw() float32
	Pitch() float32
	Thrust() float32
	Firing() bool
	Respawn() bool
	Update(dt float32)
}

// PlayerInput reads the keyboard: arrows/AD yaw, arrows/WS pitch, shift
// thrust, space fire, R respawn.
type PlayerInput struct{}

// NewPlayerInput creates the keyboard-backed provider.
func NewPlayerInput() *PlayerInput { return &PlayerInput{} }

func (p *PlayerInput) Yaw() float32 {
	var v float32
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		v -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		v += 1
	}
	return v
}

func (p *PlayerInput) Pitch() float32 {
	var v float32
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		v += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		v -= 1
	}
	return v
}

func (p *PlayerInput) Thrust() float32 {
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		return 1
	}
	return 0
}

func (p *PlayerInput) Firing() bool {
	return ebiten.IsKeyPressed(ebiten.KeySpace)
}

func (p *PlayerInput) Respawn() bool {
	return ebiten.IsKeyPressed(ebiten.KeyR)
}

func (p *PlayerInput) Update(float32) {}
