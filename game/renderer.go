package game

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderResource is the per-controller visual setup the renderer needs: the
// geometry/material equivalent for a pool drawn as instanced circles.
type RenderResource struct {
	Color     color.NRGBA
	MinPixels float32
}

// RenderSource is a flushed transform buffer plus its dirty handshake. Every
// controller with a pool satisfies it.
type RenderSource interface {
	Transforms() []Transform
	Dirty() bool
	MarkClean()
}

type renderLayer struct {
	source   RenderSource
	resource RenderResource
}

// Camera is a chase camera behind the ship. It produces the view-projection
// matrix the renderer uses to place transform-buffer entries on screen.
type Camera struct {
	Width, Height float32
	FOV           float32 // vertical, radians

	viewProj mgl32.Mat4
	focal    float32
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Width:  float32(width),
		Height: float32(height),
		FOV:    mgl32.DegToRad(70),
	}
}

// Follow rebuilds the view-projection for the given ship pose.
func (c *Camera) Follow(sh *Ship) {
	fwd := sh.Forward()
	up := mgl32.Vec3{0, 1, 0}
	eye := sh.Pos.Sub(fwd.Mul(55)).Add(up.Mul(18))
	view := mgl32.LookAtV(eye, sh.Pos.Add(fwd.Mul(40)), up)
	proj := mgl32.Perspective(c.FOV, c.Width/c.Height, 1, 4000)
	c.viewProj = proj.Mul4(view)
	c.focal = c.Height / 2 / float32(math.Tan(float64(c.FOV)/2))
}

// Project maps a world position to screen coordinates plus a pixel scale
// factor for sizes at that depth. ok is false behind the camera.
func (c *Camera) Project(p mgl32.Vec3) (sx, sy, scale float32, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0.1 {
		return 0, 0, 0, false
	}
	sx = (clip.X()/w + 1) / 2 * c.Width
	sy = (1 - clip.Y()/w) / 2 * c.Height
	scale = c.focal / w
	return sx, sy, scale, true
}

// Renderer consumes the transform buffers and draws each pool as a batch of
// circles. It reads a buffer only after the owning pool has flushed it, and
// acknowledges the flush by marking the buffer clean.
type Renderer struct {
	camera *Camera
	layers []renderLayer
}

func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{camera: camera}
}

// AddSource registers a transform buffer with its visual setup. Draw order
// follows registration order.
func (r *Renderer) AddSource(src RenderSource, res RenderResource) {
	r.layers = append(r.layers, renderLayer{source: src, resource: res})
}

// Draw renders every registered buffer for the frame.
func (r *Renderer) Draw(screen *ebiten.Image, sh *Ship) {
	r.camera.Follow(sh)

	for _, layer := range r.layers {
		for _, t := range layer.source.Transforms() {
			sx, sy, scale, ok := r.camera.Project(t.Position)
			if !ok {
				continue
			}
			radius := t.Scale.X() * scale
			if radius < layer.resource.MinPixels {
				radius = layer.resource.MinPixels
			}
			if sx < -radius || sx > r.camera.Width+radius ||
				sy < -radius || sy > r.camera.Height+radius {
				continue
			}
			vector.DrawFilledCircle(screen, sx, sy, radius, layer.resource.Color, true)
		}
		layer.source.MarkClean()
	}

	r.drawShipMarker(screen)
}

// drawShipMarker draws the chase-cam reticle: the ship sits at a fixed spot
// below screen center, aiming at the crosshair.
func (r *Renderer) drawShipMarker(screen *ebiten.Image) {
	cx := r.camera.Width / 2
	cy := r.camera.Height / 2

	cross := color.NRGBA{R: 120, G: 210, B: 255, A: 255}
	vector.StrokeLine(screen, cx-8, cy, cx+8, cy, 1, cross, true)
	vector.StrokeLine(screen, cx, cy-8, cx, cy+8, 1, cross, true)

	hull := color.NRGBA{R: 180, G: 255, B: 200, A: 255}
	sy := cy + r.camera.Height*0.22
	vector.StrokeLine(screen, cx, sy-12, cx-9, sy+8, 2, hull, true)
	vector.StrokeLine(screen, cx, sy-12, cx+9, sy+8, 2, hull, true)
	vector.StrokeLine(screen, cx-9, sy+8, cx+9, sy+8, 2, hull, true)
}
