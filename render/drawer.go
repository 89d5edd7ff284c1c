package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritefight/anim"
)

// DefaultPixelsPerUnit renders every cell 128 pixels wide.
const DefaultPixelsPerUnit = 320

// ScreenDrawer draws animation frames onto Screen. The world is y-up with
// Camera at the centre of the screen.
type ScreenDrawer struct {
	Screen        *ebiten.Image
	Textures      *Registry
	Camera        cp.Vector
	PixelsPerUnit float64
}

func (d *ScreenDrawer) ppu() float64 {
	if d.PixelsPerUnit <= 0 {
		return DefaultPixelsPerUnit
	}
	return d.PixelsPerUnit
}

// ToScreen converts a world position to screen pixels.
func (d *ScreenDrawer) ToScreen(p cp.Vector) (float64, float64) {
	return toScreen(p, d.Camera, d.ppu(), d.Screen.Bounds())
}

func (d *ScreenDrawer) Draw(req anim.DrawRequest) {
	if d.Screen == nil || d.Textures == nil {
		return
	}
	tex := d.Textures.Texture(req.Texture)
	if tex == nil || req.Source.Empty() {
		return
	}
	sub, ok := tex.SubImage(req.Source).(*ebiten.Image)
	if !ok {
		return
	}

	x, y := d.ToScreen(req.Position)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = spriteGeoM(req, d.ppu(), x, y)
	op.Filter = ebiten.FilterNearest
	if req.Tint != nil {
		op.ColorScale.ScaleWithColor(req.Tint)
	}
	op.Blend = blend(req.Blend)
	d.Screen.DrawImage(sub, op)
}

// DrawBox outlines a world-space box. Empty boxes are skipped.
func (d *ScreenDrawer) DrawBox(b cp.BB, clr color.Color) {
	if d.Screen == nil || anim.Empty(b) {
		return
	}
	x0, y0 := d.ToScreen(cp.Vector{X: b.L, Y: b.T})
	x1, y1 := d.ToScreen(cp.Vector{X: b.R, Y: b.B})
	vector.StrokeRect(d.Screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1, clr, false)
}

func toScreen(p, camera cp.Vector, ppu float64, bounds image.Rectangle) (float64, float64) {
	cx := float64(bounds.Min.X) + float64(bounds.Dx())/2
	cy := float64(bounds.Min.Y) + float64(bounds.Dy())/2
	return cx + (p.X-camera.X)*ppu, cy - (p.Y-camera.Y)*ppu
}

// spriteGeoM maps the source cell onto a destination of req.Size world units
// centred on (x, y) in screen pixels.
func spriteGeoM(req anim.DrawRequest, ppu, x, y float64) ebiten.GeoM {
	srcW := float64(req.Source.Dx())
	srcH := float64(req.Source.Dy())

	var g ebiten.GeoM
	g.Translate(-srcW/2, -srcH/2)
	if req.FlipX {
		g.Scale(-1, 1)
	}
	if req.FlipY {
		g.Scale(1, -1)
	}
	g.Scale(req.Size.X*ppu/srcW, req.Size.Y*ppu/srcH)
	g.Translate(x, y)
	return g
}

func blend(b anim.Blend) ebiten.Blend {
	if b == anim.BlendAdditive {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}
