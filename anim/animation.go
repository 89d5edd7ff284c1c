package anim

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/jakecoffman/cp"
)

// Data is a loaded animation. It is never modified after construction and is
// shared by every Animation playing it.
type Data struct {
	sprites []AnnotatedSprite
	looping bool
}

// NewData builds an animation from already extracted frames. sprites is copied.
func NewData(sprites []AnnotatedSprite, looping bool) (*Data, error) {
	if len(sprites) == 0 {
		return nil, ErrEmptyAnimation
	}
	for i, s := range sprites {
		if s.Duration <= 0 {
			return nil, fmt.Errorf("frame %d: %w (got %d)", i, ErrZeroDuration, s.Duration)
		}
	}
	return &Data{sprites: slices.Clone(sprites), looping: looping}, nil
}

// Instance returns a new playback cursor on the first frame of d.
func (d *Data) Instance() Animation {
	return Animation{data: d}
}

func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.sprites)
}

func (d *Data) Looping() bool { return d != nil && d.looping }

// Sprite returns frame i. The frame belongs to d and must not be modified.
func (d *Data) Sprite(i int) *AnnotatedSprite {
	if d == nil || i < 0 || i >= len(d.sprites) {
		return nil
	}
	return &d.sprites[i]
}

// TotalDuration is the number of ticks one pass over every frame takes.
func (d *Data) TotalDuration() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, s := range d.sprites {
		total += s.Duration
	}
	return total
}

// Animation is a per-character playback cursor into a shared Data.
type Animation struct {
	data         *Data
	spriteIndex  int
	frameCounter int
}

// Advance moves the cursor by one tick. It returns true on the tick a
// non-looping animation runs past its last frame; the cursor is then back on
// frame 0 and keeps playing unless the owner swaps animations.
func (a *Animation) Advance() (finished bool) {
	if a == nil || a.data.Len() == 0 {
		return false
	}
	a.frameCounter++
	if a.frameCounter < a.data.sprites[a.spriteIndex].Duration {
		return false
	}

	a.frameCounter = 0
	a.spriteIndex++
	if a.spriteIndex >= len(a.data.sprites) {
		a.spriteIndex = 0
		return !a.data.looping
	}
	return false
}

// Reset puts the cursor back on the first tick of the first frame.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.spriteIndex = 0
	a.frameCounter = 0
}

// IsInstance reports whether a plays d itself, not merely an equal copy.
func (a *Animation) IsInstance(d *Data) bool {
	return a != nil && a.data != nil && a.data == d
}

func (a *Animation) Data() *Data { return a.data }

func (a *Animation) Index() int { return a.spriteIndex }

func (a *Animation) FrameCounter() int { return a.frameCounter }

// Sprite returns the current frame, nil for a zero Animation.
func (a *Animation) Sprite() *AnnotatedSprite {
	if a == nil {
		return nil
	}
	return a.data.Sprite(a.spriteIndex)
}

// Blend selects how a frame is composited.
type Blend int

const (
	BlendAlpha Blend = iota
	BlendAdditive
)

// DrawRequest is one sprite draw. Position and Size are world units; Source
// selects the cell of the sheet named by Texture.
type DrawRequest struct {
	Texture  TextureID
	Position cp.Vector
	Tint     color.Color
	Source   image.Rectangle
	Size     cp.Vector
	FlipX    bool
	FlipY    bool
	Blend    Blend
}

// Drawer submits draw requests to a renderer.
type Drawer interface {
	Draw(req DrawRequest)
}

// Render draws the current frame centred on pos. Sprites face East; West
// flips them horizontally.
func (a *Animation) Render(dst Drawer, tint color.Color, pos cp.Vector, facing Facing) {
	s := a.Sprite()
	if s == nil || dst == nil {
		return
	}
	dst.Draw(DrawRequest{
		Texture:  s.Texture,
		Position: pos,
		Tint:     tint,
		Source:   s.Source.Rect(),
		Size:     s.Size,
		FlipX:    facing == West,
		Blend:    BlendAlpha,
	})
}
