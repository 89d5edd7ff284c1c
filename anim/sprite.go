package anim

import (
	"errors"
	"image"

	"github.com/jakecoffman/cp"
)

var (
	ErrTextureNotFound    = errors.New("anim: texture not found")
	ErrFrameOutOfGrid     = errors.New("anim: frame index outside sprite sheet grid")
	ErrInvalidSheet       = errors.New("anim: invalid sprite sheet layout")
	ErrZeroDuration       = errors.New("anim: frame duration must be positive")
	ErrEmptyAnimation     = errors.New("anim: animation has no frames")
	ErrDuplicateAnimation = errors.New("anim: duplicate animation name")
)

// TextureID names a decoded sprite sheet. It is a lookup key, the texture
// itself is owned by whoever registered it.
type TextureID string

// PixelRect is a rectangle in sheet pixels. Top-left is (0,0), y grows down.
type PixelRect struct {
	Offset [2]uint32 `yaml:"offset"`
	Size   [2]uint32 `yaml:"size"`
}

// Rect converts r to an image.Rectangle for draw submission.
func (r PixelRect) Rect() image.Rectangle {
	x, y := int(r.Offset[0]), int(r.Offset[1])
	return image.Rect(x, y, x+int(r.Size[0]), y+int(r.Size[1]))
}

// Facing is the direction a character looks in. Sprites are authored facing East.
type Facing int

const (
	East Facing = iota
	West
)

func (f Facing) String() string {
	if f == West {
		return "west"
	}
	return "east"
}

// Geometry is the part of a frame derived from the sheet image.
//
// Hurtbox and Hitbox use the character frame of reference at world scale:
// origin at the centre of the cell, y up.
type Geometry struct {
	Source  PixelRect
	Hurtbox *cp.BB
	Hitbox  *cp.BB
	Size    cp.Vector
}

// AnnotatedSprite is one playable frame.
type AnnotatedSprite struct {
	Geometry
	Texture  TextureID
	Duration int
}

// WorldHurtbox places the hurtbox of s at pos, mirrored when facing West.
func (s *AnnotatedSprite) WorldHurtbox(pos cp.Vector, facing Facing) (cp.BB, bool) {
	if s == nil || s.Hurtbox == nil {
		return cp.BB{}, false
	}
	return placeBox(*s.Hurtbox, pos, facing), true
}

// WorldHitbox places the hitbox of s at pos, mirrored when facing West.
func (s *AnnotatedSprite) WorldHitbox(pos cp.Vector, facing Facing) (cp.BB, bool) {
	if s == nil || s.Hitbox == nil {
		return cp.BB{}, false
	}
	return placeBox(*s.Hitbox, pos, facing), true
}

func placeBox(b cp.BB, pos cp.Vector, facing Facing) cp.BB {
	if facing == West {
		b.L, b.R = -b.R, -b.L
	}
	return cp.BB{L: b.L + pos.X, B: b.B + pos.Y, R: b.R + pos.X, T: b.T + pos.Y}
}

// Empty reports whether b encloses no area, which is what an all-transparent
// frame produces for its hurtbox.
func Empty(b cp.BB) bool {
	return b.L >= b.R || b.B >= b.T
}

// Overlaps reports whether a hitbox and a hurtbox touch. Empty boxes never do.
func Overlaps(a, b cp.BB) bool {
	if Empty(a) || Empty(b) {
		return false
	}
	return a.Intersects(b)
}
