package anim

import (
	"fmt"
	"image"
	"slices"
)

// Spec is one animation file.
type Spec struct {
	SpriteSheet   SheetSpec   `yaml:"sprite_sheet"`
	Sprites       []FrameSpec `yaml:"sprites"`
	Looping       bool        `yaml:"looping"`
	PlayBackwards bool        `yaml:"play_backwards"`
}

type SheetSpec struct {
	Texture string `yaml:"texture"`
	CountX  uint32 `yaml:"count_x"`
	CountY  uint32 `yaml:"count_y"`
}

type FrameSpec struct {
	Hurtbox bool       `yaml:"hurtbox"`
	Hitbox  *PixelRect `yaml:"hitbox"`
	// Duration is in ticks.
	Duration int `yaml:"duration"`
	// SpriteIndex defaults to the cell after the previous frame's.
	SpriteIndex *int `yaml:"sprite_index"`
}

// ImageSource resolves decoded sheet images. Lookups must be safe for
// concurrent readers.
type ImageSource interface {
	Image(id TextureID) (image.Image, bool)
}

// Load builds the frames of spec against the sheet images in images.
func Load(spec Spec, images ImageSource) (*Data, error) {
	if len(spec.Sprites) == 0 {
		return nil, ErrEmptyAnimation
	}

	texture := TextureID(spec.SpriteSheet.Texture)
	img, ok := images.Image(texture)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTextureNotFound, texture)
	}

	sprites := make([]AnnotatedSprite, 0, len(spec.Sprites))
	for i, index := range cellIndices(spec.Sprites) {
		frame := spec.Sprites[i]
		if frame.Duration <= 0 {
			return nil, fmt.Errorf("frame %d: %w (got %d)", i, ErrZeroDuration, frame.Duration)
		}
		geom, err := Extract(img, spec.SpriteSheet, index, frame.Hitbox, frame.Hurtbox)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		sprites = append(sprites, AnnotatedSprite{
			Geometry: geom,
			Texture:  texture,
			Duration: frame.Duration,
		})
	}

	if spec.PlayBackwards {
		slices.Reverse(sprites)
	}
	return &Data{sprites: sprites, looping: spec.Looping}, nil
}

// cellIndices resolves the sheet cell of every frame in authored order.
// Explicit indices are taken as is and the next frame without one continues
// from there. Gaps and repeats are allowed.
func cellIndices(frames []FrameSpec) []int {
	out := make([]int, len(frames))
	expected := 0
	for i, f := range frames {
		index := expected
		if f.SpriteIndex != nil {
			index = *f.SpriteIndex
		}
		out[i] = index
		expected = index + 1
	}
	return out
}
