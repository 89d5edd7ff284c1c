package anim

import (
	"errors"
	"image"
	"slices"
	"testing"
)

type imageMap map[TextureID]image.Image

func (m imageMap) Image(id TextureID) (image.Image, bool) {
	img, ok := m[id]
	return img, ok
}

func intPtr(i int) *int {
	return &i
}

// gridSheet is a 4x2 grid of 4x4 cells.
func gridSheet() SheetSpec {
	return SheetSpec{Texture: "grid", CountX: 4, CountY: 2}
}

func gridImages() imageMap {
	return imageMap{"grid": sheet(16, 8)}
}

func TestCellIndices(t *testing.T) {
	cases := []struct {
		name     string
		explicit []*int
		want     []int
	}{
		{"all_default", []*int{nil, nil, nil}, []int{0, 1, 2}},
		{"explicit_then_default", []*int{intPtr(0), intPtr(5), nil}, []int{0, 5, 6}},
		{"all_explicit", []*int{intPtr(0), intPtr(5), intPtr(6)}, []int{0, 5, 6}},
		{"default_after_gap", []*int{nil, intPtr(5), nil}, []int{0, 5, 6}},
		{"backwards_explicit", []*int{intPtr(3), intPtr(1), nil}, []int{3, 1, 2}},
		{"repeat", []*int{intPtr(2), intPtr(2), nil}, []int{2, 2, 3}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			frames := make([]FrameSpec, len(c.explicit))
			for i, idx := range c.explicit {
				frames[i] = FrameSpec{Duration: 1, SpriteIndex: idx}
			}
			got := cellIndices(frames)
			if !slices.Equal(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestCellIndicesNextExpected(t *testing.T) {
	frames := []FrameSpec{
		{Duration: 1, SpriteIndex: intPtr(0)},
		{Duration: 1, SpriteIndex: intPtr(5)},
		{Duration: 1},
	}
	next := make([]int, 0, len(frames))
	for _, idx := range cellIndices(frames) {
		next = append(next, idx+1)
	}
	if want := []int{1, 6, 7}; !slices.Equal(next, want) {
		t.Fatalf("expected next-expected %v, got %v", want, next)
	}
}

func TestLoadResolvesCells(t *testing.T) {
	spec := Spec{
		SpriteSheet: gridSheet(),
		Sprites: []FrameSpec{
			{Duration: 2, SpriteIndex: intPtr(0)},
			{Duration: 3, SpriteIndex: intPtr(5)},
			{Duration: 4},
		},
		Looping: true,
	}
	data, err := Load(spec, gridImages())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.Len() != 3 || !data.Looping() {
		t.Fatalf("expected 3 looping frames, got %d looping=%v", data.Len(), data.Looping())
	}

	want := [][2]uint32{{0, 0}, {4, 4}, {8, 4}}
	for i, off := range want {
		s := data.Sprite(i)
		if s.Source.Offset != off {
			t.Errorf("frame %d: expected offset %v, got %v", i, off, s.Source.Offset)
		}
		if s.Texture != "grid" {
			t.Errorf("frame %d: expected texture grid, got %q", i, s.Texture)
		}
		if s.Duration != i+2 {
			t.Errorf("frame %d: expected duration %d, got %d", i, i+2, s.Duration)
		}
	}
}

func TestLoadPlayBackwards(t *testing.T) {
	frames := []FrameSpec{
		{Duration: 1}, // A, cell 0
		{Duration: 2}, // B, cell 1
		{Duration: 3}, // C, cell 2
	}
	data, err := Load(Spec{SpriteSheet: gridSheet(), Sprites: frames, PlayBackwards: true}, gridImages())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantX := []uint32{8, 4, 0}
	wantDur := []int{3, 2, 1}
	for i := range wantX {
		s := data.Sprite(i)
		if s.Source.Offset[0] != wantX[i] || s.Duration != wantDur[i] {
			t.Fatalf("frame %d: expected cell x=%d duration=%d, got x=%d duration=%d",
				i, wantX[i], wantDur[i], s.Source.Offset[0], s.Duration)
		}
	}
}

func TestLoadBoxesFollowFrameFlags(t *testing.T) {
	spec := Spec{
		SpriteSheet: gridSheet(),
		Sprites: []FrameSpec{
			{Duration: 1, Hurtbox: true},
			{Duration: 1, Hitbox: &PixelRect{Size: [2]uint32{1, 1}}},
		},
	}
	data, err := Load(spec, gridImages())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s := data.Sprite(0); s.Hurtbox == nil || s.Hitbox != nil {
		t.Fatalf("frame 0: expected hurtbox only, got hurtbox=%v hitbox=%v", s.Hurtbox, s.Hitbox)
	}
	if s := data.Sprite(1); s.Hurtbox != nil || s.Hitbox == nil {
		t.Fatalf("frame 1: expected hitbox only, got hurtbox=%v hitbox=%v", s.Hurtbox, s.Hitbox)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name   string
		spec   Spec
		images imageMap
		want   error
	}{
		{
			name:   "missing_texture",
			spec:   Spec{SpriteSheet: SheetSpec{Texture: "nope", CountX: 1, CountY: 1}, Sprites: []FrameSpec{{Duration: 1}}},
			images: gridImages(),
			want:   ErrTextureNotFound,
		},
		{
			name:   "no_frames",
			spec:   Spec{SpriteSheet: gridSheet()},
			images: gridImages(),
			want:   ErrEmptyAnimation,
		},
		{
			name:   "zero_duration",
			spec:   Spec{SpriteSheet: gridSheet(), Sprites: []FrameSpec{{Duration: 1}, {Duration: 0}}},
			images: gridImages(),
			want:   ErrZeroDuration,
		},
		{
			name:   "index_out_of_grid",
			spec:   Spec{SpriteSheet: gridSheet(), Sprites: []FrameSpec{{Duration: 1, SpriteIndex: intPtr(7)}, {Duration: 1}}},
			images: gridImages(),
			want:   ErrFrameOutOfGrid,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := Load(c.spec, c.images)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if data != nil {
				t.Fatalf("expected no data on error")
			}
		})
	}
}
