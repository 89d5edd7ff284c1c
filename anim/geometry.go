package anim

import (
	"fmt"
	"image"

	"github.com/jakecoffman/cp"
)

// normalizationScale relates cell pixels to world units: a cell is
// 1/normalizationScale world units wide.
const normalizationScale = 2.5

// Extract slices cell index out of the sheet img and derives the frame geometry.
//
// Cells are numbered row-major. Sheets whose dimensions are not a multiple of
// the grid are truncated. When wantsHurtbox is set the hurtbox is the tight
// bounding box of the pixels with non-zero alpha; a fully transparent cell
// yields an empty box rather than an error. hitbox, when present, is in
// cell-local pixels.
func Extract(img image.Image, sheet SheetSpec, index int, hitbox *PixelRect, wantsHurtbox bool) (Geometry, error) {
	if img == nil {
		return Geometry{}, ErrTextureNotFound
	}
	if sheet.CountX == 0 || sheet.CountY == 0 {
		return Geometry{}, fmt.Errorf("%w: grid %dx%d", ErrInvalidSheet, sheet.CountX, sheet.CountY)
	}

	bounds := img.Bounds()
	cellW := bounds.Dx() / int(sheet.CountX)
	cellH := bounds.Dy() / int(sheet.CountY)
	if cellW <= 0 || cellH <= 0 {
		return Geometry{}, fmt.Errorf("%w: %dx%d image is smaller than its %dx%d grid",
			ErrInvalidSheet, bounds.Dx(), bounds.Dy(), sheet.CountX, sheet.CountY)
	}

	if index < 0 {
		return Geometry{}, fmt.Errorf("%w: index %d", ErrFrameOutOfGrid, index)
	}
	col := index % int(sheet.CountX)
	row := index / int(sheet.CountX)
	if row >= int(sheet.CountY) {
		return Geometry{}, fmt.Errorf("%w: index %d is in row %d of %d", ErrFrameOutOfGrid, index, row, sheet.CountY)
	}

	sx, sy := cellW*col, cellH*row
	geom := Geometry{
		Source: PixelRect{
			Offset: [2]uint32{uint32(sx), uint32(sy)},
			Size:   [2]uint32{uint32(cellW), uint32(cellH)},
		},
	}

	w, h := float64(cellW), float64(cellH)
	nf := w * normalizationScale
	geom.Size = cp.Vector{X: w / nf, Y: h / nf}

	if wantsHurtbox {
		cell := image.Rect(sx, sy, sx+cellW, sy+cellH).Add(bounds.Min)
		minX, minY, maxX, maxY := opaqueBounds(img, cell)
		geom.Hurtbox = &cp.BB{
			L: (float64(minX) - w/2) / nf,
			B: -(float64(maxY) - h/2) / nf,
			R: (float64(maxX) - w/2) / nf,
			T: -(float64(minY) - h/2) / nf,
		}
	}

	if hitbox != nil {
		// in: pixels, y down, (0,0) top-left of the cell
		// out: world units, y up, (0,0) centre of the cell
		x := (float64(hitbox.Offset[0]) - w/2) / nf
		y := -(float64(hitbox.Offset[1]) - h/2) / nf
		hw := float64(hitbox.Size[0]) / nf
		hh := float64(hitbox.Size[1]) / nf
		geom.Hitbox = &cp.BB{L: x, B: y - hh, R: x + hw, T: y}
	}

	return geom, nil
}

// opaqueBounds returns the cell-local bounding box of pixels with non-zero
// alpha. max is exclusive. With no opaque pixel min stays at size-1 and max at
// 0.
func opaqueBounds(img image.Image, cell image.Rectangle) (minX, minY, maxX, maxY int) {
	minX, minY = cell.Dx()-1, cell.Dy()-1
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			if alphaAt(img, x, y) == 0 {
				continue
			}
			lx, ly := x-cell.Min.X, y-cell.Min.Y
			minX = min(minX, lx)
			maxX = max(maxX, lx+1)
			minY = min(minY, ly)
			maxY = max(maxY, ly+1)
		}
	}
	return minX, minY, maxX, maxY
}

func alphaAt(img image.Image, x, y int) uint32 {
	switch im := img.(type) {
	case *image.NRGBA:
		return uint32(im.Pix[im.PixOffset(x, y)+3])
	case *image.RGBA:
		return uint32(im.Pix[im.PixOffset(x, y)+3])
	}
	_, _, _, a := img.At(x, y).RGBA()
	return a
}
