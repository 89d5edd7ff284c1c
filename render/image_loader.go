package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/milk9111/spritefight/anim"
	"github.com/milk9111/spritefight/assets"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decode decodes a png, webp or bmp sprite sheet.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadDir decodes every sheet under root and registers it under its file name
// without extension.
func (r *Registry) LoadDir(fsys fs.FS, root string) error {
	if root == "" {
		root = "."
	}
	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSheet(p) {
			return nil
		}
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("render: read %s: %w", p, err)
		}
		img, err := Decode(b)
		if err != nil {
			return fmt.Errorf("render: decode %s: %w", p, err)
		}
		r.Register(anim.TextureID(assets.Stem(p)), img)
		return nil
	})
}

// LoadRecords decodes packed sheets, keyed by record name.
func (r *Registry) LoadRecords(records []assets.Record) error {
	for _, rec := range records {
		img, err := Decode(rec.Contents)
		if err != nil {
			return fmt.Errorf("render: decode %s: %w", rec.Name, err)
		}
		r.Register(anim.TextureID(rec.Name), img)
	}
	return nil
}

func isSheet(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".png", ".webp", ".bmp":
		return true
	}
	return false
}
