package assets

import (
	"embed"
	"io/fs"
)

//go:embed animations/*.yaml sheets/*.png
var assetsFS embed.FS

// Animations returns the animation files bundled with the binary.
func Animations() DirSource {
	return DirSource{FS: assetsFS, Root: "animations"}
}

// Sheets returns the sprite sheets bundled with the binary, rooted at the
// sheets directory.
func Sheets() fs.FS {
	sub, err := fs.Sub(assetsFS, "sheets")
	if err != nil {
		// fs.Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}

// LoadFile loads a bundled asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}
