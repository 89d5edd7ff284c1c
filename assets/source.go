package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one named asset file.
type Record struct {
	Name     string
	Contents []byte
}

// Source enumerates animation files.
type Source interface {
	Records() ([]Record, error)
}

var defaultExts = []string{".yaml", ".yml"}

// DirSource reads every file under Root in FS whose extension is in Exts.
// The record name is the file name without its extension.
type DirSource struct {
	FS   fs.FS
	Root string
	Exts []string
}

func (s DirSource) Records() ([]Record, error) {
	if s.FS == nil {
		return nil, errors.New("assets: nil filesystem")
	}
	root := "."
	if s.Root != "" {
		root = path.Clean(strings.ReplaceAll(s.Root, "\\", "/"))
	}
	exts := s.Exts
	if len(exts) == 0 {
		exts = defaultExts
	}

	var out []Record
	err := fs.WalkDir(s.FS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(exts, strings.ToLower(path.Ext(p))) {
			return nil
		}
		data, err := fs.ReadFile(s.FS, p)
		if err != nil {
			return fmt.Errorf("assets: read %s: %w", p, err)
		}
		out = append(out, Record{Name: Stem(p), Contents: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: walk %s: %w", root, err)
	}
	return out, nil
}

// Stem returns the base name of p without its extension.
func Stem(p string) string {
	base := path.Base(cleanAssetPath(p))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Decode parses a YAML document into T. Unknown fields are rejected so that a
// misspelled key fails loudly instead of silently taking its zero value.
func Decode[T any](data []byte) (T, error) {
	var out T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		var zero T
		if errors.Is(err, io.EOF) {
			return zero, errors.New("assets: empty document")
		}
		return zero, fmt.Errorf("assets: unmarshal: %w", err)
	}
	return out, nil
}

// cleanAssetPath maps a path written against the repository layout, such as
// "assets/sheets/fighter.png", onto the embedded filesystem.
func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(s, "/") {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return path.Base(s)
	}
	s = strings.TrimPrefix(s, "./")
	return strings.TrimPrefix(s, "assets/")
}
