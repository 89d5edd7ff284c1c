package anim

import (
	"fmt"
	"maps"
	"runtime"
	"slices"

	"github.com/milk9111/spritefight/assets"
	"golang.org/x/sync/errgroup"
)

// Catalog is the read-only table of loaded animations, keyed by name.
type Catalog struct {
	anims map[string]*Data
}

// BuildCatalog decodes and loads every record of src. Records are loaded in
// parallel and only read images. The first failure aborts the build and names
// the animation it came from.
func BuildCatalog(src assets.Source, images ImageSource) (*Catalog, error) {
	records, err := src.Records()
	if err != nil {
		return nil, fmt.Errorf("anim: enumerate animations: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAnimation, r.Name)
		}
		seen[r.Name] = struct{}{}
	}

	loaded := make([]*Data, len(records))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r := range records {
		g.Go(func() error {
			spec, err := assets.Decode[Spec](r.Contents)
			if err != nil {
				return fmt.Errorf("anim: load %q: %w", r.Name, err)
			}
			data, err := Load(spec, images)
			if err != nil {
				return fmt.Errorf("anim: load %q: %w", r.Name, err)
			}
			loaded[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Catalog{anims: make(map[string]*Data, len(records))}
	for i, r := range records {
		c.anims[r.Name] = loaded[i]
	}
	return c, nil
}

// Get returns the shared animation registered under name.
func (c *Catalog) Get(name string) (*Data, bool) {
	if c == nil || name == "" {
		return nil, false
	}
	d, ok := c.anims[name]
	return d, ok
}

// Instance starts a new cursor on the animation registered under name.
func (c *Catalog) Instance(name string) (Animation, bool) {
	d, ok := c.Get(name)
	if !ok {
		return Animation{}, false
	}
	return d.Instance(), true
}

// Names returns every animation name in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.anims))
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.anims)
}
