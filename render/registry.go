package render

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spritefight/anim"
)

// Registry holds decoded sprite sheets by texture id. The decoded image feeds
// geometry extraction; the GPU texture is created on first draw.
type Registry struct {
	mu       sync.RWMutex
	images   map[anim.TextureID]image.Image
	textures map[anim.TextureID]*ebiten.Image
}

func NewRegistry() *Registry {
	return &Registry{
		images:   make(map[anim.TextureID]image.Image),
		textures: make(map[anim.TextureID]*ebiten.Image),
	}
}

// Register stores img under id, replacing any previous sheet and its texture.
func (r *Registry) Register(id anim.TextureID, img image.Image) {
	if id == "" || img == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images[id] = img
	delete(r.textures, id)
}

// Image returns the decoded sheet registered under id.
func (r *Registry) Image(id anim.TextureID) (image.Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[id]
	return img, ok
}

// Texture returns the drawable texture for id, or nil if no sheet is
// registered under it.
func (r *Registry) Texture(id anim.TextureID) *ebiten.Image {
	r.mu.RLock()
	tex, ok := r.textures[id]
	r.mu.RUnlock()
	if ok {
		return tex
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tex, ok := r.textures[id]; ok {
		return tex
	}
	img, ok := r.images[id]
	if !ok {
		return nil
	}
	tex = ebiten.NewImageFromImage(img)
	r.textures[id] = tex
	return tex
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images)
}
