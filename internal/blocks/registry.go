package blocks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"fairway-content-backend/internal/models"
)

// RenderContext exposes the capabilities a block renderer may use. A fresh
// context is created for every rendered document.
type RenderContext interface {
	// SanitizeHTML cleans untrusted markup before it is embedded.
	SanitizeHTML(input string) string
	// AnchorFor returns a document-unique anchor id for a heading text.
	AnchorFor(text string) string
}

// Renderer turns one block into an HTML fragment. A returned error marks the
// block as malformed; the dispatcher drops it and carries on.
type Renderer func(ctx RenderContext, prefix string, block models.Block) (string, error)

// Registry stores the mapping between block types and their renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty block renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register associates a renderer with a normalised block type.
func (r *Registry) Register(blockType string, renderer Renderer) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	key := string(models.NormalizeBlockType(blockType))
	if key == "" {
		return fmt.Errorf("block type is empty")
	}
	if renderer == nil {
		return fmt.Errorf("renderer is nil for type %s", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	r.renderers[key] = renderer
	return nil
}

// MustRegister registers the renderer and panics if registration fails.
func (r *Registry) MustRegister(blockType string, renderer Renderer) {
	if err := r.Register(blockType, renderer); err != nil {
		panic(err)
	}
}

// Get retrieves the renderer for a block type if one is registered.
func (r *Registry) Get(blockType string) (Renderer, bool) {
	if r == nil {
		return nil, false
	}

	key := string(models.NormalizeBlockType(blockType))
	if key == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[key]
	return renderer, ok
}

// Types lists the registered block types in lexical order.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.renderers))
	for key := range r.renderers {
		types = append(types, key)
	}
	sort.Strings(types)
	return types
}

// Clone creates a copy of the registry with the same renderer mappings.
func (r *Registry) Clone() *Registry {
	if r == nil {
		return NewRegistry()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for key, renderer := range r.renderers {
		cloned.renderers[key] = renderer
	}
	return cloned
}

// Unregister removes a block type so that it is treated as unknown.
func (r *Registry) Unregister(blockType string) {
	if r == nil {
		return
	}
	key := string(models.NormalizeBlockType(blockType))

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.renderers, key)
}

func normalizeClassPrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || !classPrefixPattern.MatchString(prefix) {
		return DefaultClassPrefix
	}
	return prefix
}
