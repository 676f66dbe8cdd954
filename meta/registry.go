package meta

import (
	"sort"
	"sync"
)

// blockKey is the unique registry key of a block declaration.
type blockKey struct {
	Name     string
	Category BlockCategory
}

// Registry is the shared metadata store.  It is write-only during the
// collection phase and read-only during generation; registration is
// first-writer-wins so that revisiting a file through a second import path is
// a no-op.  All methods are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	blocks map[blockKey]*BlockMeta
	props  map[string][]*PropMeta
}

// NewRegistry creates an empty metadata registry.
func NewRegistry() *Registry {
	return &Registry{
		blocks: make(map[blockKey]*BlockMeta),
		props:  make(map[string][]*PropMeta),
	}
}

// Register adds block metadata under its (name, category) key.  It returns
// false if an entry is already present, in which case the existing entry is
// kept unchanged.
func (r *Registry) Register(bm *BlockMeta) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := blockKey{Name: bm.Name, Category: bm.Category}
	if _, ok := r.blocks[key]; ok {
		return false
	}

	r.blocks[key] = bm
	return true
}

// Lookup fetches block metadata by its (name, category) key.
func (r *Registry) Lookup(name string, cat BlockCategory) (*BlockMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bm, ok := r.blocks[blockKey{Name: name, Category: cat}]
	return bm, ok
}

// LookupAny fetches block metadata by name across all categories.
func (r *Registry) LookupAny(name string) (*BlockMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cat := range []BlockCategory{UDT, DB, FC, FB} {
		if bm, ok := r.blocks[blockKey{Name: name, Category: cat}]; ok {
			return bm, true
		}
	}

	return nil, false
}

// List returns all registered blocks of one category, ordered by name.
func (r *Registry) List(cat BlockCategory) []*BlockMeta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*BlockMeta
	for key, bm := range r.blocks {
		if key.Category == cat {
			out = append(out, bm)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// -----------------------------------------------------------------------------
// Property metadata is keyed by its containing declaration: the block name
// for fields, "block.method" for method parameters.

// PropOwnerKey builds the property map key for a method's parameter list.
func PropOwnerKey(blockName, methodName string) string {
	return blockName + "." + methodName
}

// RegisterProps adds the property list of one containing declaration.  Like
// Register, the first writer wins.
func (r *Registry) RegisterProps(owner string, props []*PropMeta) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.props[owner]; ok {
		return false
	}

	r.props[owner] = props
	return true
}

// Props fetches the property list of one containing declaration.
func (r *Registry) Props(owner string) ([]*PropMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	props, ok := r.props[owner]
	return props, ok
}

// CallParams fetches the callable parameter list of a named FC or FB: the
// parameters of its registered body method.
func (r *Registry) CallParams(blockName string) ([]*PropMeta, bool) {
	bm, ok := r.LookupAny(blockName)
	if !ok || bm.BodyMethod == "" {
		return nil, false
	}

	return r.Props(PropOwnerKey(blockName, bm.BodyMethod))
}
