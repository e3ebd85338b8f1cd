package template

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Registry errors
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrNilFactory       = errors.New("template factory cannot be nil")
)

// Factory produces a fresh Definition on every call.
type Factory func() Definition

// Query filters templates in Search. Zero-valued fields are not applied.
type Query struct {
	Category          string
	Tags              []string // matches templates carrying any of the tags
	RequiresImages    *bool
	RequiresFiltering *bool
}

// Catalog defines read access to a template registry.
type Catalog interface {
	// IDs returns the registered ids in registration order.
	IDs() []string

	// Create returns a fresh Definition for id.
	// Returns ErrTemplateNotFound if id is not registered.
	Create(id string) (Definition, error)

	// Metadata returns the metadata of id.
	Metadata(id string) (Metadata, error)

	// Search returns the ids matching q in registration order.
	Search(q Query) []string
}

// Compile-time check that Registry implements Catalog.
var _ Catalog = (*Registry)(nil)

// Registry maps template ids to factories, remembering registration order.
type Registry struct {
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds id to f. An existing binding is replaced and keeps its
// position in IDs.
func (r *Registry) Register(id string, f Factory) error {
	if id == "" {
		return ErrEmptyID
	}
	if f == nil {
		return ErrNilFactory
	}
	if _, exists := r.factories[id]; !exists {
		r.order = append(r.order, id)
	}
	r.factories[id] = f
	return nil
}

// AutoRegister registers f under the id its definitions declare.
func (r *Registry) AutoRegister(f Factory) error {
	if f == nil {
		return ErrNilFactory
	}
	return r.Register(f().ID(), f)
}

// Unregister removes id. Unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	if _, ok := r.factories[id]; !ok {
		return
	}
	delete(r.factories, id)
	r.order = slices.DeleteFunc(r.order, func(e string) bool { return e == id })
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.factories[id]
	return ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.order)
}

// Create returns a fresh Definition for id.
func (r *Registry) Create(id string) (Definition, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return f(), nil
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Metadata returns the metadata of id.
func (r *Registry) Metadata(id string) (Metadata, error) {
	def, err := r.Create(id)
	if err != nil {
		return Metadata{}, err
	}
	return def.Metadata(), nil
}

// Search returns the ids whose metadata matches q, in registration order.
func (r *Registry) Search(q Query) []string {
	result := make([]string, 0)
	for _, id := range r.order {
		if matches(r.factories[id]().Metadata(), q) {
			result = append(result, id)
		}
	}
	return result
}

func matches(m Metadata, q Query) bool {
	if q.Category != "" && m.Category != q.Category {
		return false
	}
	if len(q.Tags) > 0 && !slices.ContainsFunc(q.Tags, m.HasTag) {
		return false
	}
	if q.RequiresImages != nil && m.RequiresImages != *q.RequiresImages {
		return false
	}
	if q.RequiresFiltering != nil && m.RequiresFiltering != *q.RequiresFiltering {
		return false
	}
	return true
}

// Categories returns the unique metadata categories, sorted alphabetically.
func (r *Registry) Categories() []string {
	return r.collect(func(m Metadata) []string { return []string{m.Category} })
}

// Tags returns the unique metadata tags, sorted alphabetically.
func (r *Registry) Tags() []string {
	return r.collect(func(m Metadata) []string { return m.Tags })
}

func (r *Registry) collect(values func(Metadata) []string) []string {
	set := make(map[string]bool)
	for _, id := range r.order {
		for _, v := range values(r.factories[id]().Metadata()) {
			if v != "" {
				set[v] = true
			}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// RegistryNames maps each template display name to its registry id.
// When two templates share a display name the later registration wins.
func (r *Registry) RegistryNames() map[string]string {
	names := make(map[string]string, len(r.order))
	for _, id := range r.order {
		names[r.factories[id]().Metadata().Name] = id
	}
	return names
}
