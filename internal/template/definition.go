package template

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
)

// Builder errors
var (
	ErrEmptyID           = errors.New("template id cannot be empty")
	ErrInvalidCategory   = errors.New("invalid variable category")
	ErrEmptyVariableName = errors.New("template variable name cannot be empty")
	ErrDuplicateVariable = errors.New("duplicate template variable")
	ErrNegativeRows      = errors.New("template variable rows cannot be negative")
)

// Definition is implemented by every template variant.
type Definition interface {
	// ID returns the stable registry identifier.
	ID() string

	// Metadata returns the descriptive metadata.
	Metadata() Metadata

	// Variables returns the variables of category c in order.
	// Unknown or empty categories return an empty list.
	Variables(c schema.Category) []Variable

	// PageConfig returns the page-level schema fields.
	PageConfig() PageConfig
}

// Table is a Definition backed by plain data.
type Table struct {
	id        string
	metadata  Metadata
	page      PageConfig
	variables [schema.NumCategories][]Variable
}

// Compile-time check that Table implements Definition.
var _ Definition = (*Table)(nil)

// ID returns the registry identifier.
func (t *Table) ID() string {
	return t.id
}

// Metadata returns a copy of the metadata.
func (t *Table) Metadata() Metadata {
	return t.metadata.clone()
}

// Variables returns a copy of the variables of category c.
func (t *Table) Variables(c schema.Category) []Variable {
	if !c.Valid() {
		return nil
	}
	src := t.variables[c]
	out := make([]Variable, len(src))
	for i, v := range src {
		out[i] = v.clone()
	}
	return out
}

// PageConfig returns a copy of the page configuration.
func (t *Table) PageConfig() PageConfig {
	return t.page.Clone()
}

// Factory returns a factory producing independent copies of t.
func (t *Table) Factory() Factory {
	return func() Definition { return t.clone() }
}

func (t *Table) clone() *Table {
	out := &Table{
		id:       t.id,
		metadata: t.metadata.clone(),
		page:     t.page.Clone(),
	}
	for i, vars := range t.variables {
		out.variables[i] = make([]Variable, len(vars))
		for j, v := range vars {
			out.variables[i][j] = v.clone()
		}
	}
	return out
}

// Builder provides a fluent API for creating table definitions.
type Builder struct {
	id        string
	metadata  Metadata
	page      PageConfig
	variables [schema.NumCategories][]Variable
	err       error
}

// NewBuilder creates a builder for the template id.
func NewBuilder(id string) *Builder {
	return &Builder{
		id: id,
		metadata: Metadata{
			Version: DefaultVersion,
			Author:  DefaultAuthor,
		},
	}
}

// Name sets the display name.
func (b *Builder) Name(n string) *Builder {
	b.metadata.Name = n
	return b
}

// Description sets the description.
func (b *Builder) Description(d string) *Builder {
	b.metadata.Description = d
	return b
}

// Category sets the catalog category.
func (b *Builder) Category(c string) *Builder {
	b.metadata.Category = c
	return b
}

// Version sets the version. Empty keeps the default.
func (b *Builder) Version(v string) *Builder {
	if v != "" {
		b.metadata.Version = v
	}
	return b
}

// Author sets the author. Empty keeps the default.
func (b *Builder) Author(a string) *Builder {
	if a != "" {
		b.metadata.Author = a
	}
	return b
}

// Tags sets the search tags.
func (b *Builder) Tags(tags ...string) *Builder {
	b.metadata.Tags = slices.Clone(tags)
	return b
}

// RequiresImages sets the requires-images flag.
func (b *Builder) RequiresImages(v bool) *Builder {
	b.metadata.RequiresImages = v
	return b
}

// RequiresFiltering sets the requires-filtering flag.
func (b *Builder) RequiresFiltering(v bool) *Builder {
	b.metadata.RequiresFiltering = v
	return b
}

// Page sets the page configuration.
func (b *Builder) Page(p PageConfig) *Builder {
	b.page = p.Clone()
	return b
}

// Variable appends v to category c. Validation errors surface from Build.
func (b *Builder) Variable(c schema.Category, v Variable) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case !c.Valid():
		b.err = fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	case v.Name == "":
		b.err = fmt.Errorf("%s: %w", c, ErrEmptyVariableName)
	case v.Rows < 0:
		b.err = fmt.Errorf("%s.%s: %w", c, v.Name, ErrNegativeRows)
	case slices.ContainsFunc(b.variables[c], func(e Variable) bool { return e.Name == v.Name }):
		b.err = fmt.Errorf("%s.%s: %w", c, v.Name, ErrDuplicateVariable)
	default:
		b.variables[c] = append(b.variables[c], v.clone())
	}
	return b
}

// Build creates the table, validating required fields.
func (b *Builder) Build() (*Table, error) {
	if b.id == "" {
		return nil, ErrEmptyID
	}
	if b.err != nil {
		return nil, fmt.Errorf("template %s: %w", b.id, b.err)
	}

	page := b.page
	if page == nil {
		page = DefaultPageConfig()
	}
	t := &Table{
		id:       b.id,
		metadata: b.metadata.clone(),
		page:     page.Clone(),
	}
	if t.metadata.Name == "" {
		t.metadata.Name = b.id
	}
	for i, vars := range b.variables {
		t.variables[i] = slices.Clone(vars)
	}
	return t, nil
}
