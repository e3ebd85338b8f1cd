package template

import "slices"

// Metadata defaults
const (
	DefaultVersion = "1.0.0"
	DefaultAuthor  = "System"
)

// Metadata describes a template for listing and search.
type Metadata struct {
	Name              string
	Description       string
	Category          string
	Version           string
	Author            string
	Tags              []string
	RequiresImages    bool
	RequiresFiltering bool
}

// HasTag reports whether tag is one of the metadata tags.
func (m Metadata) HasTag(tag string) bool {
	return slices.Contains(m.Tags, tag)
}

func (m Metadata) clone() Metadata {
	m.Tags = slices.Clone(m.Tags)
	return m
}
