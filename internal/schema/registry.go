package schema

import (
	"fmt"
	"strings"
)

// SkippedEntry names an import entry that failed to parse.
type SkippedEntry struct {
	Name string
	Err  error
}

// DroppedEntry names a list entry left out of an imported schema because it
// repeats an earlier variable name.
type DroppedEntry struct {
	Schema string
	Path   string // e.g. "basic_variables[1].title"
}

// ImportReport summarizes a bulk import.
type ImportReport struct {
	Imported []string
	Skipped  []SkippedEntry
	Dropped  []DroppedEntry
}

// Lossy reports whether anything in the source was left out.
func (r ImportReport) Lossy() bool {
	return len(r.Skipped) > 0 || len(r.Dropped) > 0
}

// Registry is an in-memory mapping from schema name to schema.
// It is not safe for concurrent use.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Add inserts s under s.Name. Returns false if the name is taken or s is nil.
func (r *Registry) Add(s *Schema) bool {
	if s == nil {
		return false
	}
	if _, exists := r.schemas[s.Name]; exists {
		return false
	}
	r.schemas[s.Name] = s
	return true
}

// Update stores s, replacing the entry called oldName. When s.Name differs
// from oldName the entry is re-keyed; this fails if s.Name is already held
// by another schema.
func (r *Registry) Update(oldName string, s *Schema) bool {
	if s == nil {
		return false
	}
	if s.Name != oldName {
		if _, taken := r.schemas[s.Name]; taken {
			return false
		}
		delete(r.schemas, oldName)
	}
	r.schemas[s.Name] = s
	return true
}

// Delete removes the schema called name.
func (r *Registry) Delete(name string) bool {
	if _, ok := r.schemas[name]; !ok {
		return false
	}
	delete(r.schemas, name)
	return true
}

// Get returns the schema called name.
func (r *Registry) Get(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Has reports whether a schema called name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// Len returns the number of schemas.
func (r *Registry) Len() int {
	return len(r.schemas)
}

// Duplicate copies the schema called name to newName.
// Fails if the source is missing or newName is taken.
func (r *Registry) Duplicate(name, newName string) bool {
	src, ok := r.schemas[name]
	if !ok {
		return false
	}
	if _, taken := r.schemas[newName]; taken {
		return false
	}
	r.schemas[newName] = src.Clone(newName)
	return true
}

// Names returns every schema name in alphabetical order.
func (r *Registry) Names() []string {
	return sortedKeys(r.schemas)
}

// Filter returns the names containing query, case-insensitively, in
// alphabetical order. An empty query matches everything.
func (r *Registry) Filter(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	names := r.Names()
	if q == "" {
		return names
	}
	out := names[:0]
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
		}
	}
	return out
}

// Clear removes every schema.
func (r *Registry) Clear() {
	clear(r.schemas)
}

// ExportAll returns the wire document of every schema.
func (r *Registry) ExportAll() Document {
	doc := make(Document, len(r.schemas))
	for name, s := range r.schemas {
		doc[name] = s.Document()
	}
	return doc
}

// ExportOne returns a document holding only the schema called name.
func (r *Registry) ExportOne(name string) (Document, bool) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, false
	}
	return Document{name: s.Document()}, true
}

// ImportAll replaces the registry content with the schemas in data.
// Entries that fail to parse are skipped and listed in the report, as are
// variables dropped for repeating a name within their list.
func (r *Registry) ImportAll(data map[string]any) ImportReport {
	r.Clear()

	var report ImportReport
	for _, name := range sortedKeys(data) {
		s, dropped, err := parse(name, data[name])
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedEntry{Name: name, Err: err})
			continue
		}
		for _, path := range dropped {
			report.Dropped = append(report.Dropped, DroppedEntry{Schema: name, Path: path})
		}
		r.schemas[name] = s
		report.Imported = append(report.Imported, name)
	}
	return report
}

// ImportJSON decodes data and imports it with ImportAll. The registry is
// left untouched when the document is not a JSON object.
func (r *Registry) ImportJSON(data []byte) (ImportReport, error) {
	m, err := Decode(data)
	if err != nil {
		return ImportReport{}, fmt.Errorf("importing schemas: %w", err)
	}
	return r.ImportAll(m), nil
}
