package templateservice

import (
	"errors"
	"fmt"
	"io/fs"
	stdpath "path"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/template"
)

// BuiltinDir is the directory of the embedded template tables.
const BuiltinDir = "builtin"

// defaultRows is the row hint of a template variable that declares none.
const defaultRows = 1

// ErrNoTemplates is returned when a directory holds no template tables.
var ErrNoTemplates = errors.New("no template tables found")

// TableFile is the root structure of a template YAML file.
type TableFile struct {
	ID                string                   `yaml:"id"`                 // e.g., "artist"
	Name              string                   `yaml:"name"`               // Display name
	Description       string                   `yaml:"description"`        // Shown in the picker
	Category          string                   `yaml:"category"`           // e.g., "art"
	Version           string                   `yaml:"version"`            // Defaults to 1.0.0
	Author            string                   `yaml:"author"`             // Defaults to System
	Tags              []string                 `yaml:"tags"`               // Search tags
	RequiresImages    bool                     `yaml:"requires_images"`    // Search flag
	RequiresFiltering bool                     `yaml:"requires_filtering"` // Search flag
	Page              map[string]string        `yaml:"page"`               // page_title_cn, page_title_en, match_img, filter_with
	Variables         map[string][]VariableDef `yaml:"variables"`          // category key -> variables
}

// VariableDef defines a single template variable in YAML.
type VariableDef struct {
	Name       string         `yaml:"name"`
	En         string         `yaml:"en"`
	Cn         string         `yaml:"cn"`
	Rows       *int           `yaml:"rows"`       // Defaults to 1
	Required   *bool          `yaml:"required"`   // Defaults to true
	Default    string         `yaml:"default"`    // Suggested value
	Validation map[string]any `yaml:"validation"` // Free-form rules
}

// ParseTable decodes a single template YAML document.
func ParseTable(data []byte) (*template.Table, error) {
	var file TableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return buildTableFromFile(file)
}

// LoadTablesFromYAML loads every *.yaml table directly under dir in fsys,
// in file name order. Any invalid file fails the whole load.
func LoadTablesFromYAML(fsys fs.FS, dir string) ([]*template.Table, error) {
	paths, err := tablePaths(fsys, dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoTemplates)
	}

	tables := make([]*template.Table, 0, len(paths))
	for _, path := range paths {
		table, err := loadTable(fsys, path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func tablePaths(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("scan templates: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		// Use path.Join (not filepath.Join) since fs.FS always uses forward slashes
		if ext := stdpath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, stdpath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func loadTable(fsys fs.FS, path string) (*template.Table, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	table, err := ParseTable(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// buildTableFromFile converts a TableFile into a template.Table.
func buildTableFromFile(file TableFile) (*template.Table, error) {
	builder := template.NewBuilder(file.ID).
		Name(file.Name).
		Description(file.Description).
		Category(file.Category).
		Version(file.Version).
		Author(file.Author).
		RequiresImages(file.RequiresImages).
		RequiresFiltering(file.RequiresFiltering)

	if len(file.Tags) > 0 {
		builder = builder.Tags(file.Tags...)
	}
	if file.Page != nil {
		builder = builder.Page(template.PageConfig(file.Page))
	}

	keys := make([]string, 0, len(file.Variables))
	for k := range file.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cat, err := schema.ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", file.ID, err)
		}
		for _, def := range file.Variables[key] {
			builder = builder.Variable(cat, buildVariable(def))
		}
	}

	return builder.Build()
}

func buildVariable(def VariableDef) template.Variable {
	v := template.NewVariable(def.Name, def.En, def.Cn, defaultRows)
	if def.Rows != nil {
		v.Rows = *def.Rows
	}
	if def.Required != nil {
		v.Required = *def.Required
	}
	v.DefaultValue = def.Default
	v.ValidationRules = def.Validation
	return v
}
