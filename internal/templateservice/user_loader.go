package templateservice

import (
	"os"
	"path/filepath"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/template"
)

// UserTemplateDir returns the default directory of user template tables.
// Returns ~/.config/schemadesigner/templates, or empty string if the home
// directory cannot be determined.
func UserTemplateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "schemadesigner", "templates")
}

// LoadUserTemplatesFromDir loads YAML tables from a user directory.
// Returns nil, nil if the directory doesn't exist (graceful fallback).
// Invalid files are logged and skipped.
func LoadUserTemplatesFromDir(dir string) ([]*template.Table, error) {
	if dir == "" {
		return nil, nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		// Missing or unreadable directory - no user templates
		return nil, nil
	}

	fsys := os.DirFS(dir)
	paths, err := tablePaths(fsys, ".")
	if err != nil {
		log.Warn(log.CatTemplate, "scanning user templates", "error", err.Error(), "dir", dir)
		return nil, nil
	}

	var tables []*template.Table
	for _, path := range paths {
		table, err := loadTable(fsys, path)
		if err != nil {
			log.Warn(log.CatTemplate, "skipping user template", "error", err.Error(), "file", filepath.Join(dir, path))
			continue
		}
		tables = append(tables, table)
	}
	return tables, nil
}
