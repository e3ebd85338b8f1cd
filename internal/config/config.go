// Package config provides configuration types and defaults for schemadesigner.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
)

// Theme names accepted by ui.theme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds all configuration options for schemadesigner.
type Config struct {
	WorkspaceFile string          `mapstructure:"workspace_file"`
	Backup        BackupConfig    `mapstructure:"backup"`
	Autosave      AutosaveConfig  `mapstructure:"autosave"`
	Templates     TemplatesConfig `mapstructure:"templates"`
	UI            UIConfig        `mapstructure:"ui"`
	Flags         map[string]bool `mapstructure:"flags"`
}

// BackupConfig controls rotated workspace backups.
type BackupConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`  // relative paths resolve against the workspace file directory
	Keep    int    `mapstructure:"keep"` // newest backups kept after rotation
}

// AutosaveConfig controls the periodic save of unsaved changes.
type AutosaveConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// TemplatesConfig controls the template catalog.
type TemplatesConfig struct {
	UserDir  string   `mapstructure:"user_dir"`
	Disabled []string `mapstructure:"disabled"` // template ids hidden from the catalog
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	Theme       string `mapstructure:"theme"`        // "dark" (default) or "light"
	ShowPreview bool   `mapstructure:"show_preview"` // Show the JSON preview pane
}

// DefaultUserTemplateDir returns ~/.config/schemadesigner/templates or empty
// string if the home directory is unavailable.
func DefaultUserTemplateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "schemadesigner", "templates")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		WorkspaceFile: "schemas.json",
		Backup: BackupConfig{
			Enabled: true,
			Dir:     "backups",
			Keep:    10,
		},
		Autosave: AutosaveConfig{
			Enabled:  true,
			Interval: 60 * time.Second,
		},
		Templates: TemplatesConfig{
			UserDir: DefaultUserTemplateDir(),
		},
		UI: UIConfig{
			Theme:       ThemeDark,
			ShowPreview: true,
		},
	}
}

// Validate checks configuration values for errors.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.WorkspaceFile) == "" {
		return fmt.Errorf("workspace_file is required")
	}
	if cfg.Autosave.Enabled && cfg.Autosave.Interval <= 0 {
		return fmt.Errorf("autosave.interval must be positive, got %s", cfg.Autosave.Interval)
	}
	if cfg.Backup.Enabled && cfg.Backup.Keep < 1 {
		return fmt.Errorf("backup.keep must be at least 1, got %d", cfg.Backup.Keep)
	}
	switch cfg.UI.Theme {
	case "", ThemeDark, ThemeLight:
		// Valid
	default:
		return fmt.Errorf("ui.theme must be %q or %q, got %q", ThemeDark, ThemeLight, cfg.UI.Theme)
	}
	return nil
}

// BackupDir resolves the backup directory for a workspace file.
func (c Config) BackupDir(workspacePath string) string {
	dir := ExpandHome(c.Backup.Dir)
	if dir == "" {
		dir = Defaults().Backup.Dir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(workspacePath), dir)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# schemadesigner configuration

# Working JSON document opened by the editor and used by the CLI commands
workspace_file: schemas.json

# Rotated backups written by autosave and 'schemadesigner backup'
backup:
  enabled: true
  dir: backups   # relative to the workspace file directory
  keep: 10       # newest backups kept

# Save unsaved changes periodically while the editor is open
autosave:
  enabled: true
  interval: 60s

# Template catalog
templates:
  # User template tables (*.yaml), loaded after the built-in templates.
  # A user table with the same id as a built-in replaces it.
  user_dir: ~/.config/schemadesigner/templates
  # Hide templates from the catalog by id
  # disabled:
  #   - website_service

# UI settings
ui:
  theme: dark          # "dark" (default) or "light", toggled with ctrl+t
  show_preview: true   # Show the JSON preview pane

# Feature flags
# flags:
#   watch-workspace: true   # Reload the workspace when it changes on disk
#   mouse: true             # Click to select schemas
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
