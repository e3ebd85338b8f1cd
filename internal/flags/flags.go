// Package flags switches optional editor behavior on and off from the
// config file's flags map.
package flags

import (
	"maps"
	"slices"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
)

const (
	// FlagWatchWorkspace reloads the workspace file when another program
	// changes it.
	FlagWatchWorkspace = "watch-workspace"

	// FlagMouse lets mouse clicks select schemas in the editor.
	FlagMouse = "mouse"
)

// Flag describes one known flag.
type Flag struct {
	Name        string `json:"name"`
	Default     bool   `json:"default"`
	Description string `json:"description"`
}

// Known lists every flag the editor reads.
var Known = []Flag{
	{Name: FlagMouse, Default: true, Description: "select schemas with mouse clicks"},
	{Name: FlagWatchWorkspace, Default: true, Description: "reload the workspace file after outside edits"},
}

func lookup(name string) (Flag, bool) {
	i := slices.IndexFunc(Known, func(f Flag) bool { return f.Name == name })
	if i < 0 {
		return Flag{}, false
	}
	return Known[i], true
}

// State is a flag with its effective value.
type State struct {
	Flag
	Enabled bool `json:"enabled"`
	Known   bool `json:"known"`
}

// Registry resolves flags against the config. It is read-only once built.
type Registry struct {
	overrides map[string]bool
}

// New builds a Registry from the config map. Names that no part of the
// editor reads are kept but logged, since they are usually typos.
func New(overrides map[string]bool) *Registry {
	r := &Registry{overrides: maps.Clone(overrides)}
	for _, name := range r.Unknown() {
		log.Warn(log.CatConfig, "unknown feature flag in config", "flag", name)
	}
	log.Debug(log.CatConfig, "feature flags resolved", "overrides", len(r.overrides))
	return r
}

// Enabled reports the value of name: the config value when set, otherwise
// the flag's default. Unknown names without a config value and a nil
// registry report false.
func (r *Registry) Enabled(name string) bool {
	if r != nil {
		if v, ok := r.overrides[name]; ok {
			return v
		}
	}
	if f, ok := lookup(name); ok && r != nil {
		return f.Default
	}
	return false
}

// Unknown returns the sorted config names that are not Known flags.
func (r *Registry) Unknown() []string {
	if r == nil {
		return nil
	}
	var names []string
	for name := range r.overrides {
		if _, ok := lookup(name); !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// States lists the Known flags in order, then any unknown config names.
func (r *Registry) States() []State {
	out := make([]State, 0, len(Known))
	for _, f := range Known {
		out = append(out, State{Flag: f, Enabled: r.Enabled(f.Name), Known: true})
	}
	for _, name := range r.Unknown() {
		out = append(out, State{Flag: Flag{Name: name}, Enabled: r.Enabled(name)})
	}
	return out
}
