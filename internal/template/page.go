package template

import (
	"maps"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
)

// PageConfig holds the page-level schema fields keyed by their wire names
// (schema.KeyPageTitleCN, schema.KeyPageTitleEN, schema.KeyMatchImg,
// schema.KeyFilterWith).
type PageConfig map[string]string

// DefaultPageConfig is used by tables that declare no page section.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		schema.KeyPageTitleCN: "页面标题",
		schema.KeyPageTitleEN: "Page Title",
		schema.KeyMatchImg:    schema.FlagNo,
		schema.KeyFilterWith:  schema.FlagNo,
	}
}

// Get returns the value for key, or def when the key is absent.
func (p PageConfig) Get(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Clone returns an independent copy.
func (p PageConfig) Clone() PageConfig {
	return maps.Clone(p)
}
