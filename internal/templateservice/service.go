package templateservice

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/cachemanager"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/template"
)

// DefaultPreviewTTL bounds how long a rendered preview stays cached.
const DefaultPreviewTTL = cachemanager.DefaultExpiration

// Options configures a Service.
type Options struct {
	BuiltinFS  fs.FS         // Embedded tables under BuiltinDir (templates.BuiltinFS())
	UserDir    string        // Optional directory of user tables
	Disabled   []string      // Template ids hidden from the catalog
	PreviewTTL time.Duration // Zero uses DefaultPreviewTTL
}

// Info bundles a template's id, metadata and preview document.
type Info struct {
	ID       string
	Metadata template.Metadata
	Preview  schema.SchemaDocument
}

// Service owns the template catalog and a preview cache.
type Service struct {
	registry *template.Registry
	cache    *cachemanager.InMemoryCacheManager[schema.SchemaDocument]
	previews *cachemanager.ReadThroughCache[schema.SchemaDocument, string]
	ttl      time.Duration
}

// New builds the catalog from the built-in tables, then user tables (which
// replace built-ins with the same id), then drops disabled ids.
func New(opts Options) (*Service, error) {
	reg := template.NewRegistry()

	builtins, err := LoadTablesFromYAML(opts.BuiltinFS, BuiltinDir)
	if err != nil {
		return nil, fmt.Errorf("load builtin templates: %w", err)
	}
	for _, table := range builtins {
		if err := reg.AutoRegister(table.Factory()); err != nil {
			return nil, fmt.Errorf("register %s: %w", table.ID(), err)
		}
	}

	users, err := LoadUserTemplatesFromDir(opts.UserDir)
	if err != nil {
		return nil, fmt.Errorf("load user templates: %w", err)
	}
	for _, table := range users {
		if reg.Has(table.ID()) {
			log.Info(log.CatTemplate, "user template overrides builtin", "id", table.ID())
		}
		if err := reg.AutoRegister(table.Factory()); err != nil {
			return nil, fmt.Errorf("register %s: %w", table.ID(), err)
		}
	}

	for _, id := range opts.Disabled {
		reg.Unregister(id)
	}

	ttl := opts.PreviewTTL
	if ttl <= 0 {
		ttl = DefaultPreviewTTL
	}

	s := &Service{
		registry: reg,
		cache:    cachemanager.NewInMemoryCacheManager[schema.SchemaDocument]("template-previews", ttl, cachemanager.DefaultCleanupInterval),
		ttl:      ttl,
	}
	s.previews = cachemanager.NewReadThroughCache[schema.SchemaDocument, string](s.cache, s.renderPreview, false)

	log.Debug(log.CatTemplate, "template catalog loaded", "count", reg.Len(), "user", len(users))
	return s, nil
}

// Registry returns the underlying template registry.
func (s *Service) Registry() *template.Registry {
	return s.registry
}

// IDs returns the catalog ids in registration order.
func (s *Service) IDs() []string {
	return s.registry.IDs()
}

// List returns every template in catalog order.
func (s *Service) List(ctx context.Context) ([]Info, error) {
	return s.infos(ctx, s.registry.IDs())
}

// Search returns the templates matching q in catalog order.
func (s *Service) Search(ctx context.Context, q template.Query) ([]Info, error) {
	return s.infos(ctx, s.registry.Search(q))
}

func (s *Service) infos(ctx context.Context, ids []string) ([]Info, error) {
	out := make([]Info, 0, len(ids))
	for _, id := range ids {
		info, err := s.Info(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// Info returns the id, metadata and preview of a template.
func (s *Service) Info(ctx context.Context, id string) (Info, error) {
	md, err := s.registry.Metadata(id)
	if err != nil {
		return Info{}, err
	}
	preview, err := s.Preview(ctx, id)
	if err != nil {
		return Info{}, err
	}
	return Info{ID: id, Metadata: md, Preview: preview}, nil
}

// Preview returns the wire document of a template. Results are cached and
// must be treated as read-only.
func (s *Service) Preview(ctx context.Context, id string) (schema.SchemaDocument, error) {
	return s.previews.Get(ctx, id, id, s.ttl)
}

func (s *Service) renderPreview(_ context.Context, id string) (schema.SchemaDocument, error) {
	def, err := s.registry.Create(id)
	if err != nil {
		return schema.SchemaDocument{}, err
	}
	log.Debug(log.CatCache, "rendering template preview", "id", id)
	return template.Preview(def), nil
}

// CacheStats reports preview cache usage.
func (s *Service) CacheStats() cachemanager.Stats {
	return s.cache.Stats()
}

// Instantiate materializes template id as a schema called name.
func (s *Service) Instantiate(id, name string) (*schema.Schema, error) {
	def, err := s.registry.Create(id)
	if err != nil {
		return nil, err
	}
	return template.ToSchema(def, name), nil
}

// RegisterCustom adds or replaces a template at runtime and drops its cached
// preview.
func (s *Service) RegisterCustom(ctx context.Context, table *template.Table) error {
	if table == nil {
		return template.ErrNilFactory
	}
	if err := s.registry.AutoRegister(table.Factory()); err != nil {
		return err
	}
	s.cache.Delete(ctx, table.ID())
	log.Info(log.CatTemplate, "registered custom template", "id", table.ID())
	return nil
}

// Unregister removes a template and its cached preview.
func (s *Service) Unregister(ctx context.Context, id string) {
	s.registry.Unregister(id)
	s.cache.Delete(ctx, id)
}
