package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/zjrosen/gig/internal/cachemanager"
	"github.com/zjrosen/gig/internal/domain/registry"
	"github.com/zjrosen/gig/internal/log"
	"github.com/zjrosen/gig/internal/term"
)

// RegistryService errors
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrNilTemplate      = errors.New("template cannot be nil")
)

// Options configures a RegistryService.
type Options struct {
	// Corpus holds the gitignore/ tree. Required.
	Corpus fs.FS
	// Associations is the table applied after discovery.
	Associations []registry.Association
	// Interner issues terms. Nil selects term.Default.
	Interner *term.Interner
	// CacheTTL is how long template bodies stay cached. Zero disables caching.
	CacheTTL time.Duration
}

// RegistryService runs the discover and decorate phases, then answers
// lookups and serves template bodies.
type RegistryService struct {
	registry *registry.Registry
	corpus   fs.FS
	contents *cachemanager.ReadThroughCache[string, []byte]
}

// NewRegistryService discovers the corpus and decorates it with the association table.
func NewRegistryService(opts Options) (*RegistryService, error) {
	if opts.Corpus == nil {
		return nil, fmt.Errorf("new registry service: corpus filesystem not configured")
	}

	reg, err := Discover(opts.Corpus, opts.Interner)
	if err != nil {
		return nil, err
	}

	added := reg.Decorate(opts.Associations)
	log.Debug(log.CatDecorate, "decorated registry", "associations", len(opts.Associations), "terms_added", added)

	s := &RegistryService{
		registry: reg,
		corpus:   opts.Corpus,
	}
	var cache cachemanager.CacheManager[string, []byte]
	if opts.CacheTTL > 0 {
		cache = cachemanager.NewInMemoryCacheManager[string, []byte]("template-contents", opts.CacheTTL, cachemanager.DefaultCleanupInterval)
	}
	s.contents = cachemanager.NewReadThroughCache[string, []byte](cache, s.readTemplate, opts.CacheTTL)

	return s, nil
}

// Registry returns the decorated template index.
func (s *RegistryService) Registry() *registry.Registry {
	return s.registry
}

// List returns all templates
func (s *RegistryService) List() []*registry.Template {
	return s.registry.List()
}

// FindByName returns the template named query, ignoring case, or nil.
func (s *RegistryService) FindByName(query string) *registry.Template {
	return s.registry.FindByName(query)
}

// FindByNames resolves names in order, dropping misses and duplicates.
func (s *RegistryService) FindByNames(names ...string) []*registry.Template {
	found := s.registry.FindByNames(names...)
	log.Debug(log.CatQuery, "resolved names", "queries", len(names), "found", len(found))
	return found
}

// FindByTerms interns each query string and returns every template carrying
// any of them.
func (s *RegistryService) FindByTerms(queries ...string) []*registry.Template {
	terms := s.registry.Interner().InternAll(queries...)
	found := s.registry.FindByTerms(terms)
	log.Debug(log.CatQuery, "resolved terms", "queries", len(queries), "found", len(found))
	return found
}

// Contents returns the body of tmpl, reading through the content cache.
func (s *RegistryService) Contents(ctx context.Context, tmpl *registry.Template) ([]byte, error) {
	if tmpl == nil {
		return nil, ErrNilTemplate
	}
	return s.contents.Get(ctx, tmpl.Path())
}

// ContentsAll returns the bodies of tmpls in order.
func (s *RegistryService) ContentsAll(ctx context.Context, tmpls []*registry.Template) ([][]byte, error) {
	keys := make([]string, len(tmpls))
	for i, t := range tmpls {
		if t == nil {
			return nil, ErrNilTemplate
		}
		keys[i] = t.Path()
	}
	return s.contents.GetAll(ctx, keys)
}

// CacheStats returns content cache hits and misses.
func (s *RegistryService) CacheStats() (hits, misses int64) {
	return s.contents.Stats()
}

func (s *RegistryService) readTemplate(_ context.Context, path string) ([]byte, error) {
	content, err := fs.ReadFile(s.corpus, path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w: %w", path, ErrTemplateNotFound, err)
	}
	return content, nil
}
