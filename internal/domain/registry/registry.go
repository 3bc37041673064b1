package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/gig/internal/term"
)

// Registry errors
var (
	ErrCorpus            = errors.New("corrupt template corpus")
	ErrDuplicateIdentity = errors.New("duplicate template identity")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrEmptyName         = errors.New("template name cannot be empty")
)

// Registry holds every discovered template.
type Registry struct {
	interner  *term.Interner
	templates map[Identity]*Template
	ordered   []*Template // sorted by category, then name
}

// NewRegistry creates an empty registry whose terms come from in.
// A nil interner selects term.Default.
func NewRegistry(in *term.Interner) *Registry {
	if in == nil {
		in = term.Default
	}
	return &Registry{
		interner:  in,
		templates: make(map[Identity]*Template),
		ordered:   make([]*Template, 0),
	}
}

// Interner returns the interner used for the registry's terms.
func (r *Registry) Interner() *term.Interner {
	return r.interner
}

// Add creates a template for id with its name as the only term.
func (r *Registry) Add(id Identity) (*Template, error) {
	if !utf8.ValidString(id.Name) {
		return nil, fmt.Errorf("%w: file name %q is not valid UTF-8", ErrCorpus, id.Name)
	}
	if strings.TrimSpace(id.Name) == "" {
		return nil, ErrEmptyName
	}
	if _, exists := r.templates[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentity, id)
	}

	tmpl := newTemplate(id, r.interner.Intern(id.Name))
	r.templates[id] = tmpl

	i := sort.Search(len(r.ordered), func(i int) bool {
		return !less(r.ordered[i].id, id)
	})
	r.ordered = append(r.ordered, nil)
	copy(r.ordered[i+1:], r.ordered[i:])
	r.ordered[i] = tmpl

	return tmpl, nil
}

func less(a, b Identity) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	return a.Name < b.Name
}

// Len returns the number of templates.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// List returns all templates ordered by category, then name.
func (r *Registry) List() []*Template {
	return r.ordered
}

// Get returns the template keyed by id.
func (r *Registry) Get(id Identity) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// ByCategory returns the templates in one category.
func (r *Registry) ByCategory(c Category) []*Template {
	result := make([]*Template, 0)
	for _, t := range r.ordered {
		if t.id.Category == c {
			result = append(result, t)
		}
	}
	return result
}

// FindByName returns the first template whose display name equals query
// ignoring case, or nil.
func (r *Registry) FindByName(query string) *Template {
	for _, t := range r.ordered {
		if t.MatchesName(query) {
			return t
		}
	}
	return nil
}

// FilterByName returns every template whose display name equals query
// ignoring case. Templates sharing a name across categories are all returned.
func (r *Registry) FilterByName(query string) []*Template {
	result := make([]*Template, 0)
	for _, t := range r.ordered {
		if t.MatchesName(query) {
			result = append(result, t)
		}
	}
	return result
}

// FindByNames resolves each query with FindByName, in query order, dropping
// misses and duplicates.
func (r *Registry) FindByNames(queries ...string) []*Template {
	result := make([]*Template, 0, len(queries))
	seen := make(map[Identity]bool, len(queries))
	for _, q := range queries {
		t := r.FindByName(q)
		if t == nil || seen[t.id] {
			continue
		}
		seen[t.id] = true
		result = append(result, t)
	}
	return result
}

// FindByTerms returns every template carrying any of queries, comparing
// term text ignoring case. A template's own name always counts as a term.
func (r *Registry) FindByTerms(queries []term.Term) []*Template {
	result := make([]*Template, 0)
	if len(queries) == 0 {
		return result
	}
	for _, t := range r.ordered {
		if t.MatchesAny(queries) {
			result = append(result, t)
		}
	}
	return result
}

// Terms returns every distinct term across the registry, sorted by text.
func (r *Registry) Terms() []term.Term {
	seen := make(map[term.Term]bool)
	result := make([]term.Term, 0)
	for _, t := range r.ordered {
		for _, tm := range t.terms {
			if !seen[tm] {
				seen[tm] = true
				result = append(result, tm)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})
	return result
}
