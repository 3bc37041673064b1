package registry

import "github.com/zjrosen/gig/internal/term"

// Provider defines read-only access to a template index. Commands depend on
// it rather than on *Registry so tests can substitute small fixtures.
type Provider interface {
	// List returns all templates ordered by category, then name.
	List() []*Template

	// FindByName returns the first template whose name equals query ignoring case.
	// Returns nil if no template matches.
	FindByName(query string) *Template

	// FindByNames resolves several names, dropping misses and duplicates.
	FindByNames(queries ...string) []*Template

	// FindByTerms returns templates carrying any of the query terms.
	FindByTerms(queries []term.Term) []*Template

	// Terms returns every distinct term, sorted by text.
	Terms() []term.Term
}

// Compile-time check that Registry implements Provider.
var _ Provider = (*Registry)(nil)
