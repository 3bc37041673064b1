package registry

import (
	"strings"

	"github.com/zjrosen/gig/internal/term"
)

// Template is one ignore-rule fragment in the corpus. Its term set only grows.
type Template struct {
	id    Identity
	name  term.Term
	terms []term.Term
	index map[term.Term]struct{}
}

// newTemplate creates a template whose term set holds exactly its own name.
func newTemplate(id Identity, name term.Term) *Template {
	return &Template{
		id:    id,
		name:  name,
		terms: []term.Term{name},
		index: map[term.Term]struct{}{name: {}},
	}
}

// Identity returns the template's registry key.
func (t *Template) Identity() Identity {
	return t.id
}

// Name returns the display name.
func (t *Template) Name() string {
	return t.id.Name
}

// Category returns the corpus partition the template came from.
func (t *Template) Category() Category {
	return t.id.Category
}

// Path returns the template's location relative to the corpus root.
func (t *Template) Path() string {
	return t.id.Path()
}

// NameTerm returns the term interned from the display name.
func (t *Template) NameTerm() term.Term {
	return t.name
}

// Terms returns the term set in insertion order. The slice must not be modified.
func (t *Template) Terms() []term.Term {
	return t.terms
}

// HasTerm reports whether tm is stored in the term set.
func (t *Template) HasTerm(tm term.Term) bool {
	_, ok := t.index[tm]
	return ok
}

// AddTerm inserts tm unless already present and reports whether it was added.
func (t *Template) AddTerm(tm term.Term) bool {
	if t.HasTerm(tm) {
		return false
	}
	t.index[tm] = struct{}{}
	t.terms = append(t.terms, tm)
	return true
}

// AddTerms inserts each term and returns how many were new.
func (t *Template) AddTerms(tms ...term.Term) int {
	added := 0
	for _, tm := range tms {
		if t.AddTerm(tm) {
			added++
		}
	}
	return added
}

// MatchesName reports whether the display name equals query ignoring case.
func (t *Template) MatchesName(query string) bool {
	return strings.EqualFold(t.id.Name, strings.TrimSpace(query))
}

// MatchesAny reports whether any stored term, or the name term, equals any of
// queries ignoring case.
func (t *Template) MatchesAny(queries []term.Term) bool {
	for _, q := range queries {
		if t.name.MatchFold(q) {
			return true
		}
		for _, tm := range t.terms {
			if tm.MatchFold(q) {
				return true
			}
		}
	}
	return false
}

// String renders "path <~ term, term" for diagnostics.
func (t *Template) String() string {
	var b strings.Builder
	b.WriteString(t.Path())
	for i, tm := range t.terms {
		if i == 0 {
			b.WriteString(" <~ ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(tm.String())
	}
	return b.String()
}
