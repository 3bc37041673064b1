package term

import (
	"fmt"
	"strings"
)

// Term is an interned string. Two Terms are equal iff they were interned from
// the same trimmed text by the same Interner, so Terms work as map keys.
type Term struct {
	id uint32
	in *Interner
}

// From interns s into the Default interner.
func From(s string) Term {
	return Default.Intern(s)
}

// InternAll interns each string into the Default interner.
func InternAll(ss ...string) []Term {
	return Default.InternAll(ss...)
}

// ID returns the dense identity assigned by the issuing interner.
func (t Term) ID() uint32 {
	return t.id
}

// IsZero reports whether t was never issued by an interner.
func (t Term) IsZero() bool {
	return t.in == nil
}

// String returns the interned text.
func (t Term) String() string {
	if t.in == nil {
		return ""
	}
	return t.in.Lookup(t)
}

// GoString implements fmt.GoStringer.
func (t Term) GoString() string {
	return fmt.Sprintf("Term(%d)", t.id)
}

// Equal reports identity equality.
func (t Term) Equal(o Term) bool {
	return t == o
}

// EqualFold reports whether the interned text equals s under case folding.
// s is trimmed first, matching how text is stored.
func (t Term) EqualFold(s string) bool {
	return strings.EqualFold(t.String(), strings.TrimSpace(s))
}

// MatchFold reports whether t and o carry the same text ignoring case.
func (t Term) MatchFold(o Term) bool {
	if t == o {
		return true
	}
	return strings.EqualFold(t.String(), o.String())
}

// Strings returns the text of each term.
func Strings(ts []Term) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}
