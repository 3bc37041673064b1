package registry

// Association says the templates named in Subjects should also be found
// under each of Terms.
type Association struct {
	Subjects []string
	Terms    []string
}

// Decorate attaches every association's terms to each template whose name
// matches a subject ignoring case. Term sets only grow and duplicates are
// skipped, so decorating twice gives the same result as decorating once.
// It returns the number of terms newly added.
func (r *Registry) Decorate(table []Association) int {
	added := 0
	for _, a := range table {
		terms := r.interner.InternAll(a.Terms...)
		for _, subject := range a.Subjects {
			for _, t := range r.FilterByName(subject) {
				added += t.AddTerms(terms...)
			}
		}
	}
	return added
}
