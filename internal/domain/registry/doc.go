// Package registry implements the domain layer for the gitignore template index.
//
// This package follows the same layering as the rest of gig:
//   - Contains only pure Go code plus the term package (no file I/O, no YAML)
//   - Defines the value objects Category and Identity and the Template entity
//   - Implements the index logic (discovery insertion, decoration, lookups)
//
// # Core Types
//
// Category is one of the three fixed corpus partitions: primary templates,
// community-contributed templates and platform-wide (Global) templates.
//
// Identity pairs a template's display name with its Category and is the unique
// key of a Template inside a Registry.
//
// Template owns an insertion-ordered, deduplicated set of Terms. The set is
// seeded with the template's own name and only ever grows.
//
// # Registry Collection
//
// Registry is the collection type. It provides:
//   - Add for building the index during corpus discovery
//   - Decorate for attaching curated Associations
//   - FindByName/FilterByName/FindByNames for name lookups
//   - FindByTerms for term membership lookups
//
// Lookups never mutate and are safe for concurrent readers once decoration
// has finished. A query that matches nothing returns an empty result, never
// an error.
package registry
