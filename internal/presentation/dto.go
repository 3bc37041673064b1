package presentation

import (
	"github.com/zjrosen/gig/internal/domain/registry"
	"github.com/zjrosen/gig/internal/term"
)

// TemplateDTO represents a template for presentation
type TemplateDTO struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Path     string   `json:"path"`
	Terms    []string `json:"terms"` // always present, includes the template's own name
}

// TermDTO represents one term and the templates that carry it
type TermDTO struct {
	Term      string   `json:"term"`
	Templates []string `json:"templates"`
}

// FromDomainTemplate converts a domain template to a DTO
func FromDomainTemplate(t *registry.Template) TemplateDTO {
	return TemplateDTO{
		Name:     t.Name(),
		Category: t.Category().String(),
		Path:     t.Path(),
		Terms:    term.Strings(t.Terms()),
	}
}

// FromDomainTemplates converts a slice of domain templates to DTOs
func FromDomainTemplates(templates []*registry.Template) []TemplateDTO {
	dtos := make([]TemplateDTO, len(templates))
	for i, t := range templates {
		dtos[i] = FromDomainTemplate(t)
	}
	return dtos
}

// FromRegistryTerms builds the term index of reg: every distinct term in
// text order, each with the names of the templates carrying it.
func FromRegistryTerms(reg *registry.Registry) []TermDTO {
	terms := reg.Terms()
	templates := reg.List()

	dtos := make([]TermDTO, 0, len(terms))
	for _, tm := range terms {
		names := make([]string, 0)
		for _, t := range templates {
			if t.HasTerm(tm) {
				names = append(names, t.Name())
			}
		}
		dtos = append(dtos, TermDTO{Term: tm.String(), Templates: names})
	}
	return dtos
}
