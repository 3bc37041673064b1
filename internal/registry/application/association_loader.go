package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/gig/internal/domain/registry"
)

// ErrInvalidAssociation is returned for table entries missing templates or terms.
var ErrInvalidAssociation = errors.New("invalid association")

// AssociationFile is the root structure for associations.yaml
type AssociationFile struct {
	Associations []AssociationDef `yaml:"associations"`
}

// AssociationDef defines one table entry in YAML
type AssociationDef struct {
	Templates []string `yaml:"templates"` // Template names, matched ignoring case
	Terms     []string `yaml:"terms"`     // Extra terms for those templates
}

// LoadAssociations reads and parses an association table from fsys.
func LoadAssociations(fsys fs.FS, path string) ([]registry.Association, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	table, err := ParseAssociations(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return table, nil
}

// ParseAssociations parses an association table document.
func ParseAssociations(content []byte) ([]registry.Association, error) {
	var file AssociationFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}
	return BuildAssociations(file.Associations)
}

// BuildAssociations validates definitions and converts them to domain values.
// Blank template names and terms are dropped; an entry left with no templates
// or no terms is rejected.
func BuildAssociations(defs []AssociationDef) ([]registry.Association, error) {
	table := make([]registry.Association, 0, len(defs))
	for i, def := range defs {
		a := registry.Association{
			Subjects: nonBlank(def.Templates),
			Terms:    nonBlank(def.Terms),
		}
		if len(a.Subjects) == 0 {
			return nil, fmt.Errorf("%w: entry %d has no templates", ErrInvalidAssociation, i)
		}
		if len(a.Terms) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%s) has no terms", ErrInvalidAssociation, i, strings.Join(a.Subjects, ", "))
		}
		table = append(table, a)
	}
	return table, nil
}

func nonBlank(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
