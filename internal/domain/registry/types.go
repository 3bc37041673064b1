package registry

import (
	"fmt"
	"path"
	"strings"
)

// Suffix is the file extension recognised as a template in the corpus.
const Suffix = ".gitignore"

// Root is the corpus directory that holds the primary category.
const Root = "gitignore"

// Category identifies a corpus partition.
type Category int

const (
	// CategoryPrimary holds the main templates at the corpus root.
	CategoryPrimary Category = iota
	// CategoryCommunity holds community-contributed templates.
	CategoryCommunity
	// CategoryGlobal holds editor and operating system templates.
	CategoryGlobal
)

// Categories lists every category in discovery order.
var Categories = []Category{CategoryPrimary, CategoryCommunity, CategoryGlobal}

// String returns a human-readable representation of the Category.
func (c Category) String() string {
	switch c {
	case CategoryPrimary:
		return "primary"
	case CategoryCommunity:
		return "community"
	case CategoryGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Dir returns the category's directory relative to the corpus filesystem root.
// Paths use forward slashes since they address an fs.FS.
func (c Category) Dir() string {
	switch c {
	case CategoryCommunity:
		return path.Join(Root, "community")
	case CategoryGlobal:
		return path.Join(Root, "Global")
	default:
		return Root
	}
}

// ParseCategory parses the name produced by Category.String, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Identity uniquely keys a Template within a Registry.
type Identity struct {
	Name     string
	Category Category
}

// String returns "name (category)".
func (id Identity) String() string {
	return fmt.Sprintf("%s (%s)", id.Name, id.Category)
}

// FileName returns the template's file name inside its category directory.
func (id Identity) FileName() string {
	return id.Name + Suffix
}

// Path returns the template's location relative to the corpus root.
func (id Identity) Path() string {
	return path.Join(id.Category.Dir(), id.FileName())
}

// IsTemplateFile reports whether a file name carries the template suffix.
func IsTemplateFile(name string) bool {
	return strings.HasSuffix(name, Suffix) && len(name) > len(Suffix)
}

// NameFromFile strips the template suffix from a file name.
func NameFromFile(name string) string {
	return strings.TrimSuffix(name, Suffix)
}
