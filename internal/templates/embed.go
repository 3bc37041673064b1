package templates

import (
	"embed"
	"io/fs"
)

// AssociationsFile is the path of the built-in association table inside FS.
const AssociationsFile = "associations.yaml"

// corpus embeds the gitignore templates and the association table.
// The structure is:
//   - gitignore/*.gitignore (primary templates)
//   - gitignore/community/*.gitignore (community-contributed templates)
//   - gitignore/Global/*.gitignore (editor and OS templates)
//   - associations.yaml (template name -> extra terms)
//
//go:embed gitignore associations.yaml
var corpus embed.FS

// FS returns the embedded filesystem containing the corpus and association table.
func FS() fs.FS {
	return corpus
}
