package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/gig/internal/domain/registry"
	"github.com/zjrosen/gig/internal/log"
	"github.com/zjrosen/gig/internal/presentation"
	appreg "github.com/zjrosen/gig/internal/registry/application"
	"github.com/zjrosen/gig/internal/render"
)

var forCategory string

var forCmd = &cobra.Command{
	Use:   "for <name>...",
	Short: "Write a .gitignore from templates named on the command line",
	Long: `Write a .gitignore built from the named templates.

Names are matched against template names ignoring case. Templates are
written in the order they are named; a name given twice is written once.

Examples:
  # Rust project edited in VS Code
  gig for rust visualstudiocode

  # Only look at the editor and OS templates
  gig for macos --category global

  # Preview against the existing file
  gig for go node --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		found, missing, err := resolveNames(svc, args, forCategory)
		if err != nil {
			return err
		}
		log.Debug(log.CatQuery, "searched", "names", args, "category", forCategory)
		log.Debug(log.CatQuery, "found", "templates", templateNames(found))

		notices := presentation.NewFormatter(cmd.ErrOrStderr())
		for _, name := range missing {
			notices.Notice("no template named %q", name)
		}
		if len(found) == 0 {
			return nil
		}

		mode, err := render.ParseMode(cfg.Mode)
		if err != nil {
			return err
		}
		return emit(cmd, svc, found, mode)
	},
}

func init() {
	forCmd.Flags().StringVar(&forCategory, "category", "", "only match templates in this category (primary, community, global)")
	rootCmd.AddCommand(forCmd)
}

// resolveNames looks up each name, keeping the first match per name and
// dropping repeats. Names with no match are returned separately.
func resolveNames(svc *appreg.RegistryService, names []string, category string) ([]*registry.Template, []string, error) {
	lookup := svc.FindByName
	if category != "" {
		c, err := registry.ParseCategory(category)
		if err != nil {
			return nil, nil, err
		}
		candidates := svc.Registry().ByCategory(c)
		lookup = func(name string) *registry.Template {
			for _, t := range candidates {
				if t.MatchesName(name) {
					return t
				}
			}
			return nil
		}
	}

	found := make([]*registry.Template, 0, len(names))
	missing := make([]string, 0)
	seen := make(map[registry.Identity]bool)
	for _, name := range names {
		t := lookup(name)
		if t == nil {
			missing = append(missing, name)
			continue
		}
		if !seen[t.Identity()] {
			seen[t.Identity()] = true
			found = append(found, t)
		}
	}
	return found, missing, nil
}

func templateNames(tmpls []*registry.Template) []string {
	names := make([]string, len(tmpls))
	for i, t := range tmpls {
		names[i] = t.Name()
	}
	return names
}
