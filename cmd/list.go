package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/gig/internal/domain/registry"
	"github.com/zjrosen/gig/internal/presentation"
)

var (
	listJSON     bool
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list [name]",
	Short: "List templates and their terms",
	Long: `List every template as "path <~ term, term".

With a name, only templates with that name are shown (one per category).

Examples:
  gig list
  gig list rust
  gig list --category global
  gig list --json | jq '.[].name'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		tmpls := svc.List()
		if listCategory != "" {
			c, err := registry.ParseCategory(listCategory)
			if err != nil {
				return err
			}
			tmpls = svc.Registry().ByCategory(c)
		}
		if len(args) == 1 {
			tmpls = filterName(tmpls, args[0])
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		dtos := presentation.FromDomainTemplates(tmpls)
		if listJSON {
			return formatter.FormatTemplates(dtos)
		}
		return formatter.WriteTemplates(dtos)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of text")
	listCmd.Flags().StringVar(&listCategory, "category", "", "only list this category (primary, community, global)")
	rootCmd.AddCommand(listCmd)
}

func filterName(tmpls []*registry.Template, name string) []*registry.Template {
	result := make([]*registry.Template, 0)
	for _, t := range tmpls {
		if t.MatchesName(name) {
			result = append(result, t)
		}
	}
	return result
}
