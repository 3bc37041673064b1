package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/gig/internal/presentation"
)

var (
	termsJSON  bool
	termsWidth int
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List every term and the templates it selects",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout()).WithWidth(termsWidth)
		dtos := presentation.FromRegistryTerms(svc.Registry())
		if termsJSON {
			return formatter.FormatTerms(dtos)
		}
		return formatter.WriteTerms(dtos)
	},
}

func init() {
	termsCmd.Flags().BoolVar(&termsJSON, "json", false, "print JSON instead of text")
	termsCmd.Flags().IntVarP(&termsWidth, "width", "w", presentation.DefaultWidth, "wrap text output at this width")
	rootCmd.AddCommand(termsCmd)
}
