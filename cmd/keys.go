package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/gig/internal/log"
	"github.com/zjrosen/gig/internal/presentation"
	"github.com/zjrosen/gig/internal/render"
)

var keysCmd = &cobra.Command{
	Use:   "keys <term>...",
	Short: "Write a .gitignore from every template matching the given terms",
	Long: `Write a .gitignore from every template carrying any of the given terms.

A template's own name always counts as one of its terms, so "gig keys rust"
finds Rust.gitignore as well as templates associated with rust. Terms are
compared ignoring case. Run "gig terms" to see what is available.

Examples:
  gig keys cargo
  gig keys js ts --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		found := svc.FindByTerms(args...)
		log.Debug(log.CatQuery, "searched", "terms", args)
		log.Debug(log.CatQuery, "found", "templates", templateNames(found))

		if len(found) == 0 {
			presentation.NewFormatter(cmd.ErrOrStderr()).Notice("no templates for %s", strings.Join(args, ", "))
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
	rootCmd.AddCommand(keysCmd)
}
