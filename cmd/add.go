package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/gig/internal/log"
	"github.com/zjrosen/gig/internal/presentation"
	"github.com/zjrosen/gig/internal/render"
)

var addCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Append named templates to an existing .gitignore",
	Long: `Append the named templates to the target .gitignore, creating it if needed.

Templates whose "### Name ###" header is already in the file are skipped, so
running add twice changes nothing the second time.

Examples:
  gig add macos
  gig add vim emacs -o ./web`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		found, missing, err := resolveNames(svc, args, "")
		if err != nil {
			return err
		}
		log.Debug(log.CatQuery, "found", "templates", templateNames(found))

		notices := presentation.NewFormatter(cmd.ErrOrStderr())
		for _, name := range missing {
			notices.Notice("no template named %q", name)
		}
		if len(found) == 0 {
			return nil
		}

		if !cfg.Headers {
			// Append mode finds existing sections by their headers.
			log.Warn(log.CatRender, "headers disabled; add cannot detect templates already present")
		}
		return emit(cmd, svc, found, render.ModeAppend)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
