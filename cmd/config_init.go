package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/gig/internal/config"
	"github.com/zjrosen/gig/internal/presentation"
)

var (
	configInitGlobal bool
	configInitForce  bool
)

var configInitCmd = &cobra.Command{
	Use:   "config:init",
	Short: "Write a commented default config file",
	Long: `Write the default configuration to .gig/config.yaml, or to
~/.config/gig/config.yaml with --global. An existing file is left alone
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := localConfigPath
		if configInitGlobal {
			path = config.DefaultConfigPath()
			if path == "" {
				return fmt.Errorf("cannot determine home directory")
			}
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		presentation.NewFormatter(cmd.ErrOrStderr()).Notice("created %s", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(configInitCmd)
}
