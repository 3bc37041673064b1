package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/gig/internal/config"
	"github.com/zjrosen/gig/internal/domain/registry"
	"github.com/zjrosen/gig/internal/log"
	"github.com/zjrosen/gig/internal/paths"
	"github.com/zjrosen/gig/internal/presentation"
	appreg "github.com/zjrosen/gig/internal/registry/application"
	"github.com/zjrosen/gig/internal/render"
	"github.com/zjrosen/gig/internal/templates"
	"github.com/zjrosen/gig/internal/term"
)

var (
	version    = "dev"
	cfgFile    string
	cfg        config.Config
	dryRun     bool
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "gig",
	Short: "Generate .gitignore files from a template corpus",
	Long: `gig assembles a .gitignore from named templates.

Templates are looked up by name ("gig for rust node") or by the topics they
cover ("gig keys cargo js"). Output goes to the root of the current git
repository unless --output says otherwise.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .gig/config.yaml, then ~/.config/gig/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false,
		"enable debug logging (also GIG_DEBUG)")
	rootCmd.PersistentFlags().String("log-file", "",
		`debug log path, "-" for stderr (default: debug.log)`)
	rootCmd.PersistentFlags().String("assets-dir", "",
		"directory holding a gitignore/ template corpus")
	rootCmd.PersistentFlags().StringP("output", "o", "",
		"file or directory to write (default: repository root)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false,
		"show a diff of the change instead of writing")

	bindFlags()
}

// bindFlags binds persistent flags to their viper keys.
func bindFlags() {
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("assets_dir", rootCmd.PersistentFlags().Lookup("assets-dir"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("mode", defaults.Mode)
	viper.SetDefault("headers", defaults.Headers)
	viper.SetDefault("log_file", defaults.LogFile)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)

	viper.SetEnvPrefix("GIG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .gig/config.yaml (current directory)
		// 2. ~/.config/gig/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gig"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; gig runs on defaults.
	if err := viper.ReadInConfig(); err == nil {
		log.Debug(log.CatConfig, "loaded config", "path", viper.ConfigFileUsed())
	}
	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
}

const localConfigPath = ".gig/config.yaml"

// setup starts logging and validates the loaded configuration.
func setup(_ *cobra.Command, _ []string) error {
	if cfg.Debug {
		cleanup, err := initLogging(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatConfig, "gig starting", "version", version, "config", viper.ConfigFileUsed())
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func initLogging(path string) (func(), error) {
	if path == "-" {
		log.InitWriter(os.Stderr)
		return func() {}, nil
	}
	if path == "" {
		path = config.Defaults().LogFile
	}
	return log.Init(path)
}

// newService runs discovery and decoration for the configured corpus.
func newService() (*appreg.RegistryService, error) {
	corpus, err := corpusFS()
	if err != nil {
		return nil, err
	}

	table, err := associations()
	if err != nil {
		return nil, err
	}

	return appreg.NewRegistryService(appreg.Options{
		Corpus:       corpus,
		Associations: table,
		Interner:     term.Default,
		CacheTTL:     cfg.Cache.TTL,
	})
}

// corpusFS picks the template corpus: assets_dir when configured, then
// ~/.config/gig/corpus when it exists, then the built-in templates.
func corpusFS() (fs.FS, error) {
	if cfg.AssetsDir != "" {
		log.Info(log.CatCorpus, "using configured corpus", "dir", cfg.AssetsDir)
		return os.DirFS(cfg.AssetsDir), nil
	}
	if user := appreg.LoadUserCorpus(appreg.UserCorpusDir()); user != nil {
		return user, nil
	}
	return templates.FS(), nil
}

// associations returns the built-in table followed by the user's entries.
func associations() ([]registry.Association, error) {
	table, err := appreg.LoadAssociations(templates.FS(), templates.AssociationsFile)
	if err != nil {
		return nil, fmt.Errorf("loading built-in associations: %w", err)
	}

	defs := make([]appreg.AssociationDef, len(cfg.Associations))
	for i, a := range cfg.Associations {
		defs[i] = appreg.AssociationDef{Templates: a.Templates, Terms: a.Terms}
	}
	extra, err := appreg.BuildAssociations(defs)
	if err != nil {
		return nil, fmt.Errorf("config associations: %w", err)
	}

	return append(table, extra...), nil
}

// sections reads the body of every template, in order.
func sections(ctx context.Context, svc *appreg.RegistryService, tmpls []*registry.Template) ([]render.Section, error) {
	bodies, err := svc.ContentsAll(ctx, tmpls)
	if err != nil {
		return nil, err
	}
	out := make([]render.Section, len(tmpls))
	for i, t := range tmpls {
		out[i] = render.Section{Name: t.Name(), Body: bodies[i]}
	}
	return out, nil
}

// emit writes tmpls to the resolved target, or prints a diff with --dry-run.
func emit(cmd *cobra.Command, svc *appreg.RegistryService, tmpls []*registry.Template, mode render.Mode) error {
	secs, err := sections(cmd.Context(), svc, tmpls)
	if err != nil {
		return err
	}

	target := paths.ResolveTarget(cfg.Output)
	opts := render.Options{Headers: cfg.Headers}
	notices := presentation.NewFormatter(cmd.ErrOrStderr())

	if dryRun {
		res, err := render.Plan(target, secs, mode, opts)
		if err != nil {
			return err
		}
		reportSkipped(notices, res)
		_, err = fmt.Fprint(cmd.OutOrStdout(), render.Diff(string(res.Before), string(res.After)))
		return err
	}

	res, err := render.Write(target, secs, mode, opts)
	if err != nil {
		return err
	}
	reportSkipped(notices, res)
	if len(res.Written) > 0 {
		notices.Notice("wrote %d template(s) to %s", len(res.Written), paths.Display(res.Path))
	}
	return nil
}

func reportSkipped(f *presentation.Formatter, res *render.Result) {
	for _, s := range res.Skipped {
		f.Notice("%s is already in %s", s.Name, paths.Display(res.Path))
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
