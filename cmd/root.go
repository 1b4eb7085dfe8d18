package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simplejavamail/rfcpicker/internal/config"
	"github.com/simplejavamail/rfcpicker/internal/dependency"
	"github.com/simplejavamail/rfcpicker/internal/di"
	"github.com/simplejavamail/rfcpicker/internal/logging"
	"github.com/simplejavamail/rfcpicker/internal/picker"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "rfcpicker",
	Short: "Pick the MIME structure for an outgoing email",
	Long: "rfcpicker tells you which multipart layout (mixed, related, alternative or a\n" +
		"nesting of them) an email needs for the content it carries.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RFCPICKER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	addFeatureFlags(rootCmd)

	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(dependencyCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// addFeatureFlags registers one boolean flag per picker option.
func addFeatureFlags(cmd *cobra.Command) {
	for _, o := range picker.Options() {
		cmd.Flags().Bool(o.Key(), false, "Email contains: "+o.Label())
	}
}

// choicesFromFlags reads the feature flags. Embedded content without HTML
// is dropped.
func choicesFromFlags(cmd *cobra.Command) picker.Choices {
	return picker.FromLookup(func(k string) bool {
		v, _ := cmd.Flags().GetBool(k)
		return v
	})
}

// loadConfig reads the config file and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.New(file)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Set("store.path", p)
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Set("logging.level", "debug")
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from config, then RFCPICKER_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.GetString("store.path"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// env bundles what most commands need.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

type setupOpts struct {
	store bool
	// quiet raises the log level to error unless --verbose is set.
	quiet bool
}

// setup loads config and logging, and opens the store when requested.
func setup(cmd *cobra.Command, opts setupOpts) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); opts.quiet && !verbose {
		cfg.Set("logging.level", "error")
	}
	logger, err := logging.InitLogger(cfg)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, logger: logger}
	if !opts.store {
		return e, nil
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.store = st
	return e, nil
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.logger.Sync()
}

// dependencyService builds the version lookup backed by the store cache.
func (e *env) dependencyService() (*dependency.Service, error) {
	m, err := e.cfg.Maven()
	if err != nil {
		return nil, err
	}
	var cache store.VersionRepo
	if e.store != nil {
		cache = e.store.VersionRepo()
	}
	client := di.NewMavenClient(m, e.logger)
	return dependency.NewService(client, cache, m.GroupID, m.ArtifactID, e.logger), nil
}

// record saves a classification, logging instead of failing.
func (e *env) record(ctx context.Context, ev store.Event) {
	if e.store == nil {
		return
	}
	if _, err := e.store.EventRepo().Append(ctx, ev); err != nil {
		e.logger.Warn("record classification", zap.Error(err))
	}
}
