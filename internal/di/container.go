package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/simplejavamail/rfcpicker/internal/config"
	"github.com/simplejavamail/rfcpicker/internal/dependency"
	"github.com/simplejavamail/rfcpicker/internal/logging"
	"github.com/simplejavamail/rfcpicker/internal/mavensearch"
	"github.com/simplejavamail/rfcpicker/internal/server"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

// Options carries command-line overrides into the container.
type Options struct {
	ConfigFile    string
	DBPath        string
	ListenAddress string
	Verbose       bool
}

// BuildContainer wires configuration, logging, storage, the dependency
// lookup and the HTTP server.
func BuildContainer(opts Options) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		cfg, err := config.New(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		if opts.ListenAddress != "" {
			cfg.Set("server.listen_address", opts.ListenAddress)
		}
		if opts.Verbose {
			cfg.Set("logging.level", "debug")
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register store and repositories
	if err := container.Provide(func(cfg *config.Config) (*store.Store, error) {
		return OpenStore(cfg, opts.DBPath)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s *store.Store) store.EventRepo {
		return s.EventRepo()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s *store.Store) store.VersionRepo {
		return s.VersionRepo()
	}); err != nil {
		return nil, err
	}

	// Register dependency lookup
	if err := container.Provide(func(cfg *config.Config) (config.Maven, error) {
		return cfg.Maven()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(NewMavenClient); err != nil {
		return nil, err
	}
	if err := container.Provide(func(m config.Maven, c *mavensearch.Client, versions store.VersionRepo, logger *zap.Logger) *dependency.Service {
		return dependency.NewService(c, versions, m.GroupID, m.ArtifactID, logger)
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(cfg *config.Config) (config.Server, error) {
		return cfg.Server()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(server.New); err != nil {
		return nil, err
	}

	return container, nil
}

// OpenStore opens the database at path, or at the configured or default
// location when path is empty.
func OpenStore(cfg *config.Config, path string) (*store.Store, error) {
	if path == "" {
		path = cfg.GetString("store.path")
	}
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	return store.Open(path)
}

// NewMavenClient builds a search client from the maven.* settings.
func NewMavenClient(m config.Maven, logger *zap.Logger) *mavensearch.Client {
	return mavensearch.NewClient(
		mavensearch.WithBaseURL(m.BaseURL),
		mavensearch.WithTimeout(m.Timeout),
		mavensearch.WithRetry(mavensearch.RetryConfig{
			MaxAttempts: m.Retry.MaxAttempts,
			InitialWait: m.Retry.InitialWait,
			MaxWait:     m.Retry.MaxWait,
			Multiplier:  2.0,
		}),
		mavensearch.WithLogger(logger),
	)
}
