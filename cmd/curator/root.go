package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"curator/internal/catalog"
	"curator/internal/config"
	"curator/internal/exhibition"
	"curator/internal/platform/aic"
	"curator/internal/platform/httpclient"
	"curator/internal/platform/met"
	"curator/internal/storage"
)

// cli carries the state shared by every subcommand of one invocation.
type cli struct {
	verbose bool
	client  string

	cfg    config.Config
	logger *zap.Logger

	store   *storage.Service
	catalog *catalog.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "curator",
		Short: "Museum exhibition curator tools",
		Long: `curator works directly against the exhibition storage and the museum APIs.
Storage and API endpoints are read from the same environment as the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnvFiles()
			cfg, err := config.LoadTools()
			if err != nil {
				return err
			}
			c.cfg = cfg

			zcfg := zap.NewProductionConfig()
			zcfg.OutputPaths = []string{"stderr"}
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			c.logger, err = zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.store != nil {
				_ = c.store.Close()
			}
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&c.client, "client", "", "Client id whose storage namespace to use")

	root.AddCommand(
		newShareCmd(c),
		newExhibitionsCmd(c),
		newGalleryCmd(c),
		newSeedCmd(c),
	)
	return root
}

func (c *cli) storage(ctx context.Context) (*storage.Service, error) {
	if c.store != nil {
		return c.store, nil
	}
	backend, err := storage.Open(ctx, storage.Config{
		Driver:     c.cfg.StorageDriver,
		SQLitePath: c.cfg.SQLitePath,
		DSN:        c.cfg.DBDSN,
		Timeout:    c.cfg.DBTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	c.store = storage.NewService(backend)
	return c.store, nil
}

func (c *cli) exhibitions(ctx context.Context) (*exhibition.Store, error) {
	if c.client == "" {
		return nil, fmt.Errorf("--client is required")
	}
	st, err := c.storage(ctx)
	if err != nil {
		return nil, err
	}
	return exhibition.NewStore(st, c.logger.Named("exhibitions")), nil
}

func (c *cli) museums() *catalog.Service {
	if c.catalog != nil {
		return c.catalog
	}
	client := func(baseURL string) *httpclient.Client {
		return httpclient.New(httpclient.Options{
			BaseURL:    baseURL,
			UserAgent:  c.cfg.MuseumUserAgent,
			RPS:        c.cfg.MuseumRPS,
			MaxRetries: c.cfg.MuseumMaxRetries,
			Timeout:    c.cfg.MuseumTimeout,
		})
	}
	c.catalog = catalog.NewService(
		aic.NewClient(client(c.cfg.AICBaseURL)),
		met.NewClient(client(c.cfg.MetBaseURL)),
		catalog.Config{Limit: c.cfg.CatalogLimit, Concurrency: c.cfg.FetchConcurrency},
		c.logger.Named("catalog"),
	)
	return c.catalog
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
