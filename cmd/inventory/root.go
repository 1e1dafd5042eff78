package main

import (
	"fmt"
	"io"

	"github.com/rogerio-castellano/inventory-store/internal/config"
	"github.com/rogerio-castellano/inventory-store/internal/inventory"
	"github.com/rogerio-castellano/inventory-store/internal/logging"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the composition root: it owns the one Store for the process.
type app struct {
	configPath string
	dbPath     string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
	store  *repo.Store
	svc    *inventory.Service
}

// execute runs the CLI with args. The store is closed even when a command
// fails, since cobra skips PersistentPostRun on error.
func execute(args []string, out io.Writer) error {
	a := &app{}
	defer a.stop()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	return root.Execute()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inventory",
		Short:         "Manage a local product inventory and user accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.start()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.stop()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "sqlite database path (overrides store.path)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newMigrateCmd(a),
		newProductCmd(a),
		newUserCmd(a),
		newSummaryCmd(a),
	)
	return root
}

func (a *app) start() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Store.Path = a.dbPath
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	store, err := repo.Open(cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("could not open store: %w", err)
	}
	a.store = store
	a.svc = inventory.NewService(store, store, store, logger)
	return nil
}

func (a *app) stop() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing store", zap.Error(err))
		}
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
		a.logger = nil
	}
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := a.store.StoredSchemaVersion()
			if err != nil {
				return fmt.Errorf("read schema version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show product and user totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.svc.Summary()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "products: %d\n", m.TotalProducts)
			fmt.Fprintf(out, "quantity: %d\n", m.TotalQuantity)
			fmt.Fprintf(out, "users:    %d\n", m.TotalUsers)
			return nil
		},
	}
}
