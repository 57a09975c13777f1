package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"library-circulation/library"
)

const defaultSeedDB = "catalog.db"

type config struct {
	seedDB string
	debug  bool
}

func loadConfig() config {
	// Missing .env is fine, env vars still apply.
	_ = godotenv.Load()

	cfg := config{seedDB: defaultSeedDB}
	if v := os.Getenv("LIBCIRC_SEED_DB"); v != "" {
		cfg.seedDB = v
	}
	if v := os.Getenv("LIBCIRC_DEBUG"); v == "1" || v == "true" {
		cfg.debug = true
	}
	return cfg
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// newEngine builds a circulation engine, seeded from the catalog file when
// one exists. Loans and holds always start empty: circulation state is
// session-local.
func newEngine(cfg config, logger *zap.Logger) (*library.Engine, error) {
	engine := library.NewEngine()

	if _, err := os.Stat(cfg.seedDB); os.IsNotExist(err) {
		logger.Info("no seed catalog, starting empty", zap.String("path", cfg.seedDB))
		return engine, nil
	}

	store, err := library.OpenSeedStore(cfg.seedDB)
	if err != nil {
		return nil, errors.Wrap(err, "open seed catalog")
	}
	defer store.Close()

	if err := store.LoadInto(engine); err != nil {
		return nil, errors.Wrap(err, "seed engine")
	}
	logger.Info("seed catalog loaded",
		zap.String("path", cfg.seedDB),
		zap.Int("books", len(engine.ListBooks())),
		zap.Int("users", len(engine.ListUsers())))
	return engine, nil
}

func main() {
	cfg := loadConfig()

	logger, err := newLogger(cfg.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "libcirc",
		Short:         "Library circulation desk",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cfg, logger)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Run the interactive circulation session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cfg, logger)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the seed catalog by title, author, or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cfg, logger)
			if err != nil {
				return err
			}
			books := engine.SearchBooks(args[0])
			if len(books) == 0 {
				fmt.Printf("No books found matching '%s'.\n", args[0])
				return nil
			}
			printBookTable(engine, books)
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
