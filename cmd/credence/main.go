// Package main provides the credence binary entry point.
// Credence scores, combines, and validates multi-dimensional confidence
// values from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/credence/config"
	"github.com/c360studio/credence/schema"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "credence"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// appContext carries the resolved configuration and logger into
// subcommands.
type appContext struct {
	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		schemaPath string
	)
	app := &appContext{}

	cmd := &cobra.Command{
		Use:   "credence",
		Short: "Multi-dimensional confidence scoring",
		Long: `Credence models confidence scores decomposed into named dimensions
(source reliability, corroboration, freshness, ...).

It provides:
- Qualitative labeling of overall scores
- Aggregation of several scores under a selectable strategy
- Validation of dimension mappings against named schemas
- Schema registries with inheritance, loadable from YAML files`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(configPath, logLevel, schemaPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&schemaPath, "schemas", "", "Directory of schema definition files")

	cmd.AddCommand(
		versionCmd(),
		labelCmd(),
		aggregateCmd(),
		validateCmd(app),
		schemasCmd(app),
		watchCmd(app),
	)
	return cmd
}

func (a *appContext) init(configPath, logLevel, schemaPath string) error {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		cfg = config.DefaultConfig()
		cfg.Merge(loaded)
	} else {
		loaded, err := config.NewLoader(nil).Load()
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override file configuration.
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if schemaPath != "" {
		cfg.Schemas.Path = schemaPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}

// registry returns the global registry with any configured schema
// definition files registered on top of the built-ins.
func (a *appContext) registry() (*schema.Registry, error) {
	reg := schema.Default()
	if a.cfg.Schemas.Path != "" {
		schemas, err := schema.LoadGlob(a.cfg.Schemas.Path, a.cfg.Schemas.Pattern)
		if err != nil {
			return nil, err
		}
		if err := reg.LoadDefinitions(schemas); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}
