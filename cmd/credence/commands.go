package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/credence/confidence"
	"github.com/c360studio/credence/schema"
)

func labelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label <score>",
		Short: "Map an overall score to its qualitative band",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("score must be a number: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), confidence.Label(score))
			return nil
		},
	}
}

func aggregateCmd() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "aggregate [file]",
		Short: "Combine confidence values from a JSON array",
		Long: `Aggregate reads a JSON array of confidence objects (the flat
{"overall": ..., "<dimension>": ...} shape) from a file, or from stdin
when no file is given, and combines them under the chosen method.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			var confs []*confidence.DimensionalConfidence
			if err := json.Unmarshal(data, &confs); err != nil {
				return fmt.Errorf("failed to parse confidence values: %w", err)
			}

			result, err := confidence.Aggregate(confs, confidence.Method(method))
			if err != nil {
				return err
			}

			out, err := json.Marshal(result)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", out, result.Label())
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", string(confidence.Arithmetic),
		"Aggregation method (arithmetic, geometric, minimum, maximum)")
	return cmd
}

func validateCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema> <dimension>=<value> ...",
		Short: "Check a dimension mapping against a named schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]float64, len(args)-1)
			for _, arg := range args[1:] {
				name, raw, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected <dimension>=<value>, got %q", arg)
				}
				value, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("dimension %s: value must be a number: %w", name, err)
				}
				values[name] = value
			}

			reg, err := app.registry()
			if err != nil {
				return err
			}
			result := reg.Validate(args[0], values)
			if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			for _, msg := range result.Errors {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			return fmt.Errorf("%d validation error(s)", len(result.Errors))
		},
	}
}

func schemasCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "Inspect registered dimension schemas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered schemas by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.registry()
			if err != nil {
				return err
			}
			for _, s := range reg.List() {
				line := fmt.Sprintf("%s (%d dimensions)", s.Name, len(s.Dimensions))
				if s.Inherits != "" {
					line += " inherits " + s.Inherits
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "resolve <name>",
		Short: "Show a schema's effective dimension set after inheritance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.registry()
			if err != nil {
				return err
			}
			resolved, err := reg.Resolve(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "name: %s\n", resolved.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "dimensions: %s\n", strings.Join(resolved.Dimensions, ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "required: %s\n", strings.Join(resolved.Required, ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "range: [%v, %v]\n", resolved.ValueRange.Low, resolved.ValueRange.High)
			return nil
		},
	})

	return cmd
}

func watchCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the registry in sync with schema files on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.Schemas.Path == "" {
				return fmt.Errorf("no schema path configured; set --schemas or schemas.path")
			}

			watcher, err := schema.NewWatcher(schema.Default(), schema.WatcherConfig{
				Root:          app.cfg.Schemas.Path,
				Pattern:       app.cfg.Schemas.Pattern,
				DebounceDelay: app.cfg.Schemas.Debounce,
				Logger:        app.logger,
			})
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := watcher.Start(ctx); err != nil {
				return err
			}
			for {
				select {
				case <-ctx.Done():
					return watcher.Stop()
				case event, ok := <-watcher.Events():
					if !ok {
						return nil
					}
					if event.Err != nil {
						app.logger.Error("Reload failed", "error", event.Err)
					}
				}
			}
		},
	}
}
