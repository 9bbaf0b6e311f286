package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/pkg/cli"
	"github.com/skulk-project/skulk/pkg/config"
	"github.com/skulk-project/skulk/pkg/output"
	"github.com/skulk-project/skulk/pkg/output/subscribers"
)

const cliExecutable = "skulk"

type contextKey string

const managerContextKey contextKey = "config-manager"

// NewCommand constructs the top-level skulk CLI command, wiring global
// flags, configuration loading, and the output pipeline.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		verbosityCount int
		verbose        bool
		outputFormat   string
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Skulk is a DNS reconnaissance and raw-packet scanning toolkit",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			manager := config.NewManager()
			if err := manager.Load(cmd.Flags(), configFile); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			// Global log level from verbosity flags:
			// --verbose or -vv => Debug, -v => Info, default => Error.
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				switch {
				case verbosityCount <= 0:
					zerolog.SetGlobalLevel(zerolog.ErrorLevel)
				case verbosityCount == 1:
					zerolog.SetGlobalLevel(zerolog.InfoLevel)
				default:
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
			}

			out, err := setupOutputPipeline(outputFormat, verbosityCount)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, output.OutputKey, out)
			ctx = context.WithValue(ctx, managerContextKey, manager)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase diagnostic verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging (shows service layer logs)")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewDNSCommand())
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewPingCommand())
	cmd.AddCommand(NewWhoisCommand())
	cmd.AddCommand(cli.NewVersionCommand(cliExecutable))

	return cmd
}

// setupOutputPipeline builds the event stream with the subscribers matching
// the requested format. The diagnostic channel is always attached; its
// verbosity budget follows the -v count.
func setupOutputPipeline(format string, verbosity int) (output.Output, error) {
	stream := output.NewOutputEventStream()

	switch format {
	case "", "text":
		colorEnabled := os.Getenv("NO_COLOR") == ""
		stream.Subscribe(subscribers.NewHumanFormatter(os.Stdout, os.Stderr, colorEnabled))
	case "json":
		stream.Subscribe(subscribers.NewMachineFormatter(os.Stdout, subscribers.FormatJSON))
	case "yaml":
		stream.Subscribe(subscribers.NewMachineFormatter(os.Stdout, subscribers.FormatYAML))
	default:
		return nil, fmt.Errorf("unknown output format %q (expected text, json, or yaml)", format)
	}

	maxLevel := output.OutputLevel(verbosity)
	if maxLevel > output.LevelDebug {
		maxLevel = output.LevelDebug
	}
	stream.Subscribe(subscribers.NewDiagnosticSubscriber(os.Stderr, maxLevel))

	return output.NewDefaultOutput(stream), nil
}

// outputFromContext returns the pipeline stashed by the root command, or a
// bare text pipeline when the command runs outside it.
func outputFromContext(cmd *cobra.Command) output.Output {
	if ctx := cmd.Context(); ctx != nil {
		if out, ok := ctx.Value(output.OutputKey).(output.Output); ok {
			return out
		}
	}
	stream := output.NewOutputEventStream()
	stream.Subscribe(subscribers.NewHumanFormatter(os.Stdout, os.Stderr, false))
	return output.NewDefaultOutput(stream)
}

// configFromContext returns the loaded configuration, or the defaults when
// the command runs outside the root command.
func configFromContext(cmd *cobra.Command) config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if mgr, ok := ctx.Value(managerContextKey).(*config.Manager); ok {
			return mgr.Get()
		}
	}
	return config.DefaultConfig()
}
