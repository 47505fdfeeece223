package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	app := &app{}

	cmd := &cobra.Command{
		Use:   "sigstream",
		Short: "Run sigstream demo graphs",
		Long: `Build small signal graphs and feed them values.

  mapfilter   map, filter and reduce a counter
  concisely   the same graph as a single chain
  boolean     and/or/xor of a throttled and a plain random signal
  cartesian   product and sum of a throttled and a plain random signal`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.teardown(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "", "YAML file with demo settings")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Log throttle windows at debug level")
	flags.StringVar(&app.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flags.IntVar(&app.flags.Count, "count", 0, "Number of values to emit")
	flags.DurationVar(&app.flags.Period, "period", 0, "Delay between random values")
	flags.DurationVar(&app.flags.Throttle, "throttle", 0, "Throttle window of signal a")
	flags.DurationVar(&app.flags.Duration, "duration", 0, "How long to feed random values")
	flags.Int64Var(&app.flags.Seed, "seed", 0, "Random seed, 0 picks one")

	cmd.AddCommand(
		mapFilterCmd(app),
		conciselyCmd(app),
		booleanCmd(app),
		cartesianCmd(app),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sigstream %s (%s)\n", version, commit)
		},
	}
}
