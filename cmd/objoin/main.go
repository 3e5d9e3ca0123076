// Package main contains the CLI implementation of the oblivious band-join
// engine. It uses the cobra package for CLI construction, exactly as the
// teacher tool this was built from does.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/config"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/csvio"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/engine"
)

type runFlags struct {
	tuningFile string
	debugLevel int
	debugDir   string
}

func main() {
	flags := &runFlags{}
	rootCmd := &cobra.Command{
		Use:   "objoin <query-file> <input-dir> <output-file>",
		Short: "Evaluate a restricted SQL query as an oblivious multi-way band join",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], args[1], args[2], flags, os.Stdout)
		},
	}

	rootCmd.Flags().StringVar(&flags.tuningFile, "tuning", "", "Optional TOML file overriding the oblivious primitives' size knobs")
	rootCmd.Flags().IntVar(&flags.debugLevel, "debug-level", -1, "Debug verbosity 0-5 (overrides OBJOIN_DEBUG if set)")
	rootCmd.Flags().StringVar(&flags.debugDir, "debug-dir", "", "Directory for phase table dumps (overrides OBJOIN_DEBUG_DIR if set)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(queryFile, inputDir, outputFile string, flags *runFlags, out io.Writer) error {
	sqlBytes, err := os.ReadFile(queryFile)
	if err != nil {
		return fmt.Errorf("failed to read query file: %w", err)
	}

	tables, err := csvio.LoadDir(inputDir)
	if err != nil {
		return fmt.Errorf("failed to load input tables: %w", err)
	}

	cfg, err := config.Load(flags.tuningFile)
	if err != nil {
		return err
	}
	cfg = config.FromEnvironment(cfg)
	if flags.debugLevel >= 0 {
		cfg.DebugLevel = flags.debugLevel
	}
	if flags.debugDir != "" {
		cfg.DebugDir = flags.debugDir
	}
	logger := config.NewLogger(cfg)

	logger.Info("loaded %d input table(s) from %s", len(tables), inputDir)

	result, stats, err := engine.Execute(string(sqlBytes), tables, cfg)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if err := csvio.WriteFile(outputFile, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	fmt.Fprintf(out, "wrote %d row(s) to %s\n", stats.OutputRows, outputFile)
	for _, p := range stats.Phases {
		logger.Info("phase %s took %s", p.Name, p.Duration)
	}
	return nil
}
