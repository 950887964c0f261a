// Package cli implements the hdmc command-line interface: a single `run`
// subcommand (also the default with no subcommand) that reads hdmc.inpt,
// runs the simulation, and logs to hdmc.log.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dormrod/hard-disk-monte-carlo/internal/driver"
	"github.com/dormrod/hard-disk-monte-carlo/internal/input"
	"github.com/dormrod/hard-disk-monte-carlo/internal/loggingx"
)

const appName = "hdmc"

// version is a fixed development tag; no build step stamps it.
const version = "0.1.0-dev"

// RootCommand builds the root cobra command with the run subcommand
// registered and set as the default action.
func RootCommand() *cobra.Command {
	var inputPath, logPath string

	root := &cobra.Command{
		Use:          appName,
		Short:        "hdmc simulates a two-dimensional hard-disk fluid by Metropolis Monte Carlo",
		Long:         "hdmc equilibrates and samples a periodic two-dimensional hard-disk fluid, computing the radial distribution function and Voronoi cell statistics from the production trajectory.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(inputPath, logPath)
		},
	}
	root.PersistentFlags().StringVar(&inputPath, "input", "./hdmc.inpt", "path to the input parameter file")
	root.PersistentFlags().StringVar(&logPath, "log", "./hdmc.log", "path to the run log file")

	root.AddCommand(newRunCommand(&inputPath, &logPath))
	return root
}

// newRunCommand exposes the same default action under an explicit `run`
// subcommand, for scripts that prefer not to rely on cobra's no-subcommand
// default.
func newRunCommand(inputPath, logPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "run the simulation described by the input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(*inputPath, *logPath)
		},
	}
}

func runSimulation(inputPath, logPath string) error {
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("hdmc: cannot open log file %s: %w", logPath, err)
	}
	defer logFile.Close()

	log := loggingx.New(logFile)

	inFile, err := os.Open(inputPath)
	if err != nil {
		return log.Fatal("cannot find input file "+inputPath, err)
	}
	defer inFile.Close()

	params, err := input.Parse(inFile)
	if err != nil {
		return log.Fatal("cannot parse input file", err)
	}

	return driver.Run(params, log)
}
