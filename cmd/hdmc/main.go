// Command hdmc runs a hard-disk Monte Carlo simulation against ./hdmc.inpt
// in the working directory, logging to ./hdmc.log.
package main

import (
	"fmt"
	"os"

	"github.com/dormrod/hard-disk-monte-carlo/internal/cli"
)

func main() {
	if err := cli.RootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
