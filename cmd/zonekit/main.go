package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/zonekit/zonekit/pkg/cli"
)

func main() {
	rootCmd := cli.NewRootCommand()

	flag.Parse()

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrRunHadFailures) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
