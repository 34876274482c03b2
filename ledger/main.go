// Command ledger keeps the shared expenses of a household.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household/cmd"
	"github.com/etnz/household/config"
	"github.com/google/subcommands"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	commander := subcommands.NewCommander(flag.CommandLine, "ledger")
	cmd.Register(commander, flag.CommandLine, cfg)
	cmd.Completion(flag.CommandLine).Complete("ledger")

	flag.Parse()
	ctx, err := cmd.Context(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	os.Exit(int(commander.Execute(ctx)))
}
