package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `ledger fmt

  Validates the ledger file. This command reads all members and transactions,
  checks them against each other, and writes them back in a canonical JSONL
  format: fields in a fixed order, amounts rounded to the cent, currency
  always explicit.

Usage Examples:
# Formats the default ledger file.
$ ledger fmt
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s := openStore()
	ledger, ok := snapshot(ctx, s)
	if !ok {
		return subcommands.ExitFailure
	}
	if err := ledger.Validate(); err != nil {
		for _, e := range unwrapAll(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		return subcommands.ExitFailure
	}
	// An empty batch rewrites the ledger as is.
	if err := s.Commit(ctx, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting ledger %q: %v\n", ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted ledger %q.\n", ledgerFile)
	return subcommands.ExitSuccess
}
