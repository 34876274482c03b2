package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
)

type seriesCmd struct{}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "list the installment series, or show one" }
func (*seriesCmd) Usage() string {
	return `ledger series [<series>]

  Without argument, lists the ids of all installment series.
  With a series id, shows its installments in chronological order.
`
}

func (*seriesCmd) SetFlags(*flag.FlagSet) {}

func (*seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one series id is expected")
		return subcommands.ExitUsageError
	}
	ledger, ok := snapshot(ctx, openStore())
	if !ok {
		return subcommands.ExitFailure
	}
	if f.NArg() == 0 {
		printMarkdown(renderer.SeriesIndexMarkdown(household.AllSeries(ledger.Transactions())))
		return subcommands.ExitSuccess
	}
	installments, err := ledger.Series(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SeriesMarkdown(installments, ledger.MemberIndex()))
	return subcommands.ExitSuccess
}
