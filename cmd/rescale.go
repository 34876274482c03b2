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

type rescaleCmd struct {
	series string
	total  string
	dryRun bool
}

func (*rescaleCmd) Name() string     { return "rescale" }
func (*rescaleCmd) Synopsis() string { return "spread a new total over the installments of a series" }
func (*rescaleCmd) Usage() string {
	return `ledger rescale -series <id> -total <amount> [-dry-run]

  Changes the total of a series. Every installment gets an equal part, the
  first one takes the rounding remainder, and the splits keep their share.
`
}

func (c *rescaleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.series, "series", "", "Series id")
	f.StringVar(&c.total, "total", "", "New total of the series")
	f.BoolVar(&c.dryRun, "dry-run", false, "Show the result without recording it")
}

func (c *rescaleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.series == "" || c.total == "" {
		fmt.Fprintln(os.Stderr, "Error: -series and -total are required")
		return subcommands.ExitUsageError
	}
	s := openStore()
	ledger, ok := snapshot(ctx, s)
	if !ok {
		return subcommands.ExitFailure
	}
	installments, err := ledger.Series(c.series)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	total, err := household.ParseMoney(c.total, installments[0].Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rescaled, err := household.RescaleSeries(installments, total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SeriesMarkdown(rescaled, ledger.MemberIndex()))
	if c.dryRun {
		return subcommands.ExitSuccess
	}
	return commit(ctx, s, household.UpdateBatch(rescaled))
}
