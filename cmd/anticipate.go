package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
)

type anticipateCmd struct {
	series string
	to     string
	dryRun bool
}

func (*anticipateCmd) Name() string     { return "anticipate" }
func (*anticipateCmd) Synopsis() string { return "move future installments of a series to an earlier date" }
func (*anticipateCmd) Usage() string {
	return `ledger anticipate -series <id> [-to <date>] [<installment id>...]

  Moves the given future, unsettled installments to an earlier date, today by
  default. Without installment ids, lists those that can be anticipated.
`
}

func (c *anticipateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.series, "series", "", "Series id")
	f.StringVar(&c.to, "to", date.Today().String(), "New date of the installments")
	f.BoolVar(&c.dryRun, "dry-run", false, "Show the result without recording it")
}

func (c *anticipateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.series == "" {
		fmt.Fprintln(os.Stderr, "Error: -series is required")
		return subcommands.ExitUsageError
	}
	target, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
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

	today := date.Today()
	if f.NArg() == 0 {
		printMarkdown(renderer.SeriesMarkdown(household.AnticipationCandidates(installments, today), ledger.MemberIndex()))
		return subcommands.ExitSuccess
	}

	moved, err := household.Anticipate(installments, f.Args(), target, today)
	if err != nil {
		for _, e := range unwrapAll(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SeriesMarkdown(moved, ledger.MemberIndex()))
	if c.dryRun {
		return subcommands.ExitSuccess
	}
	return commit(ctx, s, household.UpdateBatch(moved))
}
