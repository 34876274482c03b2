package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
)

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the outstanding balance with every member" }
func (*balanceCmd) Usage() string {
	return `ledger balance

  Shows, per member and currency, the open credits and debits and who owes whom.
`
}

func (*balanceCmd) SetFlags(*flag.FlagSet) {}

func (*balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, ok := snapshot(ctx, openStore())
	if !ok {
		return subcommands.ExitFailure
	}
	inv, err := ledger.Invoices(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error projecting invoices: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BalanceMarkdown(inv, ledger.MemberIndex()))
	return subcommands.ExitSuccess
}
