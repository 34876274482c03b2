package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/household/date"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	month string
	head  int
	tail  int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of a month" }
func (*txCmd) Usage() string {
	return `ledger tx [-m <yyyy-mm>] [-head <n>] [-tail <n>]

  Lists the live transactions of a month, the current one by default.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.month, "m", date.Today().Format("2006-01"), "Month to list, as yyyy-mm.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	month, err := date.ParseMonth(p.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, ok := snapshot(ctx, openStore())
	if !ok {
		return subcommands.ExitFailure
	}
	members := ledger.MemberIndex()

	var lines []string
	for tx := range ledger.Between(month) {
		lines = append(lines, fmt.Sprintf("%s: %s", tx.Date, renderer.Transaction(tx, members)))
	}
	if p.head > 0 && len(lines) > p.head {
		lines = lines[:p.head]
	}
	if p.tail > 0 && len(lines) > p.tail {
		lines = lines[len(lines)-p.tail:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions of %s\n\n", month)
	for _, l := range lines {
		fmt.Fprintf(&b, "1. %s\n", l)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
