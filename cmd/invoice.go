package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
)

type invoiceCmd struct {
	month   string
	trip    string
	history bool
	all     bool
}

func (*invoiceCmd) Name() string     { return "invoice" }
func (*invoiceCmd) Synopsis() string { return "show the invoices of the members" }
func (*invoiceCmd) Usage() string {
	return `ledger invoice [-m <yyyy-mm> | -trip <id> | -history | -all] [<member>...]

  Shows what each member owes and is owed. By default, the open items of the
  current month that are not part of a trip. -trip shows the open items of a
  trip, -history the paid ones, and -all every item.
`
}

func (c *invoiceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", date.Today().Format("2006-01"), "Month, as yyyy-mm")
	f.StringVar(&c.trip, "trip", "", "Show the open items of this trip")
	f.BoolVar(&c.history, "history", false, "Show the paid items")
	f.BoolVar(&c.all, "all", false, "Show every item")
}

// view returns the view selected by the flags and its title.
func (c *invoiceCmd) view() (household.View, string, error) {
	switch {
	case c.all:
		return household.AllItems{}, "All Items", nil
	case c.history:
		return household.HistoryView{}, "History", nil
	case c.trip != "":
		return household.TripView{TripID: c.trip}, fmt.Sprintf("Trip %s", c.trip), nil
	default:
		month, err := date.ParseMonth(c.month)
		if err != nil {
			return nil, "", err
		}
		return household.PeriodView{Month: month}, fmt.Sprintf("Invoice of %s", month.From.Format("January 2006")), nil
	}
}

func (c *invoiceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, title, err := c.view()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger, ok := snapshot(ctx, openStore())
	if !ok {
		return subcommands.ExitFailure
	}
	inv, err := ledger.Invoices(view)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error projecting invoices: %v\n", err)
		return subcommands.ExitFailure
	}
	if only := f.Args(); len(only) > 0 {
		for id := range inv {
			if !slices.Contains(only, id) {
				delete(inv, id)
			}
		}
	}
	printMarkdown(renderer.InvoiceMarkdown(title, inv, ledger.MemberIndex()))
	return subcommands.ExitSuccess
}
