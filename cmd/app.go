// Package cmd implements the CLI application to manage the household ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/household"
	"github.com/etnz/household/config"
	"github.com/etnz/household/logger"
	"github.com/etnz/household/store"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile      string
	defaultCurrency string
	logLevel        string
	rawOutput       bool
)

// stdout receives the command reports.
var stdout io.Writer = os.Stdout

// Commands lists the subcommands, in help order.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&membersCmd{},
		&addCmd{},
		&txCmd{},
		&invoiceCmd{},
		&balanceCmd{},
		&settleCmd{},
		&seriesCmd{},
		&rescaleCmd{},
		&anticipateCmd{},
		&fmtCmd{},
	}
}

// Register declares the global flags on top, with cfg values as defaults, and the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander, top *flag.FlagSet, cfg config.Config) {
	top.StringVar(&ledgerFile, "ledger-file", cfg.LedgerFile, "Path to the ledger file (JSONL format)")
	top.StringVar(&defaultCurrency, "currency", cfg.Currency, "Domestic currency, for ledger lines without currency")
	top.StringVar(&logLevel, "log-level", cfg.LogLevel.String(), "Log level (debug, info, warn, error)")
	top.BoolVar(&rawOutput, "raw", false, "Print reports as raw markdown")

	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands() {
		c.Register(cmd, group(cmd))
	}
}

func group(c subcommands.Command) string {
	switch c.(type) {
	case *membersCmd, *addCmd, *txCmd, *fmtCmd:
		return "ledger"
	case *seriesCmd, *rescaleCmd, *anticipateCmd:
		return "installments"
	default:
		return "invoices"
	}
}

// Context returns ctx carrying the logger configured by the flags.
func Context(ctx context.Context) (context.Context, error) {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, logger.New(level)), nil
}

// openStore returns the store of the ledger file.
func openStore() store.Store {
	return store.NewFile(ledgerFile, defaultCurrency)
}

// snapshot reads the ledger, reporting failures on stderr.
func snapshot(ctx context.Context, s store.Store) (*household.Ledger, bool) {
	ledger, err := s.Snapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return nil, false
	}
	return ledger, true
}

// commit commits batch and reports the outcome.
func commit(ctx context.Context, s store.Store, batch household.Batch) subcommands.ExitStatus {
	if err := s.Commit(ctx, batch); err != nil {
		fmt.Fprintf(os.Stderr, "Error committing to %q: %v\n", ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Recorded %d change(s) in %s\n", len(batch), ledgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown prints a markdown report, styled for the terminal unless -raw.
func printMarkdown(md string) {
	if rawOutput {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// unwrapAll flattens joined errors.
func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var all []error
		for _, e := range joined.Unwrap() {
			all = append(all, unwrapAll(e)...)
		}
		return all
	}
	if err == nil {
		return nil
	}
	return []error{err}
}
