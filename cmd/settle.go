package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/etnz/household/logger"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type settleCmd struct {
	member      string
	amount      string
	currency    string
	paidIn      string
	rate        string
	date        string
	direction   string
	account     string
	description string
	dryRun      bool
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "record a payment with a member and settle the oldest items" }
func (*settleCmd) Usage() string {
	return `ledger settle -m <member> -amount <amount> [-direction received|paid] [-d <date>]
              [-c <currency>] [-paid-in <currency> -rate <rate>] [-dry-run]

  Records a payment between you and a member, and marks as paid the oldest open
  items it covers. An item is covered entirely or not at all.

  When the money moved in another currency than the items, -paid-in names it
  and -rate gives the number of item currency units per paid unit.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.member, "m", "", "Member the payment is with")
	f.StringVar(&c.amount, "amount", "", "Amount that moved")
	f.StringVar(&c.currency, "c", "", "Currency of the items to settle, the domestic one by default")
	f.StringVar(&c.paidIn, "paid-in", "", "Currency the amount moved in, -c by default")
	f.StringVar(&c.rate, "rate", "", "Conversion rate from -paid-in to -c")
	f.StringVar(&c.date, "d", date.Today().String(), "Payment date")
	f.StringVar(&c.direction, "direction", "received", "received (the member paid you) or paid (you paid the member)")
	f.StringVar(&c.account, "account", "", "Account the money moved through")
	f.StringVar(&c.description, "desc", "", "Description of the payment")
	f.BoolVar(&c.dryRun, "dry-run", false, "Show the settlement without recording it")
}

// request builds the settlement request described by the flags.
func (c *settleCmd) request() (household.SettleRequest, error) {
	if c.member == "" {
		return household.SettleRequest{}, errors.New("-m is required")
	}
	currency := c.currency
	if currency == "" {
		currency = defaultCurrency
	}
	paidIn := c.paidIn
	if paidIn == "" {
		paidIn = currency
	}
	amount, err := household.ParseMoney(c.amount, paidIn)
	if err != nil {
		return household.SettleRequest{}, err
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return household.SettleRequest{}, fmt.Errorf("invalid date: %w", err)
	}
	direction, err := household.ParseSettleDirection(c.direction)
	if err != nil {
		return household.SettleRequest{}, err
	}
	req := household.SettleRequest{
		MemberID:    c.member,
		Currency:    currency,
		Amount:      amount,
		Date:        on,
		AccountID:   c.account,
		Direction:   direction,
		Description: c.description,
	}
	if c.rate != "" {
		rate, err := decimal.NewFromString(c.rate)
		if err != nil {
			return household.SettleRequest{}, fmt.Errorf("invalid rate: %w", err)
		}
		req.Conversion = household.Rate(currency, rate)
	}
	return req, nil
}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := c.request()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s := openStore()
	ledger, ok := snapshot(ctx, s)
	if !ok {
		return subcommands.ExitFailure
	}
	if _, known := ledger.MemberIndex()[req.MemberID]; !known {
		fmt.Fprintf(os.Stderr, "Error: unknown member %q\n", req.MemberID)
		return subcommands.ExitUsageError
	}
	inv, err := ledger.Invoices(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error projecting invoices: %v\n", err)
		return subcommands.ExitFailure
	}

	settlement, err := household.Settle(req, inv[req.MemberID])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if settlement.Warning != nil {
		log := logger.FromContext(ctx)
		log.Warn().Str("member", req.MemberID).Stringer("amount", req.Amount).Msg(settlement.Warning.Error())
	}
	printMarkdown(renderer.SettlementMarkdown(settlement, ledger.MemberIndex()))
	if c.dryRun {
		return subcommands.ExitSuccess
	}
	return commit(ctx, s, settlement.Batch)
}
