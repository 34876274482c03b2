package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	typ          string
	id           string
	date         string
	description  string
	category     string
	account      string
	amount       string
	currency     string
	payer        string
	splits       string
	shared       bool
	trip         string
	installments int
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an expense, an income or a transfer" }
func (*addCmd) Usage() string {
	return `ledger add -amount <amount> [-type expense|income|transfer] [-d <date>] [-desc <text>]
           [-split <member>=<amount>|<percent>%,...] [-payer <member>] [-trip <id>] [-n <installments>]

  Records a transaction. Splits assign a part of the amount to members, either
  as a fixed amount or as a percentage. With -n, the amount is the total of a
  series of monthly installments starting on the date.

Usage Examples:
# Dinner of 300, Bea owes 100.
$ ledger add -amount 300 -desc Dinner -split B=100

# A sofa paid in 10 installments, half of it for Caio.
$ ledger add -amount 2000 -desc Sofa -split C=50% -n 10
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", string(household.Expense), "Transaction type: expense, income or transfer")
	f.StringVar(&c.id, "id", "", "Transaction id, a random UUID by default")
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date. See the date package for supported formats.")
	f.StringVar(&c.description, "desc", "", "Description")
	f.StringVar(&c.category, "cat", "", "Category")
	f.StringVar(&c.account, "account", "", "Account or card used")
	f.StringVar(&c.amount, "amount", "", "Amount, positive")
	f.StringVar(&c.currency, "c", "", "Currency, the domestic one by default")
	f.StringVar(&c.payer, "payer", household.Self().String(), "Who paid: me or a member id")
	f.StringVar(&c.splits, "split", "", "Comma separated splits, like B=100 or B=50%")
	f.BoolVar(&c.shared, "shared", false, "Flag the expense as shared even without splits")
	f.StringVar(&c.trip, "trip", "", "Trip id")
	f.IntVar(&c.installments, "n", 1, "Number of monthly installments")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := c.transactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	batch := make(household.Batch, 0, len(txs))
	for _, tx := range txs {
		batch = append(batch, household.CreateTransaction{Tx: tx})
	}
	return commit(ctx, openStore(), batch)
}

// transactions builds the transactions described by the flags.
func (c *addCmd) transactions() ([]household.Transaction, error) {
	typ, err := household.ParseTxType(c.typ)
	if err != nil {
		return nil, err
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	currency := c.currency
	if currency == "" {
		currency = defaultCurrency
	}
	amount, err := household.ParseMoney(c.amount, currency)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	splits, err := parseSplits(c.splits, amount)
	if err != nil {
		return nil, err
	}
	payer := household.ParseOwner(c.payer)
	id := c.id
	if id == "" {
		id = uuid.NewString()
	}

	tx := household.Transaction{
		ID:          id,
		Description: c.description,
		Category:    c.category,
		AccountID:   c.account,
		Type:        typ,
		Date:        on,
		Amount:      amount,
		Payer:       payer,
		Shared:      c.shared || len(splits) > 0,
		SharedWith:  splits,
		TripID:      c.trip,
	}
	if c.installments <= 1 {
		return []household.Transaction{tx}, nil
	}

	// Each installment starts as a copy of the whole, rescaling spreads the
	// total and the splits over the series.
	series := make([]household.Transaction, c.installments)
	for i := range series {
		inst := tx.Clone()
		inst.ID = fmt.Sprintf("%s-%d", id, i+1)
		inst.Date = on.AddMonthClamped(i)
		inst.Series = &household.Installment{SeriesID: id, Current: i + 1, Total: c.installments, OriginalAmount: amount}
		series[i] = inst
	}
	return household.RescaleSeries(series, amount)
}

// parseSplits parses "B=100,C=25%" into splits of total.
func parseSplits(list string, total household.Money) ([]household.Split, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var splits []household.Split
	for _, part := range strings.Split(list, ",") {
		member, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || member == "" || value == "" {
			return nil, fmt.Errorf("invalid split %q, want <member>=<amount> or <member>=<percent>%%", part)
		}
		if household.ParseOwner(member).IsSelf() {
			return nil, fmt.Errorf("invalid split %q: the owning user keeps what is not split", part)
		}
		if pct, isPercent := strings.CutSuffix(value, "%"); isPercent {
			p, err := decimal.NewFromString(pct)
			if err != nil {
				return nil, fmt.Errorf("invalid percentage in split %q: %w", part, err)
			}
			splits = append(splits, household.NewSplitByPercent(member, household.P(p), total))
			continue
		}
		assigned, err := household.ParseMoney(value, total.Currency())
		if err != nil {
			return nil, fmt.Errorf("invalid amount in split %q: %w", part, err)
		}
		splits = append(splits, household.NewSplitByAmount(member, assigned, total))
	}
	return splits, nil
}
