package household

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CommandType identifies the kind of a ledger line.
type CommandType string

const (
	CmdMember   CommandType = "member"
	CmdExpense  CommandType = CommandType(Expense)
	CmdIncome   CommandType = CommandType(Income)
	CmdTransfer CommandType = CommandType(Transfer)
)

// jsplit is the wire form of a Split.
type jsplit struct {
	MemberID   string          `json:"member" validate:"required,ne=me"`
	Percentage Percent         `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	Settled    bool            `json:"settled,omitempty"`
	SettledAt  *time.Time      `json:"settledAt,omitempty"`
}

// jseries is the wire form of an Installment.
type jseries struct {
	ID             string          `json:"id" validate:"required"`
	Installment    int             `json:"installment" validate:"gte=1,ltefield=Of"`
	Of             int             `json:"of" validate:"gte=1"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
}

// jtransaction is the wire form of a Transaction.
type jtransaction struct {
	Command         CommandType     `json:"command" validate:"required,oneof=expense income transfer"`
	ID              string          `json:"id" validate:"required"`
	Date            date.Date       `json:"date"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	Account         string          `json:"account,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency,omitempty" validate:"omitempty,iso4217"`
	Payer           string          `json:"payer,omitempty"`
	Shared          bool            `json:"shared,omitempty"`
	SharedWith      []jsplit        `json:"sharedWith,omitempty" validate:"dive"`
	Trip            string          `json:"trip,omitempty"`
	Series          *jseries        `json:"series,omitempty"`
	AnticipatedFrom *date.Date      `json:"anticipatedFrom,omitempty"`
	Settled         bool            `json:"settled,omitempty"`
	SettledAt       *time.Time      `json:"settledAt,omitempty"`
	Deleted         bool            `json:"deleted,omitempty"`
}

// transaction converts the wire form, defaulting the currency.
func (j jtransaction) transaction(defaultCurrency string) Transaction {
	currency := j.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	tx := Transaction{
		ID:          j.ID,
		Description: j.Description,
		Category:    j.Category,
		AccountID:   j.Account,
		Type:        TxType(j.Command),
		Date:        j.Date,
		Amount:      M(j.Amount, currency),
		Payer:       ParseOwner(j.Payer),
		Shared:      j.Shared,
		TripID:      j.Trip,
		Settled:     j.Settled,
		Deleted:     j.Deleted,
	}
	if j.SettledAt != nil {
		tx.SettledAt = *j.SettledAt
	}
	if j.AnticipatedFrom != nil {
		tx.AnticipatedFrom = *j.AnticipatedFrom
	}
	for _, s := range j.SharedWith {
		split := Split{
			MemberID:   s.MemberID,
			Percentage: s.Percentage,
			Amount:     M(s.Amount, currency),
			Settled:    s.Settled,
		}
		if s.SettledAt != nil {
			split.SettledAt = *s.SettledAt
		}
		tx.SharedWith = append(tx.SharedWith, split)
	}
	if s := j.Series; s != nil {
		tx.Series = &Installment{
			SeriesID:       s.ID,
			Current:        s.Installment,
			Total:          s.Of,
			OriginalAmount: M(s.OriginalAmount, currency),
		}
	}
	return tx
}

// MarshalJSON writes a transaction as a ledger line.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", CommandType(t.Type))
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Optional("description", t.Description)
	w.Optional("category", t.Category)
	w.Optional("account", t.AccountID)
	w.Append("amount", t.Amount)
	w.Append("currency", t.Currency())
	if !t.Payer.IsSelf() {
		w.Append("payer", t.Payer)
	}
	w.Optional("shared", t.Shared)
	if len(t.SharedWith) > 0 {
		splits := make([]json.RawMessage, 0, len(t.SharedWith))
		for _, s := range t.SharedWith {
			var sw jsonObjectWriter
			sw.Append("member", s.MemberID)
			sw.Append("percentage", s.Percentage)
			sw.Append("amount", s.Amount)
			sw.Optional("settled", s.Settled)
			sw.Time("settledAt", s.SettledAt)
			raw, err := sw.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("split of %q: %w", s.MemberID, err)
			}
			splits = append(splits, raw)
		}
		w.Append("sharedWith", splits)
	}
	w.Optional("trip", t.TripID)
	if s := t.Series; s != nil {
		w.Object("series", func(sw *jsonObjectWriter) {
			sw.Append("id", s.SeriesID)
			sw.Append("installment", s.Current)
			sw.Append("of", s.Total)
			sw.Append("originalAmount", s.OriginalAmount)
		})
	}
	if !t.AnticipatedFrom.IsZero() {
		w.Append("anticipatedFrom", t.AnticipatedFrom)
	}
	w.Optional("settled", t.Settled)
	w.Time("settledAt", t.SettledAt)
	w.Optional("deleted", t.Deleted)
	return w.MarshalJSON()
}

// memberLine is the wire form of a Member.
type memberLine struct {
	Command CommandType `json:"command"`
	Member
}

// DecodeLedger decodes a JSONL stream of members and transactions.
// Transactions without currency are in defaultCurrency. Every line is
// validated; the first invalid line fails the decoding.
func DecodeLedger(r io.Reader, defaultCurrency string) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0

	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command in %q: %w", line, string(lineBytes), err)
		}

		switch identifier.Command {
		case CmdMember:
			var m memberLine
			if err := json.Unmarshal(lineBytes, &m); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := m.Member.Validate(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := ledger.AddMember(m.Member); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		case CmdExpense, CmdIncome, CmdTransfer:
			var j jtransaction
			if err := json.Unmarshal(lineBytes, &j); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := validate.Struct(j); err != nil {
				return nil, fmt.Errorf("line %d: invalid transaction %q: %w", line, j.ID, validationError(err))
			}
			if j.Date.IsZero() {
				return nil, fmt.Errorf("line %d: transaction %q has no date", line, j.ID)
			}
			if err := ledger.add(j.transaction(defaultCurrency)); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", line, identifier.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}

// EncodeLedger writes members then transactions, one JSON object per line.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, m := range ledger.Members() {
		if err := enc.Encode(memberLine{Command: CmdMember, Member: m}); err != nil {
			return fmt.Errorf("could not encode member %q: %w", m.ID, err)
		}
	}
	for _, tx := range ledger.Transactions() {
		if err := enc.Encode(tx); err != nil {
			return fmt.Errorf("could not encode transaction %q: %w", tx.ID, err)
		}
	}
	return bw.Flush()
}

// EncodeTransaction writes a single transaction as a ledger line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	return json.NewEncoder(w).Encode(tx)
}
