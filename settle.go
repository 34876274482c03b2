package household

import (
	"fmt"
	"slices"
	"time"

	"github.com/etnz/household/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettleDirection tells which way the money moved.
type SettleDirection int

const (
	// Received means the counterparty paid the owning user.
	Received SettleDirection = iota
	// Paid means the owning user paid the counterparty.
	Paid
)

func (d SettleDirection) String() string {
	if d == Paid {
		return "paid"
	}
	return "received"
}

// settles returns the kind of items a payment in direction d pays off.
func (d SettleDirection) settles() ItemKind {
	if d == Paid {
		return Debit
	}
	return Credit
}

// ParseSettleDirection parses "received" or "paid".
func ParseSettleDirection(s string) (SettleDirection, error) {
	switch s {
	case "received", "receive", "in":
		return Received, nil
	case "paid", "pay", "out":
		return Paid, nil
	default:
		return Received, fmt.Errorf("unknown settlement direction %q", s)
	}
}

// Converter converts an amount into the target currency of a Conversion.
type Converter func(amount Money) (Money, error)

// Conversion is an explicit, user supplied, currency conversion.
type Conversion struct {
	Target  string
	Convert Converter
}

// Rate returns a Conversion into target at a fixed rate (target units per unit
// of the paid currency).
func Rate(target string, rate decimal.Decimal) *Conversion {
	return &Conversion{
		Target: target,
		Convert: func(amount Money) (Money, error) {
			if !rate.IsPositive() {
				return Money{}, fmt.Errorf("conversion rate must be positive, got %s", rate)
			}
			return M(amount.value.Mul(rate), target).Round2(), nil
		},
	}
}

// SettleRequest describes a payment between the owning user and a counterparty.
type SettleRequest struct {
	MemberID    string
	Currency    string // currency of the items to settle.
	Amount      Money  // amount that actually moved, in its own currency.
	Date        date.Date
	AccountID   string
	Direction   SettleDirection
	Description string
	// Conversion is required when Amount is not in Currency.
	Conversion *Conversion
	// Now stamps settled items, time.Now() when zero.
	Now time.Time
	// ID of the settlement transaction, a random UUID when empty.
	ID string
}

// Settlement is the outcome of Settle. Nothing is applied: Batch must be
// committed, atomically, by the caller.
type Settlement struct {
	Transaction Transaction   // the money movement.
	Covered     []InvoiceItem // items settled, oldest first.
	Remaining   Money         // part of the amount not matched against items, in the request currency.
	Batch       Batch         // creation of Transaction, then one settle mutation per covered item.
	// Warning is an *UnmatchedPaymentWarning when nothing was covered.
	Warning error
}

// Settle matches a payment against the unpaid items of a counterparty, oldest
// first, and returns the mutations that record it. A received payment only
// settles credits, a paid one only debits.
//
// An item is covered in full or not at all: it is covered when the remaining
// amount reaches its value minus SettlementTolerance. The walk stops once the
// remaining amount is within the tolerance.
//
// A payment in another currency than req.Currency is a *DataIntegrityError
// unless req.Conversion targets req.Currency. A zero or negative amount is an
// *InvalidSelectionError.
func Settle(req SettleRequest, candidates []InvoiceItem) (Settlement, error) {
	if req.MemberID == "" {
		return Settlement{}, selectionErrorf(nil, "settlement without counterparty")
	}
	if !req.Amount.IsPositive() {
		return Settlement{}, selectionErrorf(nil, "settlement amount must be positive, got %s", req.Amount)
	}
	if req.Date.IsZero() {
		return Settlement{}, selectionErrorf(nil, "settlement date is missing")
	}
	if err := ValidateCurrency(req.Currency); err != nil {
		return Settlement{}, integrityErrorf("", "settlement currency: %v", err)
	}

	matched := req.Amount.In(req.Currency)
	if paidIn := req.Amount.Currency(); paidIn != "" && paidIn != req.Currency {
		if req.Conversion == nil || req.Conversion.Target != req.Currency {
			return Settlement{}, integrityErrorf("", "payment in %s cannot settle %s items without a conversion", paidIn, req.Currency)
		}
		converted, err := req.Conversion.Convert(req.Amount)
		if err != nil {
			return Settlement{}, fmt.Errorf("cannot convert %s to %s: %w", req.Amount, req.Currency, err)
		}
		if converted.Currency() != req.Currency {
			return Settlement{}, integrityErrorf("", "conversion returned %s, want %s", converted.Currency(), req.Currency)
		}
		matched = converted.Round2()
	}

	kind := req.Direction.settles()
	open := slices.DeleteFunc(slices.Clone(candidates), func(it InvoiceItem) bool {
		return it.MemberID != req.MemberID || it.Currency() != req.Currency || it.Paid || it.Kind() != kind
	})
	sortItems(open)

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	var covered []InvoiceItem
	remaining := matched
	for _, it := range open {
		if remaining.Decimal().LessThanOrEqual(SettlementTolerance) {
			break
		}
		if remaining.Decimal().GreaterThanOrEqual(it.Amount.Decimal().Sub(SettlementTolerance)) {
			covered = append(covered, it)
			remaining = remaining.Sub(it.Amount)
		}
	}

	tx := settlementTransaction(req, now)
	s := Settlement{
		Transaction: tx,
		Covered:     covered,
		Remaining:   remaining,
		Batch:       make(Batch, 0, len(covered)+1),
	}
	s.Batch = append(s.Batch, CreateTransaction{Tx: tx})
	for _, it := range covered {
		s.Batch = append(s.Batch, settleMutation(it, now))
	}
	if len(covered) == 0 {
		s.Warning = &UnmatchedPaymentWarning{MemberID: req.MemberID, Amount: req.Amount}
	}
	return s, nil
}

// settlementTransaction is the money movement of a settlement. It is settled
// from birth and never shared: it is not a new debt.
func settlementTransaction(req SettleRequest, now time.Time) Transaction {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	typ := Income
	if req.Direction == Paid {
		typ = Expense
	}
	desc := req.Description
	if desc == "" {
		desc = fmt.Sprintf("Settlement with %s", req.MemberID)
	}
	amount := req.Amount
	if amount.Currency() == "" {
		amount = amount.In(req.Currency)
	}
	return Transaction{
		ID:          id,
		Description: desc,
		Category:    "settlement",
		AccountID:   req.AccountID,
		Type:        typ,
		Date:        req.Date,
		Amount:      amount,
		Payer:       Self(),
		Shared:      false,
		Settled:     true,
		SettledAt:   now,
	}
}
