package household

import (
	"fmt"
	"slices"
	"time"

	"github.com/etnz/household/date"
)

// TxType is the kind of money movement a transaction records.
type TxType string

const (
	Expense  TxType = "expense"
	Income   TxType = "income"
	Transfer TxType = "transfer"
)

// ParseTxType parses a transaction type.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(s); t {
	case Expense, Income, Transfer:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Split is the portion of a shared transaction assigned to one counterparty.
type Split struct {
	MemberID   string
	Percentage Percent // informational, the Amount is authoritative.
	Amount     Money
	Settled    bool
	SettledAt  time.Time
}

// Installment places a transaction within a series of installments of one purchase.
type Installment struct {
	SeriesID       string
	Current        int   // 1-based position in the series.
	Total          int   // number of installments in the series.
	OriginalAmount Money // total value of the whole purchase.
}

// Transaction is a financial event of the owning user's household.
//
// Transactions are values: operations of this package never modify their
// input, they return updated copies or mutation intents.
type Transaction struct {
	ID          string
	Description string
	Category    string
	AccountID   string
	Type        TxType
	Date        date.Date
	Amount      Money // positive, currency included.

	Payer      Owner   // who actually paid.
	Shared     bool    // participates in the shared ledger.
	SharedWith []Split // one per counterparty.
	TripID     string

	Series *Installment // nil when the transaction is not part of a series.
	// AnticipatedFrom is the scheduled date before the first anticipation.
	AnticipatedFrom date.Date

	// Settled marks the whole transaction as resolved, used when a counterparty paid.
	Settled   bool
	SettledAt time.Time
	Deleted   bool
}

// Currency returns the transaction currency.
func (t Transaction) Currency() string { return t.Amount.Currency() }

// SeriesID returns the series id or "" when t is not an installment.
func (t Transaction) SeriesID() string {
	if t.Series == nil {
		return ""
	}
	return t.Series.SeriesID
}

// SplitTotal returns the sum of the amounts assigned to counterparties.
func (t Transaction) SplitTotal() Money {
	total := M(0, t.Currency())
	for _, s := range t.SharedWith {
		total = total.Add(s.Amount.In(t.Currency()))
	}
	return total
}

// Split returns the split assigned to memberID.
func (t Transaction) Split(memberID string) (Split, bool) {
	i := slices.IndexFunc(t.SharedWith, func(s Split) bool { return s.MemberID == memberID })
	if i < 0 {
		return Split{}, false
	}
	return t.SharedWith[i], true
}

// IsSharedExpense reports whether t takes part in the shared ledger: an expense
// that is flagged shared, has splits, or was paid by somebody else.
func (t Transaction) IsSharedExpense() bool {
	if t.Deleted || t.Type != Expense {
		return false
	}
	return t.Shared || len(t.SharedWith) > 0 || !t.Payer.IsSelf()
}

// IsSettled reports whether nothing is owed on t anymore: either the
// transaction itself is settled, or it has splits and all of them are.
func (t Transaction) IsSettled() bool {
	if t.Settled {
		return true
	}
	if len(t.SharedWith) == 0 {
		return false
	}
	for _, s := range t.SharedWith {
		if !s.Settled {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of t.
func (t Transaction) Clone() Transaction {
	t.SharedWith = slices.Clone(t.SharedWith)
	if t.Series != nil {
		series := *t.Series
		t.Series = &series
	}
	return t
}

// Check verifies the ledger invariants of t:
//   - the amount is positive and in a known currency,
//   - splits are not negative, name distinct members and never sum above the
//     amount (within SplitTolerance),
//   - split percentages never sum above 100,
//   - splits carry the transaction currency.
//
// Violations are reported as a *DataIntegrityError.
func (t Transaction) Check() error {
	if err := ValidateCurrency(t.Currency()); err != nil {
		return integrityErrorf(t.ID, "%v", err)
	}
	if !t.Amount.IsPositive() {
		return integrityErrorf(t.ID, "amount must be positive, got %s", t.Amount)
	}
	seen := make(map[string]struct{}, len(t.SharedWith))
	var percent Percent
	for _, s := range t.SharedWith {
		if s.MemberID == "" {
			return integrityErrorf(t.ID, "split without member")
		}
		if _, dup := seen[s.MemberID]; dup {
			return integrityErrorf(t.ID, "member %q has two splits", s.MemberID)
		}
		seen[s.MemberID] = struct{}{}
		if c := s.Amount.Currency(); c != "" && c != t.Currency() {
			return integrityErrorf(t.ID, "split for %q is in %s, transaction is in %s", s.MemberID, c, t.Currency())
		}
		if s.Amount.IsNegative() {
			return integrityErrorf(t.ID, "split for %q is negative: %s", s.MemberID, s.Amount)
		}
		percent = percent.Add(s.Percentage)
	}
	if split := t.SplitTotal(); split.Sub(t.Amount).Decimal().GreaterThan(SplitTolerance) {
		return integrityErrorf(t.ID, "splits total %s exceeds amount %s", split, t.Amount)
	}
	if percent.Decimal().Sub(hundred).GreaterThan(SplitTolerance) {
		return integrityErrorf(t.ID, "split percentages total %s", percent)
	}
	if t.Series != nil && t.Series.OriginalAmount.Currency() != "" && t.Series.OriginalAmount.Currency() != t.Currency() {
		return integrityErrorf(t.ID, "series total is in %s, installment is in %s", t.Series.OriginalAmount.Currency(), t.Currency())
	}
	return nil
}

// NewSplitByPercent builds a split of amount for memberID, rounded to Precision.
func NewSplitByPercent(memberID string, percentage Percent, amount Money) Split {
	return Split{MemberID: memberID, Percentage: percentage, Amount: percentage.Of(amount).Round2()}
}

// NewSplitByAmount builds a split of a fixed amount, deriving its percentage of total.
func NewSplitByAmount(memberID string, assigned, total Money) Split {
	return Split{MemberID: memberID, Percentage: PercentOf(assigned, total), Amount: assigned}
}
