package household

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/household/date"
	"github.com/google/uuid"
)

// ItemKind tells the direction of an invoice item.
type ItemKind int

const (
	// Credit items are owed to the owning user by the counterparty.
	Credit ItemKind = iota
	// Debit items are owed by the owning user to the counterparty.
	Debit
)

func (k ItemKind) String() string {
	switch k {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return "unknown"
	}
}

// ItemSource is where an invoice item comes from. It is either a SplitSource
// (a credit, settled on the split) or a TransactionSource (a debit, settled on
// the transaction). No other implementation exists.
type ItemSource interface {
	Kind() ItemKind
	TransactionID() string
	isItemSource()
}

// SplitSource is the split of member MemberID in transaction TxID.
type SplitSource struct {
	TxID     string
	MemberID string
}

func (SplitSource) Kind() ItemKind            { return Credit }
func (s SplitSource) TransactionID() string { return s.TxID }
func (SplitSource) isItemSource()             {}

// TransactionSource is the owning user's share of transaction TxID paid by someone else.
type TransactionSource struct {
	TxID string
}

func (TransactionSource) Kind() ItemKind            { return Debit }
func (s TransactionSource) TransactionID() string { return s.TxID }
func (TransactionSource) isItemSource()             {}

// InvoiceItem is one ledger line between the owning user and one counterparty.
//
// Items are derived from transactions on every projection and never persisted.
type InvoiceItem struct {
	ID          string
	Source      ItemSource
	MemberID    string
	Description string
	Date        date.Date
	Amount      Money // always positive, in the transaction currency.
	Paid        bool
	TripID      string

	SeriesID          string
	InstallmentNumber int
	TotalInstallments int
}

// Kind returns Credit or Debit.
func (it InvoiceItem) Kind() ItemKind { return it.Source.Kind() }

// Currency returns the item currency.
func (it InvoiceItem) Currency() string { return it.Amount.Currency() }

// itemNamespace scopes invoice item ids.
var itemNamespace = uuid.MustParse("6f1c5a2e-2f43-4d8e-9a57-0b8f8e3c4d21")

// itemID derives a stable id from the source transaction, the branch and the
// counterparty, so that two projections of the same ledger agree.
func itemID(txID string, kind ItemKind, memberID string) string {
	name := fmt.Sprintf("%d:%s%s%d:%s", len(txID), txID, kind, len(memberID), memberID)
	return uuid.NewSHA1(itemNamespace, []byte(name)).String()
}

// sortItems orders items by date, then by id.
func sortItems(items []InvoiceItem) {
	slices.SortStableFunc(items, func(a, b InvoiceItem) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
