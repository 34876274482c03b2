package household

import (
	"errors"
	"maps"
	"slices"

	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

// minDebitShare is the smallest share of the owning user that produces a debit item.
var minDebitShare = decimal.New(1, -2)

// Invoices holds the invoice items of each counterparty, indexed by member id.
type Invoices map[string][]InvoiceItem

// View selects a window of invoice items.
type View interface {
	Accept(tx Transaction, item InvoiceItem) bool
}

// AllItems keeps every item.
type AllItems struct{}

func (AllItems) Accept(Transaction, InvoiceItem) bool { return true }

// PeriodView keeps unpaid items of transactions dated within Month that are not
// part of a trip.
type PeriodView struct {
	Month date.Range
}

func (v PeriodView) Accept(tx Transaction, it InvoiceItem) bool {
	return !it.Paid && tx.TripID == "" && v.Month.Contains(tx.Date)
}

// TripView keeps unpaid items of one trip, whatever their date.
type TripView struct {
	TripID string
}

func (v TripView) Accept(tx Transaction, it InvoiceItem) bool {
	return !it.Paid && tx.TripID != "" && tx.TripID == v.TripID
}

// HistoryView keeps paid items.
type HistoryView struct{}

func (HistoryView) Accept(_ Transaction, it InvoiceItem) bool { return it.Paid }

// Project derives the invoice items of every counterparty from the
// transactions, keeping those accepted by view (nil means AllItems).
//
// Every member gets an entry, possibly empty. Counterparties not listed in
// members still get their items. Items are sorted by date.
//
// Any transaction breaking a ledger invariant fails the whole projection with
// the joined *DataIntegrityError of all offending transactions.
func Project(txs []Transaction, members []Member, view View) (Invoices, error) {
	if view == nil {
		view = AllItems{}
	}
	inv := make(Invoices, len(members))
	for _, m := range members {
		inv[m.ID] = []InvoiceItem{}
	}

	var errs []error
	for _, tx := range txs {
		items, err := projectTransaction(tx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, it := range items {
			if view.Accept(tx, it) {
				inv[it.MemberID] = append(inv[it.MemberID], it)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	for _, items := range inv {
		sortItems(items)
	}
	return inv, nil
}

// projectTransaction returns the invoice items of a single transaction.
func projectTransaction(tx Transaction) ([]InvoiceItem, error) {
	if !tx.IsSharedExpense() {
		return nil, nil
	}
	if err := tx.Check(); err != nil {
		return nil, err
	}

	base := InvoiceItem{
		Description: tx.Description,
		Date:        tx.Date,
		TripID:      tx.TripID,
	}
	if s := tx.Series; s != nil {
		base.SeriesID = s.SeriesID
		base.InstallmentNumber = s.Current
		base.TotalInstallments = s.Total
	}

	payer, paidByMember := tx.Payer.Member()
	if !paidByMember {
		// The owning user paid: each counterparty owes its split.
		items := make([]InvoiceItem, 0, len(tx.SharedWith))
		for _, s := range tx.SharedWith {
			it := base
			it.ID = itemID(tx.ID, Credit, s.MemberID)
			it.Source = SplitSource{TxID: tx.ID, MemberID: s.MemberID}
			it.MemberID = s.MemberID
			it.Amount = s.Amount.In(tx.Currency())
			it.Paid = s.Settled
			items = append(items, it)
		}
		return items, nil
	}

	// A counterparty paid: the owning user owes what was not assigned to others.
	myShare := tx.Amount.Sub(tx.SplitTotal())
	if myShare.IsNegative() {
		// Check tolerates SplitTolerance of excess, a debit never does.
		return nil, integrityErrorf(tx.ID, "splits total %s exceeds amount %s paid by %s", tx.SplitTotal(), tx.Amount, payer)
	}
	if !myShare.Decimal().GreaterThan(minDebitShare) {
		return nil, nil
	}
	it := base
	it.ID = itemID(tx.ID, Debit, payer)
	it.Source = TransactionSource{TxID: tx.ID}
	it.MemberID = payer
	it.Amount = myShare
	it.Paid = tx.Settled
	return []InvoiceItem{it}, nil
}

// Items returns all items of all members, sorted by date.
func (inv Invoices) Items() []InvoiceItem {
	var all []InvoiceItem
	for _, id := range slices.Sorted(maps.Keys(inv)) {
		all = append(all, inv[id]...)
	}
	sortItems(all)
	return all
}

// MemberIDs returns the counterparties in inv, sorted.
func (inv Invoices) MemberIDs() []string {
	return slices.Sorted(maps.Keys(inv))
}

// Filter returns the items of inv accepted by view. The transactions are
// needed again because views look at transaction fields items do not carry.
func (inv Invoices) Filter(txs []Transaction, view View) Invoices {
	byID := make(map[string]Transaction, len(txs))
	for _, tx := range txs {
		byID[tx.ID] = tx
	}
	out := make(Invoices, len(inv))
	for member, items := range inv {
		kept := []InvoiceItem{}
		for _, it := range items {
			if view.Accept(byID[it.Source.TransactionID()], it) {
				kept = append(kept, it)
			}
		}
		out[member] = kept
	}
	return out
}
