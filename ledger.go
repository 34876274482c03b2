package household

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/household/date"
)

// Ledger is a snapshot of the household: its members and all its transactions.
//
// A Ledger is what the persistence layer reads and writes. The operations of
// this package work on its content and never modify it; Apply returns a new
// Ledger.
type Ledger struct {
	members      []Member
	memberIndex  Members
	transactions []Transaction
	txIndex      map[string]int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		memberIndex: make(Members),
		txIndex:     make(map[string]int),
	}
}

// NewLedgerFrom builds a ledger from members and transactions, validating all of them.
func NewLedgerFrom(members []Member, txs []Transaction) (*Ledger, error) {
	l := NewLedger()
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if err := l.AddMember(m); err != nil {
			return nil, err
		}
	}
	for _, tx := range txs {
		if err := l.add(tx); err != nil {
			return nil, err
		}
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// AddMember declares a new member.
func (l *Ledger) AddMember(m Member) error {
	if _, exists := l.memberIndex[m.ID]; exists {
		return fmt.Errorf("member %q is declared twice", m.ID)
	}
	l.members = append(l.members, m)
	l.memberIndex[m.ID] = m
	return nil
}

// add appends a transaction without checking it beyond id uniqueness.
func (l *Ledger) add(tx Transaction) error {
	if _, exists := l.txIndex[tx.ID]; exists {
		return fmt.Errorf("transaction %q is declared twice", tx.ID)
	}
	l.txIndex[tx.ID] = len(l.transactions)
	l.transactions = append(l.transactions, tx)
	return nil
}

// Members returns the declared members in declaration order.
func (l *Ledger) Members() []Member { return slices.Clone(l.members) }

// MemberIndex returns a copy of the members indexed by id.
func (l *Ledger) MemberIndex() Members { return maps.Clone(l.memberIndex) }

// Transactions returns a copy of all transactions, deleted ones included.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	for i, tx := range l.transactions {
		out[i] = tx.Clone()
	}
	return out
}

// Transaction returns the transaction with the given id.
func (l *Ledger) Transaction(id string) (Transaction, bool) {
	i, ok := l.txIndex[id]
	if !ok {
		return Transaction{}, false
	}
	return l.transactions[i].Clone(), true
}

// Between iterates over live transactions dated within r.
func (l *Ledger) Between(r date.Range) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if tx.Deleted || !r.Contains(tx.Date) {
				continue
			}
			if !yield(tx.Clone()) {
				return
			}
		}
	}
}

// Validate checks every live transaction against the members and the ledger invariants.
func (l *Ledger) Validate() error {
	var errs []error
	for _, tx := range l.transactions {
		if tx.Deleted {
			continue
		}
		if err := Validate(l.memberIndex, tx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Invoices projects the ledger through view.
func (l *Ledger) Invoices(view View) (Invoices, error) {
	return Project(l.transactions, l.members, view)
}

// Series returns the installments of seriesID.
func (l *Ledger) Series(seriesID string) ([]Transaction, error) {
	return Series(l.transactions, seriesID)
}

// Clone returns an independent copy of l.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	for _, m := range l.members {
		c.AddMember(m)
	}
	for _, tx := range l.transactions {
		c.add(tx.Clone())
	}
	return c
}

// Apply returns a new ledger with batch applied. The receiver is unchanged,
// and no partial application is ever visible.
//
// Every transaction the batch touches must still be valid afterwards; the
// others are not checked again.
func (l *Ledger) Apply(batch Batch) (*Ledger, error) {
	txs, err := Apply(l.transactions, batch)
	if err != nil {
		return nil, err
	}
	next := NewLedger()
	for _, m := range l.members {
		next.AddMember(m)
	}
	for _, tx := range txs {
		if err := next.add(tx); err != nil {
			return nil, err
		}
	}

	var errs []error
	touched := make(map[string]bool, len(batch))
	for _, m := range batch {
		id := m.TransactionID()
		if touched[id] {
			continue
		}
		touched[id] = true
		tx, _ := next.Transaction(id)
		if tx.Deleted {
			continue
		}
		if err := Validate(next.memberIndex, tx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return next, nil
}
