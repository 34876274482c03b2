package household

import (
	"fmt"
	"time"
)

// Mutation is a change requested on the ledger. Operations of this package
// never change transactions themselves, they return mutations for the
// persistence layer to commit.
//
// The implementations are CreateTransaction, UpdateTransaction, SettleSplit
// and SettleTransaction.
type Mutation interface {
	// TransactionID is the id of the transaction the mutation applies to.
	TransactionID() string
	isMutation()
}

// CreateTransaction adds a new transaction.
type CreateTransaction struct {
	Tx Transaction
}

// UpdateTransaction replaces an existing transaction with the same id.
type UpdateTransaction struct {
	Tx Transaction
}

// SettleSplit marks the split of MemberID in transaction TxID as settled.
type SettleSplit struct {
	TxID      string
	MemberID  string
	SettledAt time.Time
}

// SettleTransaction marks transaction TxID as settled.
type SettleTransaction struct {
	TxID      string
	SettledAt time.Time
}

func (m CreateTransaction) TransactionID() string { return m.Tx.ID }
func (m UpdateTransaction) TransactionID() string { return m.Tx.ID }
func (m SettleSplit) TransactionID() string       { return m.TxID }
func (m SettleTransaction) TransactionID() string { return m.TxID }

func (CreateTransaction) isMutation() {}
func (UpdateTransaction) isMutation() {}
func (SettleSplit) isMutation()       {}
func (SettleTransaction) isMutation() {}

// Batch is the list of mutations of one logical operation. It must be
// committed atomically.
type Batch []Mutation

// settleMutation routes a covered item to the mutation that settles its source.
func settleMutation(it InvoiceItem, at time.Time) Mutation {
	switch src := it.Source.(type) {
	case SplitSource:
		return SettleSplit{TxID: src.TxID, MemberID: src.MemberID, SettledAt: at}
	case TransactionSource:
		return SettleTransaction{TxID: src.TxID, SettledAt: at}
	default:
		panic(fmt.Sprintf("unknown item source %T", it.Source))
	}
}

// UpdateBatch wraps updated transactions into a batch of UpdateTransaction.
func UpdateBatch(txs []Transaction) Batch {
	b := make(Batch, 0, len(txs))
	for _, tx := range txs {
		b = append(b, UpdateTransaction{Tx: tx})
	}
	return b
}

// Apply applies batch to txs and returns the new list of transactions.
//
// Apply is all or nothing: if any mutation cannot be applied, the error is
// returned and txs is left untouched. The order of existing transactions is
// preserved, created ones are appended.
func Apply(txs []Transaction, batch Batch) ([]Transaction, error) {
	out := make([]Transaction, len(txs))
	index := make(map[string]int, len(txs))
	for i, tx := range txs {
		out[i] = tx.Clone()
		index[tx.ID] = i
	}

	for _, m := range batch {
		switch v := m.(type) {
		case CreateTransaction:
			if v.Tx.ID == "" {
				return txs, fmt.Errorf("cannot create a transaction without id")
			}
			if _, exists := index[v.Tx.ID]; exists {
				return txs, fmt.Errorf("cannot create transaction %q: it already exists", v.Tx.ID)
			}
			index[v.Tx.ID] = len(out)
			out = append(out, v.Tx.Clone())
		case UpdateTransaction:
			i, ok := index[v.Tx.ID]
			if !ok {
				return txs, fmt.Errorf("cannot update transaction %q: not found", v.Tx.ID)
			}
			out[i] = v.Tx.Clone()
		case SettleSplit:
			i, ok := index[v.TxID]
			if !ok {
				return txs, fmt.Errorf("cannot settle split of %q in transaction %q: transaction not found", v.MemberID, v.TxID)
			}
			j := -1
			for k, s := range out[i].SharedWith {
				if s.MemberID == v.MemberID {
					j = k
				}
			}
			if j < 0 {
				return txs, fmt.Errorf("cannot settle split of %q in transaction %q: no such split", v.MemberID, v.TxID)
			}
			out[i].SharedWith[j].Settled = true
			out[i].SharedWith[j].SettledAt = v.SettledAt
		case SettleTransaction:
			i, ok := index[v.TxID]
			if !ok {
				return txs, fmt.Errorf("cannot settle transaction %q: not found", v.TxID)
			}
			out[i].Settled = true
			out[i].SettledAt = v.SettledAt
		default:
			return txs, fmt.Errorf("unsupported mutation %T", m)
		}
	}
	return out, nil
}
