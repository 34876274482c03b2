package household

import (
	"github.com/etnz/household/date"
)

// BRL is a helper for test to create domestic money from const
func BRL(v float64) Money { return M(v, "BRL") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

var testMembers = []Member{
	{ID: "B", Name: "Bea"},
	{ID: "C", Name: "Caio"},
}

// expense creates an expense paid by the owning user, in BRL.
func expense(id, day string, amount float64, splits ...Split) Transaction {
	return Transaction{
		ID:          id,
		Description: "expense " + id,
		Type:        Expense,
		Date:        date.MustParse(day),
		Amount:      BRL(amount),
		Payer:       Self(),
		Shared:      len(splits) > 0,
		SharedWith:  splits,
	}
}

// paidBy changes the payer of tx.
func paidBy(member string, tx Transaction) Transaction {
	tx.Payer = MemberOwner(member)
	tx.Shared = true
	return tx
}

// split creates an unsettled split of a fixed amount.
func split(member string, amount float64) Split {
	return Split{MemberID: member, Amount: NO(amount)}
}

// installments creates a series of n monthly installments of amount each,
// starting on first, with one split per member of share each.
func installments(seriesID string, first string, n int, amount float64, shares map[string]float64) []Transaction {
	start := date.MustParse(first)
	txs := make([]Transaction, n)
	for i := range n {
		var splits []Split
		for _, m := range []string{"B", "C"} {
			if share, ok := shares[m]; ok {
				splits = append(splits, split(m, share))
			}
		}
		tx := expense(seriesID+"-"+string(rune('a'+i)), start.AddMonth(i).String(), amount, splits...)
		tx.Series = &Installment{SeriesID: seriesID, Current: i + 1, Total: n, OriginalAmount: BRL(amount * float64(n))}
		txs[i] = tx
	}
	return txs
}
