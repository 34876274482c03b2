package household

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTotals(t *testing.T) {
	txs := []Transaction{
		expense("t1", "2024-01-05", 300, split("B", 100)),
		paidBy("B", expense("t2", "2024-01-06", 90, split("C", 30))),
		expense("t3", "2024-01-07", 40, split("B", 20)),
	}
	txs[2].SharedWith[0].Settled = true
	eur := expense("t4", "2024-01-08", 10, split("B", 5))
	eur.Amount = EUR(10)
	txs = append(txs, eur)

	inv, err := Project(txs, testMembers, nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	got := Totals(inv["B"])
	want := map[string]Balance{
		"BRL": {Credits: BRL(100), Debits: BRL(60), Net: BRL(40)},
		"EUR": {Credits: EUR(5), Debits: EUR(0), Net: EUR(5)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Totals() mismatch (-want +got):\n%s", diff)
	}
	if d := got["BRL"].Direction(); d != ToReceive {
		t.Errorf("Direction() = %v, want %v", d, ToReceive)
	}
	if diff := cmp.Diff([]string{"BRL", "EUR"}, Currencies(got)); diff != "" {
		t.Errorf("Currencies() mismatch (-want +got):\n%s", diff)
	}

	if got := Totals(inv["C"]); len(got) != 0 {
		t.Errorf("Totals() for C = %v, want none", got)
	}
}

func TestTotals_NetIsCreditsMinusDebits(t *testing.T) {
	items := []InvoiceItem{
		{Source: SplitSource{TxID: "a", MemberID: "B"}, Amount: BRL(10.10)},
		{Source: TransactionSource{TxID: "b"}, Amount: BRL(20.25)},
		{Source: SplitSource{TxID: "c", MemberID: "B"}, Amount: BRL(0.10)},
		{Source: TransactionSource{TxID: "d"}, Amount: BRL(99), Paid: true},
	}
	b := Totals(items)["BRL"]
	if !b.Net.Equal(b.Credits.Sub(b.Debits)) {
		t.Errorf("Net = %v, want %v", b.Net, b.Credits.Sub(b.Debits))
	}
	if !b.Net.Equal(BRL(-10.05)) || b.Direction() != ToPay {
		t.Errorf("Net = %v (%v), want -10.05 to pay", b.Net.Decimal(), b.Direction())
	}
}
