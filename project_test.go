package household

import (
	"errors"
	"testing"

	"github.com/etnz/household/date"
	"github.com/google/go-cmp/cmp"
)

// cmpMoney compares Money by value and currency.
var cmpMoney = cmp.Comparer(func(a, b Money) bool { return a.Equal(b) })

func TestProject_CreditScenario(t *testing.T) {
	txs := []Transaction{expense("t1", "2024-01-05", 300, split("B", 100))}

	inv, err := Project(txs, testMembers, nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	items := inv["B"]
	if len(items) != 1 {
		t.Fatalf("Project() gives %d items for B, want 1", len(items))
	}
	it := items[0]
	if it.Kind() != Credit || !it.Amount.Equal(BRL(100)) || it.Paid || it.MemberID != "B" {
		t.Errorf("Project() item = %+v, want an unpaid credit of 100 BRL for B", it)
	}
	if src, ok := it.Source.(SplitSource); !ok || src.TxID != "t1" || src.MemberID != "B" {
		t.Errorf("Project() item source = %#v, want the split of B in t1", it.Source)
	}
	if got := inv["C"]; got == nil || len(got) != 0 {
		t.Errorf("Project() items for C = %v, want an empty list", got)
	}

	totals := Totals(items)
	b := totals["BRL"]
	if !b.Credits.Equal(BRL(100)) || !b.Debits.Equal(BRL(0)) || !b.Net.Equal(BRL(100)) {
		t.Errorf("Totals() = %+v, want credits 100, debits 0, net 100", b)
	}
}

func TestProject_DebitBranch(t *testing.T) {
	testCases := []struct {
		name      string
		tx        Transaction
		wantItems int
		wantShare Money
	}{
		{
			name:      "member paid, no split",
			tx:        paidBy("B", expense("t1", "2024-01-05", 80)),
			wantItems: 1,
			wantShare: BRL(80),
		},
		{
			name:      "member paid, another member has a split",
			tx:        paidBy("B", expense("t1", "2024-01-05", 300, split("C", 100))),
			wantItems: 1,
			wantShare: BRL(200),
		},
		{
			name:      "member paid, everything assigned to others",
			tx:        paidBy("B", expense("t1", "2024-01-05", 100, split("C", 100))),
			wantItems: 0,
		},
		{
			name:      "member paid, my share is below a cent",
			tx:        paidBy("B", expense("t1", "2024-01-05", 100, split("C", 99.995))),
			wantItems: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := Project([]Transaction{tc.tx}, testMembers, nil)
			if err != nil {
				t.Fatalf("Project() error = %v", err)
			}
			items := inv["B"]
			if len(items) != tc.wantItems {
				t.Fatalf("Project() gives %d items for B, want %d", len(items), tc.wantItems)
			}
			if tc.wantItems == 0 {
				return
			}
			if items[0].Kind() != Debit || !items[0].Amount.Equal(tc.wantShare) {
				t.Errorf("Project() item = %v %v, want debit %v", items[0].Kind(), items[0].Amount.Decimal(), tc.wantShare.Decimal())
			}
			if _, ok := items[0].Source.(TransactionSource); !ok {
				t.Errorf("Project() debit source = %T, want TransactionSource", items[0].Source)
			}
			// a debit never creates a credit for the other splits.
			if len(inv["C"]) != 0 {
				t.Errorf("Project() gives %d items for C, want 0", len(inv["C"]))
			}
		})
	}
}

func TestProject_Skips(t *testing.T) {
	deleted := expense("deleted", "2024-01-05", 100, split("B", 50))
	deleted.Deleted = true
	income := expense("income", "2024-01-05", 100, split("B", 50))
	income.Type = Income
	private := expense("private", "2024-01-05", 100)

	inv, err := Project([]Transaction{deleted, income, private}, testMembers, nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if n := len(inv.Items()); n != 0 {
		t.Errorf("Project() gives %d items, want 0", n)
	}
}

func TestProject_SplitBound(t *testing.T) {
	testCases := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{name: "within amount", tx: expense("t", "2024-01-05", 100, split("B", 50), split("C", 50))},
		{name: "within tolerance", tx: expense("t", "2024-01-05", 100, split("B", 50), split("C", 50.01))},
		{name: "above tolerance", tx: expense("t", "2024-01-05", 100, split("B", 50), split("C", 50.02)), wantErr: true},
		{name: "debit with excess", tx: paidBy("B", expense("t", "2024-01-05", 100, split("C", 100.01))), wantErr: true},
		{name: "split in another currency", tx: expense("t", "2024-01-05", 100, Split{MemberID: "B", Amount: EUR(10)}), wantErr: true},
		{name: "negative split", tx: expense("t", "2024-01-05", 100, split("B", -10)), wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := Project([]Transaction{tc.tx}, testMembers, nil)
			if !tc.wantErr {
				if err != nil {
					t.Errorf("Project() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrDataIntegrity) {
				t.Errorf("Project() error = %v, want a data integrity error", err)
			}
			var die *DataIntegrityError
			if !errors.As(err, &die) || die.TxID != "t" {
				t.Errorf("Project() error = %#v, want a *DataIntegrityError on %q", err, "t")
			}
			if inv != nil {
				t.Errorf("Project() = %v, want no partial result", inv)
			}
		})
	}
}

func TestProject_Idempotent(t *testing.T) {
	txs := []Transaction{
		expense("t1", "2024-01-05", 300, split("B", 100), split("C", 100)),
		paidBy("B", expense("t2", "2024-01-10", 90, split("C", 30))),
		expense("t3", "2024-02-01", 50, split("C", 25)),
	}
	first, err := Project(txs, testMembers, nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	second, err := Project(txs, testMembers, nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if diff := cmp.Diff(first, second, cmpMoney); diff != "" {
		t.Errorf("Project() is not idempotent (-first +second):\n%s", diff)
	}

	seen := make(map[string]bool)
	for _, it := range first.Items() {
		if seen[it.ID] {
			t.Errorf("item id %q is not unique", it.ID)
		}
		seen[it.ID] = true
	}
	if first["B"][0].ID != itemID("t1", Credit, "B") {
		t.Errorf("item id is not derived from its source")
	}
}

func TestItemID_Unambiguous(t *testing.T) {
	testCases := []struct {
		txA, memberA string
		txB, memberB string
	}{
		{txA: "a", memberA: "B/credit/C", txB: "a/credit/B", memberB: "C"},
		{txA: "ab", memberA: "c", txB: "a", memberB: "bc"},
		{txA: "a1:", memberA: "B", txB: "a", memberB: "1:B"},
	}
	for _, tc := range testCases {
		if itemID(tc.txA, Credit, tc.memberA) == itemID(tc.txB, Credit, tc.memberB) {
			t.Errorf("itemID(%q, %q) collides with itemID(%q, %q)", tc.txA, tc.memberA, tc.txB, tc.memberB)
		}
	}
	if itemID("a", Credit, "B") == itemID("a", Debit, "B") {
		t.Error("itemID does not depend on the kind")
	}
}

func TestProject_Views(t *testing.T) {
	jan := expense("jan", "2024-01-05", 100, split("B", 50))
	feb := expense("feb", "2024-02-05", 100, split("B", 50))
	trip := expense("trip", "2024-01-20", 100, split("B", 50))
	trip.TripID = "lisbon"
	paid := expense("paid", "2024-01-07", 100, split("B", 50))
	paid.SharedWith[0].Settled = true
	txs := []Transaction{jan, feb, trip, paid}

	january := date.Month(date.MustParse("2024-01-01"))
	views := map[string]View{
		"period":  PeriodView{Month: january},
		"trip":    TripView{TripID: "lisbon"},
		"history": HistoryView{},
	}
	want := map[string][]string{
		"period":  {"jan"},
		"trip":    {"trip"},
		"history": {"paid"},
	}

	seen := make(map[string]string)
	for name, view := range views {
		inv, err := Project(txs, testMembers, view)
		if err != nil {
			t.Fatalf("Project(%s) error = %v", name, err)
		}
		var got []string
		for _, it := range inv["B"] {
			got = append(got, it.Source.TransactionID())
			if other, dup := seen[it.ID]; dup {
				t.Errorf("item %s is in both %s and %s views", it.Source.TransactionID(), other, name)
			}
			seen[it.ID] = name
		}
		if diff := cmp.Diff(want[name], got); diff != "" {
			t.Errorf("Project(%s) mismatch (-want +got):\n%s", name, diff)
		}
	}

	all, err := Project(txs, testMembers, nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	filtered := all.Filter(txs, PeriodView{Month: january})
	if len(filtered["B"]) != 1 || filtered["B"][0].Source.TransactionID() != "jan" {
		t.Errorf("Filter(period) = %v, want only jan", filtered["B"])
	}
}

func TestProject_SortedByDate(t *testing.T) {
	txs := []Transaction{
		expense("late", "2024-03-01", 100, split("B", 10)),
		expense("early", "2024-01-01", 100, split("B", 10)),
	}
	inv, err := Project(txs, nil, nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if got := inv["B"]; len(got) != 2 || got[0].Source.TransactionID() != "early" {
		t.Errorf("Project() items = %v, want early first", got)
	}
}
