package household

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/household/date"
)

// canonicalLedger is written the way EncodeLedger writes it.
const canonicalLedger = `{"command":"member","id":"B","name":"Bea","email":"bea@example.com"}
{"command":"member","id":"C","name":"Caio"}
{"command":"expense","id":"t1","date":"2024-01-05","description":"Dinner","category":"food","amount":300,"currency":"BRL","shared":true,"sharedWith":[{"member":"B","percentage":33.33,"amount":100}]}
{"command":"expense","id":"t2","date":"2024-01-06","amount":90,"currency":"BRL","payer":"B","shared":true,"sharedWith":[{"member":"C","percentage":33.33,"amount":30,"settled":true,"settledAt":"2024-03-01T12:00:00Z"}],"trip":"lisbon"}
{"command":"expense","id":"s-1","date":"2024-02-15","amount":100,"currency":"EUR","series":{"id":"sofa","installment":2,"of":3,"originalAmount":300},"anticipatedFrom":"2024-03-15"}
{"command":"income","id":"pay","date":"2024-03-01","amount":100,"currency":"BRL","settled":true,"settledAt":"2024-03-01T12:00:00Z"}
`

func TestDecodeLedger(t *testing.T) {
	jsonl := `
{"command":"member","id":"B","name":"Bea"}
{"command":"expense","id":"t1","date":"2024-01-05","amount":300,"payer":"me","sharedWith":[{"member":"B","amount":100}]}

{"command":"expense","id":"t2","date":"2024-01-06","amount":90,"currency":"EUR","payer":"B"}
{"command":"transfer","id":"t3","date":"2024-01-07","amount":10,"deleted":true}
`
	ledger, err := DecodeLedger(strings.NewReader(jsonl), "BRL")
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}
	if got := len(ledger.Members()); got != 1 {
		t.Errorf("DecodeLedger() decoded %d members, want 1", got)
	}
	txs := ledger.Transactions()
	if len(txs) != 3 {
		t.Fatalf("DecodeLedger() decoded %d transactions, want 3", len(txs))
	}

	t1 := txs[0]
	if !t1.Payer.IsSelf() || !t1.Amount.Equal(BRL(300)) || t1.Type != Expense || !t1.Date.Equal(date.New(2024, time.January, 5)) {
		t.Errorf("t1 = %+v, want a 300 BRL expense paid by the owning user", t1)
	}
	if s, ok := t1.Split("B"); !ok || !s.Amount.Equal(BRL(100)) {
		t.Errorf("t1 split of B = %+v, want 100 BRL", s)
	}
	if payer, ok := txs[1].Payer.Member(); !ok || payer != "B" || txs[1].Currency() != "EUR" {
		t.Errorf("t2 = %+v, want paid by B in EUR", txs[1])
	}
	if !txs[2].Deleted || txs[2].Type != Transfer {
		t.Errorf("t3 = %+v, want a deleted transfer", txs[2])
	}
}

func TestDecodeLedger_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		jsonl string
	}{
		{name: "unknown command", jsonl: `{"command":"buy","id":"x","date":"2024-01-01","amount":1}`},
		{name: "not json", jsonl: `{"command":`},
		{name: "missing id", jsonl: `{"command":"expense","date":"2024-01-01","amount":1}`},
		{name: "missing date", jsonl: `{"command":"expense","id":"x","amount":1}`},
		{name: "relative date", jsonl: `{"command":"expense","id":"x","date":"-1d","amount":1}`},
		{name: "bad currency", jsonl: `{"command":"expense","id":"x","date":"2024-01-01","amount":1,"currency":"EURO"}`},
		{name: "split of the owning user", jsonl: `{"command":"expense","id":"x","date":"2024-01-01","amount":1,"sharedWith":[{"member":"me","amount":1}]}`},
		{name: "installment beyond series", jsonl: `{"command":"expense","id":"x","date":"2024-01-01","amount":1,"series":{"id":"s","installment":4,"of":3}}`},
		{name: "duplicate id", jsonl: "{\"command\":\"expense\",\"id\":\"x\",\"date\":\"2024-01-01\",\"amount\":1}\n{\"command\":\"income\",\"id\":\"x\",\"date\":\"2024-01-01\",\"amount\":1}"},
		{name: "member without name", jsonl: `{"command":"member","id":"B"}`},
		{name: "member named me", jsonl: `{"command":"member","id":"me","name":"Me"}`},
		{name: "duplicate member", jsonl: "{\"command\":\"member\",\"id\":\"B\",\"name\":\"Bea\"}\n{\"command\":\"member\",\"id\":\"B\",\"name\":\"Bia\"}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tc.jsonl), "BRL"); err == nil {
				t.Errorf("DecodeLedger() succeeded, want an error")
			}
		})
	}
}

func TestEncodeLedger_RoundTrip(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(canonicalLedger), "BRL")
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() returned an unexpected error: %v", err)
	}
	if got := buf.String(); got != canonicalLedger {
		t.Errorf("EncodeLedger() mismatch:\ngot:\n%s\nwant:\n%s", got, canonicalLedger)
	}
}

func TestEncodeTransaction(t *testing.T) {
	tx := paidBy("B", expense("t1", "2024-01-05", 90, Split{MemberID: "C", Amount: NO(30), Settled: true, SettledAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}))
	tx.Series = &Installment{SeriesID: "sofa", Current: 1, Total: 3, OriginalAmount: BRL(270)}

	var buf bytes.Buffer
	if err := EncodeTransaction(&buf, tx); err != nil {
		t.Fatalf("EncodeTransaction() returned an unexpected error: %v", err)
	}
	var obj any
	if err := json.Unmarshal(buf.Bytes(), &obj); err != nil {
		t.Fatalf("EncodeTransaction() wrote invalid json: %v", err)
	}

	testCases := []struct {
		path string
		want any
	}{
		{path: "$.command", want: "expense"},
		{path: "$.payer", want: "B"},
		{path: "$.currency", want: "BRL"},
		{path: "$.amount", want: 90.0},
		{path: "$.sharedWith[0].member", want: "C"},
		{path: "$.sharedWith[0].amount", want: 30.0},
		{path: "$.sharedWith[0].settled", want: true},
		{path: "$.sharedWith[0].settledAt", want: "2024-03-01T12:00:00Z"},
		{path: "$.series.id", want: "sofa"},
		{path: "$.series.installment", want: 1.0},
		{path: "$.series.originalAmount", want: 270.0},
	}
	for _, tc := range testCases {
		got, err := jsonpath.Get(tc.path, obj)
		if err != nil {
			t.Errorf("jsonpath.Get(%q) error = %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s = %v, want %v", tc.path, got, tc.want)
		}
	}

	for _, absent := range []string{"$.settled", "$.deleted", "$.trip", "$.anticipatedFrom"} {
		if got, err := jsonpath.Get(absent, obj); err == nil {
			t.Errorf("%s = %v, want absent", absent, got)
		}
	}
}
