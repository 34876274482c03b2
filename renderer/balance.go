package renderer

import (
	"bytes"

	"github.com/etnz/household"
	md "github.com/nao1215/markdown"
)

// BalanceMarkdown renders the outstanding balance with every counterparty.
func BalanceMarkdown(inv household.Invoices, members household.Members) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Balances")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Member", "Currency", "Credits", "Debits", "Net", "Direction"},
	}
	for _, id := range inv.MemberIDs() {
		totals := household.Totals(inv[id])
		for _, c := range household.Currencies(totals) {
			b := totals[c]
			table.Rows = append(table.Rows, []string{
				members.Name(id),
				c,
				b.Credits.String(),
				b.Debits.String(),
				b.Net.String(),
				b.Direction().String(),
			})
		}
	}
	if len(table.Rows) == 0 {
		doc.PlainText("Everybody is even.")
		return doc.String()
	}
	doc.Table(table)
	return doc.String()
}
