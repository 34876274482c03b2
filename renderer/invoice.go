// Package renderer renders the household reports as markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/household"
	md "github.com/nao1215/markdown"
)

// InvoiceMarkdown renders the invoice of every counterparty in inv, with the
// outstanding balance of each currency.
func InvoiceMarkdown(title string, inv household.Invoices, members household.Members) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(inv.Items()) == 0 {
		doc.PlainText("Nothing to show.")
		return doc.String()
	}

	for _, id := range inv.MemberIDs() {
		items := inv[id]
		if len(items) == 0 {
			continue
		}
		doc.H2(members.Name(id))
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Date", "Description", "Installment", "Amount", "Status"},
		}
		for _, it := range items {
			amount := it.Amount.String()
			if it.Kind() == household.Debit {
				amount = it.Amount.Neg().String()
			}
			table.Rows = append(table.Rows, []string{
				it.Date.String(),
				it.Description,
				installment(it),
				amount,
				status(it.Paid),
			})
		}
		doc.Table(table)

		totals := household.Totals(items)
		for _, c := range household.Currencies(totals) {
			b := totals[c]
			doc.PlainText(fmt.Sprintf("%s: %s", md.Bold(netLabel(b)), b.Net.Abs()))
		}
	}
	return doc.String()
}

// netLabel describes who owes whom.
func netLabel(b household.Balance) string {
	switch b.Direction() {
	case household.ToReceive:
		return "To receive"
	case household.ToPay:
		return "To pay"
	default:
		return "Even"
	}
}
