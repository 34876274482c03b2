package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/household"
	md "github.com/nao1215/markdown"
)

// SettlementMarkdown renders the outcome of a settlement.
func SettlementMarkdown(s household.Settlement, members household.Members) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Settlement")
	doc.PlainText(fmt.Sprintf("%s on %s.", Transaction(s.Transaction, members), s.Transaction.Date))

	if len(s.Covered) > 0 {
		doc.H2("Settled Items")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"Date", "Description", "Kind", "Amount"},
		}
		for _, it := range s.Covered {
			table.Rows = append(table.Rows, []string{
				it.Date.String(),
				it.Description,
				it.Kind().String(),
				it.Amount.String(),
			})
		}
		doc.Table(table)
	}

	if !s.Remaining.IsZero() {
		doc.PlainText(fmt.Sprintf("%s: %s", md.Bold("Unmatched"), s.Remaining))
	}
	if s.Warning != nil {
		doc.Blockquote(s.Warning.Error())
	}
	return doc.String()
}
