package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/household"
	md "github.com/nao1215/markdown"
)

// SeriesMarkdown renders the installments of one series, in the given order.
func SeriesMarkdown(installments []household.Transaction, members household.Members) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if len(installments) == 0 || installments[0].Series == nil {
		doc.H1("Series")
		doc.PlainText("No installment.")
		return doc.String()
	}
	first := installments[0]
	doc.H1(fmt.Sprintf("Series %s", first.Series.SeriesID))
	doc.PlainText(fmt.Sprintf("%s: %s", md.Bold("Total"), first.Series.OriginalAmount.In(first.Currency())))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Installment", "Date", "Amount", "Shared With", "Status"},
	}
	var anticipated []string
	for _, tx := range installments {
		var shared []string
		for _, s := range tx.SharedWith {
			shared = append(shared, fmt.Sprintf("%s %s", members.Name(s.MemberID), s.Amount.In(tx.Currency())))
		}
		row := []string{"", tx.Date.String(), tx.Amount.String(), strings.Join(shared, ", "), status(tx.IsSettled())}
		if tx.Series != nil {
			row[0] = tx.Series.String()
		}
		table.Rows = append(table.Rows, row)
		if !tx.AnticipatedFrom.IsZero() {
			anticipated = append(anticipated, fmt.Sprintf("%s moved from %s to %s", row[0], tx.AnticipatedFrom, tx.Date))
		}
	}
	doc.Table(table)

	if len(anticipated) > 0 {
		doc.H2("Anticipated")
		doc.BulletList(anticipated...)
	}
	return doc.String()
}

// SeriesIndexMarkdown renders the ids of the known series.
func SeriesIndexMarkdown(ids []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Series")
	if len(ids) == 0 {
		doc.PlainText("No installment series.")
		return doc.String()
	}
	doc.BulletList(ids...)
	return doc.String()
}
