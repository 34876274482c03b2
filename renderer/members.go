package renderer

import (
	"bytes"

	"github.com/etnz/household"
	md "github.com/nao1215/markdown"
)

// MembersMarkdown renders the declared members.
func MembersMarkdown(members []household.Member) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Members")
	if len(members) == 0 {
		doc.PlainText("No member declared.")
		return doc.String()
	}
	table := md.TableSet{
		Header: []string{"ID", "Name", "Email"},
	}
	for _, m := range members {
		table.Rows = append(table.Rows, []string{m.ID, m.Name, m.Email})
	}
	doc.Table(table)
	return doc.String()
}
