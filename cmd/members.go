package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
)

type membersCmd struct {
	add   string
	name  string
	email string
}

func (*membersCmd) Name() string     { return "members" }
func (*membersCmd) Synopsis() string { return "list or declare the members sharing expenses" }
func (*membersCmd) Usage() string {
	return `ledger members [-add <id> -name <name> [-email <email>]]

  Lists the members of the household, or declares a new one.
  The id "me" is reserved for the owning user.
`
}

func (c *membersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Declare a new member with this id")
	f.StringVar(&c.name, "name", "", "Display name of the new member")
	f.StringVar(&c.email, "email", "", "Email of the new member")
}

func (c *membersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s := openStore()
	if c.add != "" {
		m := household.Member{ID: c.add, Name: c.name, Email: c.email}
		if err := s.AddMember(ctx, m); err != nil {
			fmt.Fprintf(os.Stderr, "Error declaring member: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Declared member %q\n", m.ID)
		return subcommands.ExitSuccess
	}

	ledger, ok := snapshot(ctx, s)
	if !ok {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.MembersMarkdown(ledger.Members()))
	return subcommands.ExitSuccess
}
