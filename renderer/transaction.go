package renderer

import (
	"fmt"

	"github.com/etnz/household"
)

// Transaction renders a transaction to a one line description.
func Transaction(tx household.Transaction, members household.Members) string {
	payer := "I"
	if id, ok := tx.Payer.Member(); ok {
		payer = members.Name(id)
	}
	desc := tx.Description
	if desc == "" {
		desc = tx.ID
	}
	switch tx.Type {
	case household.Expense:
		s := fmt.Sprintf("%s paid %s for %s", payer, tx.Amount, desc)
		if n := len(tx.SharedWith); n > 0 {
			s += fmt.Sprintf(", shared with %d", n)
		}
		return s
	case household.Income:
		return fmt.Sprintf("Received %s for %s", tx.Amount, desc)
	case household.Transfer:
		return fmt.Sprintf("Transferred %s for %s", tx.Amount, desc)
	default:
		return string(tx.Type)
	}
}

// status renders the paid flag of an item.
func status(paid bool) string {
	if paid {
		return "paid"
	}
	return "open"
}

// installment renders the series position of an item, if any.
func installment(it household.InvoiceItem) string {
	if it.SeriesID == "" {
		return ""
	}
	return fmt.Sprintf("%d/%d", it.InstallmentNumber, it.TotalInstallments)
}
