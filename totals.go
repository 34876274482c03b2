package household

import (
	"maps"
	"slices"
)

// Direction of a net balance, from the owning user's point of view.
type Direction int

const (
	Even      Direction = iota // nothing owed either way.
	ToReceive                  // the counterparty owes the owning user.
	ToPay                      // the owning user owes the counterparty.
)

func (d Direction) String() string {
	switch d {
	case ToReceive:
		return "to receive"
	case ToPay:
		return "to pay"
	default:
		return "even"
	}
}

// Balance is the outstanding position with one counterparty in one currency.
type Balance struct {
	Credits Money // owed to the owning user.
	Debits  Money // owed by the owning user.
	Net     Money // Credits - Debits.
}

// Direction returns the sign of the net balance.
func (b Balance) Direction() Direction {
	switch b.Net.Sign() {
	case 1:
		return ToReceive
	case -1:
		return ToPay
	default:
		return Even
	}
}

// Totals reduces unpaid items into per-currency balances. Paid items are ignored.
func Totals(items []InvoiceItem) map[string]Balance {
	totals := make(map[string]Balance)
	for _, it := range items {
		if it.Paid {
			continue
		}
		c := it.Currency()
		b, ok := totals[c]
		if !ok {
			b = Balance{Credits: M(0, c), Debits: M(0, c), Net: M(0, c)}
		}
		switch it.Kind() {
		case Credit:
			b.Credits = b.Credits.Add(it.Amount)
		case Debit:
			b.Debits = b.Debits.Add(it.Amount)
		}
		b.Net = b.Credits.Sub(b.Debits)
		totals[c] = b
	}
	return totals
}

// Totals returns the balances of every member.
func (inv Invoices) Totals() map[string]map[string]Balance {
	out := make(map[string]map[string]Balance, len(inv))
	for member, items := range inv {
		out[member] = Totals(items)
	}
	return out
}

// Currencies returns the currencies of a totals map, sorted.
func Currencies(totals map[string]Balance) []string {
	return slices.Sorted(maps.Keys(totals))
}
