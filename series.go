package household

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

// Series returns the live installments of seriesID, in chronological order.
func Series(txs []Transaction, seriesID string) ([]Transaction, error) {
	var out []Transaction
	for _, tx := range txs {
		if !tx.Deleted && tx.SeriesID() == seriesID {
			out = append(out, tx.Clone())
		}
	}
	if len(out) == 0 {
		return nil, selectionErrorf([]string{seriesID}, "no such series")
	}
	sortChronologically(out)
	return out, nil
}

// AllSeries returns the ids of every series in txs, sorted.
func AllSeries(txs []Transaction) []string {
	var ids []string
	for _, tx := range txs {
		if id := tx.SeriesID(); id != "" && !tx.Deleted && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// sortChronologically sorts installments by date, then by position in the series.
func sortChronologically(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		var ia, ib int
		if a.Series != nil {
			ia = a.Series.Current
		}
		if b.Series != nil {
			ib = b.Series.Current
		}
		return cmp.Compare(ia, ib)
	})
}

// checkSeries verifies that installments form one series in one currency and
// returns that currency.
func checkSeries(installments []Transaction) (string, error) {
	if len(installments) == 0 {
		return "", selectionErrorf(nil, "empty series")
	}
	id, currency := installments[0].SeriesID(), installments[0].Currency()
	if id == "" {
		return "", selectionErrorf([]string{installments[0].ID}, "not an installment")
	}
	for _, tx := range installments {
		if tx.SeriesID() != id {
			return "", selectionErrorf([]string{tx.ID}, "installment of series %q mixed with series %q", tx.SeriesID(), id)
		}
		if tx.Currency() != currency {
			return "", integrityErrorf(tx.ID, "installment in %s, series is in %s", tx.Currency(), currency)
		}
	}
	return currency, nil
}

// RescaleSeries spreads newTotal over the installments of a series.
//
// Every installment receives round2(newTotal/n), the chronologically first one
// also receives the rounding remainder, so that the amounts sum to newTotal
// exactly. Each split keeps its share of its installment (truncated to the
// cent so splits never exceed the installment). The series OriginalAmount
// becomes newTotal on every installment.
//
// The returned installments are updated copies, in chronological order.
func RescaleSeries(installments []Transaction, newTotal Money) ([]Transaction, error) {
	currency, err := checkSeries(installments)
	if err != nil {
		return nil, err
	}
	if c := newTotal.Currency(); c != "" && c != currency {
		return nil, integrityErrorf("", "new total in %s for a series in %s", c, currency)
	}
	newTotal = newTotal.In(currency)
	if !newTotal.IsPositive() {
		return nil, selectionErrorf(nil, "new total must be positive, got %s", newTotal)
	}

	updated := make([]Transaction, len(installments))
	for i, tx := range installments {
		updated[i] = tx.Clone()
	}
	sortChronologically(updated)

	n := decimal.NewFromInt(int64(len(updated)))
	per := Money{value: newTotal.value.Div(n), cur: currency}.Round2()
	remainder := newTotal.Sub(per.Mul(n))
	if !per.IsPositive() || !per.Add(remainder).IsPositive() {
		return nil, selectionErrorf(nil, "new total %s is too small for %d installments", newTotal, len(updated))
	}

	for i := range updated {
		tx := &updated[i]
		adjusted := per
		if i == 0 {
			adjusted = per.Add(remainder)
		}
		if !tx.Amount.IsPositive() {
			return nil, integrityErrorf(tx.ID, "cannot rescale an installment of %s", tx.Amount)
		}
		for j := range tx.SharedWith {
			s := &tx.SharedWith[j]
			scaled := s.Amount.value.Mul(adjusted.value).DivRound(tx.Amount.value, 16)
			s.Amount = Money{value: scaled, cur: currency}.Truncate2()
		}
		tx.Amount = adjusted
		if tx.Series == nil {
			tx.Series = &Installment{}
		}
		tx.Series.OriginalAmount = newTotal
	}
	return updated, nil
}

// Anticipate moves the selected installments of a series to target.
//
// The target cannot be before today. Each selected installment must belong to
// the series, be dated strictly after today, not be settled, and not be dated
// before target already. Any violation
// rejects the whole request with the *InvalidSelectionError of each offending
// id; nothing is returned then. Amounts and splits are left untouched, and
// several installments may end up on the same day.
//
// The returned installments are updated copies of the selected ones.
func Anticipate(installments []Transaction, ids []string, target date.Date, today date.Date) ([]Transaction, error) {
	if len(ids) == 0 {
		return nil, selectionErrorf(nil, "no installment selected")
	}
	if target.IsZero() {
		return nil, selectionErrorf(ids, "anticipation date is missing")
	}
	if target.Before(today) {
		return nil, selectionErrorf(ids, "cannot anticipate installments to %s, before today %s", target, today)
	}
	byID := make(map[string]Transaction, len(installments))
	for _, tx := range installments {
		byID[tx.ID] = tx
	}

	var errs []error
	var updated []Transaction
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		tx, ok := byID[id]
		switch {
		case !ok || tx.Deleted:
			errs = append(errs, selectionErrorf([]string{id}, "not an installment of this series"))
		case !tx.Date.After(today):
			errs = append(errs, selectionErrorf([]string{id}, "installment of %s is not in the future", tx.Date))
		case tx.IsSettled():
			errs = append(errs, selectionErrorf([]string{id}, "installment is already settled"))
		case target.After(tx.Date):
			errs = append(errs, selectionErrorf([]string{id}, "cannot postpone installment of %s to %s", tx.Date, target))
		default:
			tx = tx.Clone()
			if tx.AnticipatedFrom.IsZero() {
				tx.AnticipatedFrom = tx.Date
			}
			tx.Date = target
			updated = append(updated, tx)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return updated, nil
}

// AnticipationCandidates returns the installments that Anticipate accepts today.
func AnticipationCandidates(installments []Transaction, today date.Date) []Transaction {
	var out []Transaction
	for _, tx := range installments {
		if !tx.Deleted && tx.Date.After(today) && !tx.IsSettled() {
			out = append(out, tx)
		}
	}
	return out
}

// String describes the position of an installment, like "3/12".
func (i Installment) String() string {
	return fmt.Sprintf("%d/%d", i.Current, i.Total)
}
