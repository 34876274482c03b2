package household

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared, validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError flattens validator errors into one readable error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, ", "))
}

// Validate checks a transaction before it enters the ledger: structural rules
// first (id, type, known member ids), then the ledger invariants of Check.
func Validate(members Members, tx Transaction) error {
	if tx.ID == "" {
		return errors.New("transaction id is missing")
	}
	if _, err := ParseTxType(string(tx.Type)); err != nil {
		return fmt.Errorf("transaction %q: %w", tx.ID, err)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("transaction %q: date is missing", tx.ID)
	}
	if id, ok := tx.Payer.Member(); ok && members != nil {
		if _, known := members[id]; !known {
			return fmt.Errorf("transaction %q: unknown payer %q", tx.ID, id)
		}
	}
	for _, s := range tx.SharedWith {
		if _, known := members[s.MemberID]; members != nil && !known {
			return fmt.Errorf("transaction %q: unknown member %q in splits", tx.ID, s.MemberID)
		}
	}
	if s := tx.Series; s != nil {
		if s.SeriesID == "" || s.Total < 1 || s.Current < 1 || s.Current > s.Total {
			return fmt.Errorf("transaction %q: invalid installment %d/%d of series %q", tx.ID, s.Current, s.Total, s.SeriesID)
		}
	}
	return tx.Check()
}
