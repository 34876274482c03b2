package household

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to classify an error returned by this package.
var (
	ErrDataIntegrity    = errors.New("data integrity")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrUnmatchedPayment = errors.New("unmatched payment")
)

// DataIntegrityError reports a transaction whose content breaks a ledger
// invariant: splits exceeding the total, or currencies mixed without a rate.
// The offending transaction is never corrected.
type DataIntegrityError struct {
	TxID   string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	if e.TxID == "" {
		return fmt.Sprintf("data integrity: %s", e.Reason)
	}
	return fmt.Sprintf("data integrity: transaction %q: %s", e.TxID, e.Reason)
}

func (e *DataIntegrityError) Is(target error) bool { return target == ErrDataIntegrity }

func integrityErrorf(txID, format string, args ...any) error {
	return &DataIntegrityError{TxID: txID, Reason: fmt.Sprintf(format, args...)}
}

// InvalidSelectionError reports a request that cannot be honoured as asked:
// anticipating a past or settled installment, settling a zero amount.
// No mutation intent is produced.
type InvalidSelectionError struct {
	IDs    []string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("invalid selection: %s", e.Reason)
	}
	return fmt.Sprintf("invalid selection %q: %s", e.IDs, e.Reason)
}

func (e *InvalidSelectionError) Is(target error) bool { return target == ErrInvalidSelection }

func selectionErrorf(ids []string, format string, args ...any) error {
	return &InvalidSelectionError{IDs: ids, Reason: fmt.Sprintf(format, args...)}
}

// UnmatchedPaymentWarning is not fatal: the settlement still records the money
// movement, but nothing outstanding was reconciled against it.
type UnmatchedPaymentWarning struct {
	MemberID string
	Amount   Money
}

func (w *UnmatchedPaymentWarning) Error() string {
	return fmt.Sprintf("payment of %s with %s matches no outstanding item", w.Amount, w.MemberID)
}

func (w *UnmatchedPaymentWarning) Is(target error) bool { return target == ErrUnmatchedPayment }
