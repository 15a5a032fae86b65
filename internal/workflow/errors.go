package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrDispatchClosed      = errors.New("dispatch already closed")
	ErrConcurrencyConflict = errors.New("conflicting concurrent stock update")
	ErrStoreUnavailable    = errors.New("backing store unavailable")

	// ErrLedgerDebitPending reports the accepted gap in the close workflow:
	// the dispatch committed as closed but the stock debit did not.
	// ReconcileDispatchDebits repairs these.
	ErrLedgerDebitPending = errors.New("dispatch closed but stock debit pending")

	// drives the optimistic retry loop, never escapes the package
	errVersionConflict = errors.New("inventory entry version conflict")
)

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
