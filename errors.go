package plusvalia

import (
	"fmt"
	"time"
)

// InsufficientLotsError reports a disposal (or transfer out) that exceeds the
// cumulative acquired-minus-disposed quantity of an asset. It is a data
// integrity problem upstream of the engine, typically a missing transfer-in,
// and is never auto-corrected: the asset's replay stops and the ledger keeps
// the state it had before the offending consumption.
type InsufficientLotsError struct {
	Asset     string
	Requested Quantity
	Available Quantity
	Event     Transaction // the offending event, filled by the engine
}

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("insufficient lots for %s: requested %s, available %s",
		e.Asset, e.Requested, e.Available)
}

// PriceUnavailableError reports a required valuation that the price lookup
// could not serve. It is fatal to the event being processed; it is never
// silently defaulted to zero.
type PriceUnavailableError struct {
	Asset    string
	Currency string
	At       time.Time
	Cause    error // the provider failure, nil when the source had no quote
}

func (e *PriceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no %s price for %s at %s: %v", e.Currency, e.Asset, e.At.Format(time.RFC3339), e.Cause)
	}
	return fmt.Sprintf("no %s price for %s at %s", e.Currency, e.Asset, e.At.Format(time.RFC3339))
}

func (e *PriceUnavailableError) Unwrap() error { return e.Cause }

// MissingTransferBasisError reports a transfer-in whose cost basis could not
// be established: no paired transfer-out was processed before it and the
// caller supplied no reconciled basis.
type MissingTransferBasisError struct {
	Event Transaction
}

func (e *MissingTransferBasisError) Error() string {
	return fmt.Sprintf("transfer-in %s of %s %s has no paired transfer-out and no reconciled basis",
		e.Event.ID, e.Event.Quantity, e.Event.Asset)
}

// AmbiguousOrderingError flags two events that share the timestamp and every
// tie-break field. The replay still orders them deterministically (input
// order), but the ambiguity is surfaced for audit.
type AmbiguousOrderingError struct {
	First, Second Transaction
}

func (e *AmbiguousOrderingError) Error() string {
	return fmt.Sprintf("events %q and %q on %s (%s) share the full ordering key",
		e.First.ID, e.Second.ID, e.First.Platform, e.First.Time.Format(time.RFC3339))
}
