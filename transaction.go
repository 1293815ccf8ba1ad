package plusvalia

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind is a typed string identifying the nature of a ledger event.
type Kind string

// Event kinds recorded in the ledger.
const (
	KindAcquire     Kind = "acquire"
	KindDispose     Kind = "dispose"
	KindTransferIn  Kind = "transfer-in"
	KindTransferOut Kind = "transfer-out"
	KindStakeReward Kind = "stake-reward"
	KindFee         Kind = "fee"
)

// Transaction is one immutable ledger event, normalized from whatever a
// platform connector produced.
//
// Events are totally ordered by (Time, Platform, ID); the timestamp must
// carry a zone and is normalized to UTC before the replay.
type Transaction struct {
	ID       string // platform-stable transaction identifier
	Platform string // originating platform (kraken, coinbase, ...)
	Asset    string // asset symbol (BTC, ETH, ...)
	Kind     Kind
	Quantity Quantity  // always positive
	Price    Money     // settlement-currency unit price at event time
	Fee      Money     // platform fee in settlement currency
	Time     time.Time // event time, zone-aware

	// Trade links the two legs of a crypto-to-crypto trade: the dispose leg
	// of the sold asset and the acquire leg of the bought one share the id.
	Trade string

	// Transfer pairs a transfer-out with its transfer-in so the consumed-lot
	// basis can be handed off.
	Transfer string

	// Reconciled basis for a transfer-in whose source platform history is not
	// part of the replay. When BasisTime is set, BasisPrice is used as the
	// unit cost and BasisTime as the original acquisition time.
	BasisPrice Money
	BasisTime  time.Time
}

// NewAcquire creates a purchase event: quantity bought at the given unit price.
func NewAcquire(at time.Time, platform, id, asset string, quantity Quantity, price, fee Money) Transaction {
	return Transaction{ID: id, Platform: platform, Asset: asset, Kind: KindAcquire,
		Quantity: quantity, Price: price, Fee: fee, Time: at}
}

// NewDispose creates a sale event: quantity sold at the given unit price.
func NewDispose(at time.Time, platform, id, asset string, quantity Quantity, price, fee Money) Transaction {
	return Transaction{ID: id, Platform: platform, Asset: asset, Kind: KindDispose,
		Quantity: quantity, Price: price, Fee: fee, Time: at}
}

// NewStakeReward creates a staking reward event. A zero price means the
// valuation is resolved through the engine's price lookup at receipt time.
func NewStakeReward(at time.Time, platform, id, asset string, quantity Quantity, price Money) Transaction {
	return Transaction{ID: id, Platform: platform, Asset: asset, Kind: KindStakeReward,
		Quantity: quantity, Price: price, Time: at}
}

// NewTransferOut creates the sending half of a cross-platform transfer.
func NewTransferOut(at time.Time, platform, id, asset string, quantity Quantity, transfer string) Transaction {
	return Transaction{ID: id, Platform: platform, Asset: asset, Kind: KindTransferOut,
		Quantity: quantity, Time: at, Transfer: transfer}
}

// NewTransferIn creates the receiving half of a cross-platform transfer.
// The cost basis is inherited from the paired transfer-out.
func NewTransferIn(at time.Time, platform, id, asset string, quantity Quantity, transfer string) Transaction {
	return Transaction{ID: id, Platform: platform, Asset: asset, Kind: KindTransferIn,
		Quantity: quantity, Time: at, Transfer: transfer}
}

// NewReconciledTransferIn creates a transfer-in with an explicit cost basis,
// for when the source platform's history is not part of the replay.
func NewReconciledTransferIn(at time.Time, platform, id, asset string, quantity Quantity, basisPrice Money, basisTime time.Time) Transaction {
	return Transaction{ID: id, Platform: platform, Asset: asset, Kind: KindTransferIn,
		Quantity: quantity, Time: at, BasisPrice: basisPrice, BasisTime: basisTime}
}

// NewFee creates a standalone platform fee event. It does not touch the lot
// ledger; the amount is reported as a deductible platform expense.
func NewFee(at time.Time, platform, id string, fee Money) Transaction {
	return Transaction{ID: id, Platform: platform, Kind: KindFee, Quantity: Q(1), Fee: fee, Time: at}
}

// NewTrade creates the two chained legs of a crypto-to-crypto trade: a
// disposal of the sold asset at market price followed by an acquisition of
// the bought asset, both at the same timestamp and linked by the trade id.
func NewTrade(at time.Time, platform, tradeID string,
	soldAsset string, soldQty Quantity, soldPrice Money,
	boughtAsset string, boughtQty Quantity, boughtPrice Money, fee Money) (dispose, acquire Transaction) {

	dispose = NewDispose(at, platform, tradeID+"-d", soldAsset, soldQty, soldPrice, fee)
	dispose.Trade = tradeID
	acquire = NewAcquire(at, platform, tradeID+"-a", boughtAsset, boughtQty, boughtPrice, Money{})
	acquire.Trade = tradeID
	return dispose, acquire
}

// Validate checks the event for structural correctness before the replay.
func (t Transaction) Validate() error {
	if t.Time.IsZero() {
		return errors.New("transaction has no timestamp")
	}
	if t.Kind != KindFee && (t.Quantity.IsZero() || t.Quantity.IsNegative()) {
		return fmt.Errorf("quantity must be positive, got %s", t.Quantity)
	}
	switch t.Kind {
	case KindAcquire, KindDispose:
		if t.Asset == "" {
			return errors.New("asset symbol is missing")
		}
		if t.Price.IsNegative() {
			return fmt.Errorf("unit price must not be negative, got %s", t.Price)
		}
	case KindStakeReward:
		if t.Asset == "" {
			return errors.New("asset symbol is missing")
		}
	case KindTransferOut:
		if t.Transfer == "" {
			return errors.New("transfer-out needs a transfer id to hand its basis off")
		}
	case KindTransferIn:
		if t.Transfer == "" && t.BasisTime.IsZero() {
			return errors.New("transfer-in needs a transfer id or a reconciled basis")
		}
	case KindFee:
		if t.Fee.IsZero() {
			return errors.New("fee event has no fee amount")
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	return nil
}

// Equal reports whether two transactions are the same event.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.Platform == o.Platform && t.Asset == o.Asset &&
		t.Kind == o.Kind && t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) && t.Fee.Equal(o.Fee) &&
		t.Time.Equal(o.Time) && t.Trade == o.Trade && t.Transfer == o.Transfer
}

// inUTC returns a copy of the transaction with its timestamp normalized.
func (t Transaction) inUTC() Transaction {
	t.Time = t.Time.UTC()
	return t
}

// compareTransactions implements the total order: timestamp first, then
// platform, then transaction id.
func compareTransactions(a, b Transaction) int {
	if c := a.Time.Compare(b.Time); c != 0 {
		return c
	}
	if c := strings.Compare(a.Platform, b.Platform); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// SortTransactions orders events by the total-order key in place. Events that
// share the full key keep their input order (still deterministic for a given
// input) and are returned as ambiguities for audit.
func SortTransactions(txs []Transaction) []AmbiguousOrderingError {
	slices.SortStableFunc(txs, compareTransactions)

	var ambiguities []AmbiguousOrderingError
	for i := 1; i < len(txs); i++ {
		if compareTransactions(txs[i-1], txs[i]) == 0 {
			ambiguities = append(ambiguities, AmbiguousOrderingError{First: txs[i-1], Second: txs[i]})
		}
	}
	return ambiguities
}
