package plusvalia

import (
	"fmt"
	"log"
	"slices"
	"time"
)

// PriceLookup is the capability the engine uses when an event lacks an
// explicit valuation, and the Modelo 720 checker uses to value end-of-period
// holdings. A failed lookup must return *PriceUnavailableError, never a zero
// price.
type PriceLookup interface {
	PriceAt(asset, currency string, at time.Time) (Money, error)
}

// Disposal is the result of one DISPOSE event: proceeds, consumed cost basis
// and the realized gain or loss, with the per-lot audit trail.
type Disposal struct {
	Asset    string
	Platform string
	Time     time.Time
	Quantity Quantity
	Proceeds Money // quantity x unit price, minus fee under FeeFromProceeds
	Cost     Money // basis consumed across lots, oldest first
	Gain     Money // Proceeds - Cost
	Fee      Money
	Consumed []Consumption
	Trade    string // links to the acquire leg of a crypto-to-crypto trade
}

// IncomeRecord is ordinary income from a staking reward, valued at market
// price at receipt. It is taxed separately from capital gains.
type IncomeRecord struct {
	Asset    string
	Platform string
	Time     time.Time
	Quantity Quantity
	Value    Money
}

// FeeRecord is a standalone platform fee, reported as an expense.
type FeeRecord struct {
	Platform string
	Time     time.Time
	Amount   Money
}

// Result is the outcome of one replay. Partial success is first class: assets
// whose history is inconsistent appear in Failed with the error that stopped
// them, while every other asset's figures are complete.
type Result struct {
	Currency    string
	Disposals   []Disposal
	Income      []IncomeRecord
	Fees        []FeeRecord
	Ledger      *LotLedger
	Failed      map[string]error
	Ambiguities []AmbiguousOrderingError
}

// Clean reports whether the replay completed without integrity errors.
func (r *Result) Clean() bool { return len(r.Failed) == 0 }

// Engine replays a transaction history against a fresh lot ledger.
//
// A replay is single-threaded and synchronous over an immutable snapshot:
// it runs to completion or fails fast per asset, with no retries. Replaying
// the same transactions always yields identical results.
type Engine struct {
	Currency string      // settlement currency; EUR when empty
	Policy   FeePolicy   // fee treatment, applied consistently
	Prices   PriceLookup // optional, for stake rewards without explicit price
}

func (e *Engine) currency() string {
	if e.Currency == "" {
		return "EUR"
	}
	return e.Currency
}

// Replay normalizes, orders and processes the whole transaction set.
//
// Events are processed asset by asset in ascending total order. An integrity
// error (insufficient lots, missing valuation, missing transfer basis)
// aborts the offending asset's replay only; the other assets complete.
func (e *Engine) Replay(txs []Transaction) *Result {
	res := &Result{
		Currency: e.currency(),
		Ledger:   NewLotLedger(),
		Failed:   make(map[string]error),
	}

	ordered := make([]Transaction, len(txs))
	for i, tx := range txs {
		ordered[i] = tx.inUTC()
	}
	res.Ambiguities = SortTransactions(ordered)
	for _, a := range res.Ambiguities {
		log.Printf("ambiguous ordering: %v", &a)
	}

	// Group per asset, preserving the total order inside each group. Assets
	// are independent: transfer hand-offs only link platforms of the same
	// asset, so one asset's failure never contaminates another.
	byAsset := make(map[string][]Transaction)
	var assets []string
	for _, tx := range ordered {
		if tx.Kind == KindFee {
			// standalone fees carry no asset and never touch lots
			res.Fees = append(res.Fees, FeeRecord{Platform: tx.Platform, Time: tx.Time, Amount: tx.Fee})
			continue
		}
		if _, ok := byAsset[tx.Asset]; !ok {
			assets = append(assets, tx.Asset)
		}
		byAsset[tx.Asset] = append(byAsset[tx.Asset], tx)
	}
	slices.Sort(assets)

	for _, asset := range assets {
		if err := e.replayAsset(res, asset, byAsset[asset]); err != nil {
			log.Printf("asset %s failed: %v", asset, err)
			res.Failed[asset] = err
		}
	}

	slices.SortStableFunc(res.Disposals, func(a, b Disposal) int { return a.Time.Compare(b.Time) })
	slices.SortStableFunc(res.Income, func(a, b IncomeRecord) int { return a.Time.Compare(b.Time) })
	return res
}

// replayAsset processes one asset's events in order, stopping at the first
// integrity error.
func (e *Engine) replayAsset(res *Result, asset string, txs []Transaction) error {
	// basis handed off by processed transfer-outs, keyed by transfer id
	pending := make(map[string][]Consumption)

	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid %s event %q: %w", tx.Kind, tx.ID, err)
		}

		switch tx.Kind {
		case KindAcquire:
			unitCost := tx.Price
			if e.Policy == FeeToCostBasis && !tx.Fee.IsZero() {
				unitCost = tx.Price.Mul(tx.Quantity).Add(tx.Fee).Div(tx.Quantity)
			}
			res.Ledger.Append(asset, tx.Platform, tx.Time, tx.Quantity, unitCost)

		case KindStakeReward:
			price := tx.Price
			if price.IsZero() {
				var err error
				price, err = e.lookupPrice(asset, tx.Time)
				if err != nil {
					return err
				}
			}
			res.Ledger.Append(asset, tx.Platform, tx.Time, tx.Quantity, price)
			res.Income = append(res.Income, IncomeRecord{
				Asset:    asset,
				Platform: tx.Platform,
				Time:     tx.Time,
				Quantity: tx.Quantity,
				Value:    price.Mul(tx.Quantity),
			})

		case KindDispose:
			consumed, err := res.Ledger.Consume(asset, tx.Quantity)
			if err != nil {
				if ie, ok := err.(*InsufficientLotsError); ok {
					ie.Event = tx
				}
				return err
			}
			proceeds := tx.Price.Mul(tx.Quantity)
			if e.Policy == FeeFromProceeds && !tx.Fee.IsZero() {
				proceeds = proceeds.Sub(tx.Fee)
			}
			var cost Money
			for _, c := range consumed {
				cost = cost.Add(c.Cost())
			}
			res.Disposals = append(res.Disposals, Disposal{
				Asset:    asset,
				Platform: tx.Platform,
				Time:     tx.Time,
				Quantity: tx.Quantity,
				Proceeds: proceeds,
				Cost:     cost,
				Gain:     proceeds.Sub(cost),
				Fee:      tx.Fee,
				Consumed: consumed,
				Trade:    tx.Trade,
			})

		case KindTransferOut:
			// consume FIFO but realize nothing: the basis moves with the coins
			consumed, err := res.Ledger.Consume(asset, tx.Quantity)
			if err != nil {
				if ie, ok := err.(*InsufficientLotsError); ok {
					ie.Event = tx
				}
				return err
			}
			pending[tx.Transfer] = consumed

		case KindTransferIn:
			if !tx.BasisTime.IsZero() {
				// reconciled basis supplied by the caller
				res.Ledger.Append(asset, tx.Platform, tx.BasisTime.UTC(), tx.Quantity, tx.BasisPrice)
				continue
			}
			consumed, ok := pending[tx.Transfer]
			if !ok {
				return &MissingTransferBasisError{Event: tx}
			}
			delete(pending, tx.Transfer)
			// Re-open the consumed slices on the destination platform with
			// their original acquisition times and unit costs. A received
			// quantity smaller than the sent one (in-kind network fee) drops
			// basis from the newest slices first.
			left := tx.Quantity
			for _, c := range consumed {
				if !left.IsPositive() {
					break
				}
				take := c.Quantity.Min(left)
				res.Ledger.Append(asset, tx.Platform, c.AcquiredAt, take, c.UnitCost)
				left = left.Sub(take)
			}
		}
	}
	return nil
}

func (e *Engine) lookupPrice(asset string, at time.Time) (Money, error) {
	if e.Prices == nil {
		return Money{}, &PriceUnavailableError{Asset: asset, Currency: e.currency(), At: at}
	}
	price, err := e.Prices.PriceAt(asset, e.currency(), at)
	if err != nil {
		return Money{}, err
	}
	if price.IsZero() {
		return Money{}, &PriceUnavailableError{Asset: asset, Currency: e.currency(), At: at}
	}
	return price, nil
}
