package plusvalia

import (
	"slices"
	"time"
)

// Lot is a slice of acquired quantity carrying its own cost basis and
// acquisition date. The acquisition date survives partial consumption: it is
// what FIFO orders on and what the audit trail reports.
type Lot struct {
	ID         int // ledger-assigned, stable for the lifetime of a replay
	Asset      string
	Platform   string
	AcquiredAt time.Time
	Original   Quantity
	Remaining  Quantity
	UnitCost   Money
}

// CostBasis returns the basis still held in the lot.
func (l Lot) CostBasis() Money { return l.UnitCost.Mul(l.Remaining) }

// Consumption records how much of a single lot one disposal consumed.
type Consumption struct {
	LotID      int
	AcquiredAt time.Time
	UnitCost   Money
	Quantity   Quantity
}

// Cost returns the basis consumed from the lot.
func (c Consumption) Cost() Money { return c.UnitCost.Mul(c.Quantity) }

// lotQueue is the ordered queue of open lots of one asset, oldest first.
// The head index makes consume-oldest amortized O(1); fully consumed lots
// are dropped from the front.
type lotQueue struct {
	lots []*Lot
	head int
}

// open returns the open lots, oldest first.
func (q *lotQueue) open() []*Lot { return q.lots[q.head:] }

// push inserts a lot keeping the queue sorted by acquisition time (ties by
// lot id). Acquisitions arrive chronologically so this appends; only lots
// inherited through a transfer can predate the tail and need an insert.
func (q *lotQueue) push(l *Lot) {
	open := q.open()
	if n := len(open); n > 0 && l.AcquiredAt.Before(open[n-1].AcquiredAt) {
		i, _ := slices.BinarySearchFunc(open, l, func(a, b *Lot) int {
			if c := a.AcquiredAt.Compare(b.AcquiredAt); c != 0 {
				return c
			}
			return a.ID - b.ID
		})
		q.lots = slices.Insert(q.lots, q.head+i, l)
		return
	}
	q.lots = append(q.lots, l)
}

// remaining sums the open quantity across all lots.
func (q *lotQueue) remaining() Quantity {
	var total Quantity
	for _, l := range q.open() {
		total = total.Add(l.Remaining)
	}
	return total
}

// plan walks the queue from the oldest lot and computes what a consumption of
// the given quantity would take, without mutating anything. It fails when the
// queue cannot satisfy the full quantity.
func (q *lotQueue) plan(asset string, quantity Quantity) ([]Consumption, *InsufficientLotsError) {
	var consumed []Consumption
	left := quantity
	for _, l := range q.open() {
		if !left.IsPositive() {
			break
		}
		take := l.Remaining.Min(left)
		consumed = append(consumed, Consumption{
			LotID:      l.ID,
			AcquiredAt: l.AcquiredAt,
			UnitCost:   l.UnitCost,
			Quantity:   take,
		})
		left = left.Sub(take)
	}
	if left.IsPositive() {
		return nil, &InsufficientLotsError{Asset: asset, Requested: quantity, Available: q.remaining()}
	}
	return consumed, nil
}

// apply mutates the queue according to a plan produced by plan. A lot is
// destroyed only when its remaining quantity reaches exactly zero.
func (q *lotQueue) apply(consumed []Consumption) {
	for _, c := range consumed {
		l := q.open()[0]
		if l.ID != c.LotID {
			// plans are applied immediately after planning; a mismatch means
			// the queue changed in between, which is a programming error.
			panic("lot queue changed between plan and apply")
		}
		l.Remaining = l.Remaining.Sub(c.Quantity)
		if l.Remaining.IsZero() {
			q.lots[q.head] = nil
			q.head++
		}
	}
}

// LotLedger owns, per asset, the ordered queue of open acquisition lots.
// The matching engine is its only writer; one fresh ledger is built per
// replay, so no locking is needed.
type LotLedger struct {
	queues map[string]*lotQueue
	nextID int
}

// NewLotLedger creates an empty lot ledger.
func NewLotLedger() *LotLedger {
	return &LotLedger{queues: make(map[string]*lotQueue)}
}

func (ll *LotLedger) queue(asset string) *lotQueue {
	q, ok := ll.queues[asset]
	if !ok {
		q = &lotQueue{}
		ll.queues[asset] = q
	}
	return q
}

// Append opens a new lot and returns it.
func (ll *LotLedger) Append(asset, platform string, acquiredAt time.Time, quantity Quantity, unitCost Money) *Lot {
	ll.nextID++
	l := &Lot{
		ID:         ll.nextID,
		Asset:      asset,
		Platform:   platform,
		AcquiredAt: acquiredAt,
		Original:   quantity,
		Remaining:  quantity,
		UnitCost:   unitCost,
	}
	ll.queue(asset).push(l)
	return l
}

// Consume takes the given quantity from the asset's lots, oldest first, and
// returns the per-lot consumptions in non-decreasing acquisition order.
// On InsufficientLotsError the ledger is left untouched: the failed plan is
// never partially applied.
func (ll *LotLedger) Consume(asset string, quantity Quantity) ([]Consumption, error) {
	q := ll.queue(asset)
	consumed, err := q.plan(asset, quantity)
	if err != nil {
		return nil, err
	}
	q.apply(consumed)
	return consumed, nil
}

// Remaining returns the total open quantity of an asset.
func (ll *LotLedger) Remaining(asset string) Quantity {
	q, ok := ll.queues[asset]
	if !ok {
		return Quantity{}
	}
	return q.remaining()
}

// Assets returns the asset symbols with at least one open lot, sorted.
func (ll *LotLedger) Assets() []string {
	var assets []string
	for asset, q := range ll.queues {
		if len(q.open()) > 0 {
			assets = append(assets, asset)
		}
	}
	slices.Sort(assets)
	return assets
}

// Lots returns a copy of the asset's open lots, oldest first.
func (ll *LotLedger) Lots(asset string) []Lot {
	q, ok := ll.queues[asset]
	if !ok {
		return nil
	}
	open := q.open()
	lots := make([]Lot, 0, len(open))
	for _, l := range open {
		lots = append(lots, *l)
	}
	return lots
}
