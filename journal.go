package plusvalia

import "slices"

// Journal is the persisted event history: the crypto transactions of every
// platform plus the fiat movements that funded them. It is the unit of
// storage, one JSONL file per taxpayer.
type Journal struct {
	Transactions []Transaction
	Fiat         []FiatMovement
}

func NewJournal() *Journal { return &Journal{} }

// Append adds events to the journal. Ordering is restored lazily, callers
// append in any order and sort before replaying or persisting.
func (j *Journal) Append(txs ...Transaction) { j.Transactions = append(j.Transactions, txs...) }

// AppendFiat adds fiat movements to the journal.
func (j *Journal) AppendFiat(moves ...FiatMovement) { j.Fiat = append(j.Fiat, moves...) }

// stableSort orders events by the canonical total order.
func (j *Journal) stableSort() {
	SortTransactions(j.Transactions)
	slices.SortStableFunc(j.Fiat, func(a, b FiatMovement) int { return a.Time.Compare(b.Time) })
}

// UpTo returns the transactions at or before the given year's end,
// the input of a tax-year replay: FIFO matching needs the full prior
// history, not just the year's events.
func (j *Journal) UpTo(year int) []Transaction {
	end := YearEnd(year)
	var out []Transaction
	for _, tx := range j.Transactions {
		if !tx.Time.After(end) {
			out = append(out, tx)
		}
	}
	return out
}

// Years lists the calendar years covered by the journal, ascending.
func (j *Journal) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, tx := range j.Transactions {
		y := tx.Time.UTC().Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	for _, m := range j.Fiat {
		y := m.Time.UTC().Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	slices.Sort(years)
	return years
}
