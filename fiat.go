package plusvalia

import "time"

// FiatDirection tells deposits from withdrawals.
type FiatDirection string

const (
	FiatDeposit    FiatDirection = "deposit"
	FiatWithdrawal FiatDirection = "withdrawal"
)

// FiatMovement is cash moved between a bank account and a platform. Fiat
// movements never touch lots, they only feed the annual cash-flow summary.
type FiatMovement struct {
	ID        string
	Platform  string
	Direction FiatDirection
	Amount    Money
	Time      time.Time
}

// FiatSummary is the year's cash flow in and out of the platforms, with the
// standalone platform fees charged over the same period.
type FiatSummary struct {
	Year        int
	Deposits    Money
	Withdrawals Money
	Net         Money // Deposits - Withdrawals
	Fees        Money
}

// SummarizeFiat aggregates one year's fiat movements and platform fees.
func SummarizeFiat(moves []FiatMovement, fees []FeeRecord, year int) FiatSummary {
	s := FiatSummary{Year: year}
	for _, m := range moves {
		if !InYear(m.Time, year) {
			continue
		}
		switch m.Direction {
		case FiatDeposit:
			s.Deposits = s.Deposits.Add(m.Amount)
		case FiatWithdrawal:
			s.Withdrawals = s.Withdrawals.Add(m.Amount)
		}
	}
	s.Net = s.Deposits.Sub(s.Withdrawals)
	for _, f := range fees {
		if InYear(f.Time, year) {
			s.Fees = s.Fees.Add(f.Amount)
		}
	}
	return s
}
