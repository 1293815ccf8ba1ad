package plusvalia

import (
	"testing"
	"time"
)

func taxJournal() *Journal {
	j := NewJournal()
	j.Append(
		NewAcquire(day(2023, time.May, 1), "kraken", "t1", "BTC", Q(2), EUR(25_000), Money{}),
		NewDispose(day(2024, time.August, 1), "kraken", "t2", "BTC", Q(1), EUR(55_000), Money{}),
		NewStakeReward(day(2024, time.September, 1), "kraken", "r1", "ETH", Q(1), EUR(2_400)),
	)
	j.AppendFiat(FiatMovement{
		ID: "d1", Platform: "kraken", Direction: FiatDeposit,
		Amount: EUR(50_000), Time: day(2023, time.April, 20),
	})
	return j
}

func TestNewTaxReport(t *testing.T) {
	engine := &Engine{Prices: staticPrices{"BTC": EUR(60_000), "ETH": EUR(2_000)}}
	r := NewTaxReport(taxJournal(), engine, 2024)

	if len(r.Failed) != 0 {
		t.Fatalf("Failed = %v", r.Failed)
	}
	// gain 55000 - 25000 on the 2024 disposal
	if !r.Summary.NetGain.Equal(EUR(30_000)) {
		t.Errorf("NetGain = %s, want 30000", r.Summary.NetGain)
	}
	// 1140 + 24000*0.21
	if !r.Tax.Tax.Equal(EUR(6_180)) {
		t.Errorf("Tax = %s, want 6180", r.Tax.Tax)
	}
	if !r.Summary.Income.Equal(EUR(2_400)) {
		t.Errorf("Income = %s, want 2400", r.Summary.Income)
	}
	if len(r.Holdings) != 2 {
		t.Errorf("Holdings = %+v, want BTC and ETH", r.Holdings)
	}
	if r.Modelo720 == nil {
		t.Fatalf("Modelo720 = nil, err = %v", r.Modelo720Err)
	}
	// 1 BTC at 60000 + 1 ETH at 2000 = 62000, above the threshold
	if !r.Modelo720.Required {
		t.Errorf("Modelo720.Required = false, total %s", r.Modelo720.Total)
	}
	if !r.Fiat.Deposits.IsZero() {
		t.Errorf("2024 fiat deposits = %s, want 0 (the deposit was in 2023)", r.Fiat.Deposits)
	}
}

func TestNewTaxReport_ExcludesLaterYears(t *testing.T) {
	j := taxJournal()
	// a 2025 disposal that would drain the remaining lot
	j.Append(NewDispose(day(2025, time.February, 1), "kraken", "t9", "BTC", Q(1), EUR(70_000), Money{}))

	r := NewTaxReport(j, &Engine{}, 2024)
	if len(r.Summary.Disposals) != 1 {
		t.Errorf("Disposals = %d, want only the 2024 one", len(r.Summary.Disposals))
	}
	// holdings are as of the 2024 year end, the 2025 disposal not applied
	if len(r.Holdings) == 0 || !r.Holdings[0].Quantity.Equal(Q(1)) {
		t.Errorf("Holdings = %+v, want 1 BTC still open at 2024 year end", r.Holdings)
	}
}

func TestNewTaxReport_NoPriceLookup(t *testing.T) {
	r := NewTaxReport(taxJournal(), &Engine{}, 2024)
	if r.Modelo720 != nil || r.Modelo720Err != nil {
		t.Errorf("without a price source the check must simply be absent, got %+v / %v",
			r.Modelo720, r.Modelo720Err)
	}
}

func TestNewTaxReport_ValuationFailure(t *testing.T) {
	// ETH has no year-end price: the filing check fails, the gains stand.
	engine := &Engine{Prices: staticPrices{"BTC": EUR(60_000)}}
	r := NewTaxReport(taxJournal(), engine, 2024)

	if r.Modelo720 != nil {
		t.Error("Modelo720 must be withheld on a partial valuation")
	}
	if r.Modelo720Err == nil {
		t.Error("Modelo720Err must carry the lookup failure")
	}
	if !r.Summary.NetGain.Equal(EUR(30_000)) {
		t.Errorf("NetGain = %s, the gains figures must survive the valuation failure", r.Summary.NetGain)
	}
}
