package plusvalia

import (
	"errors"
	"testing"
	"time"
)

func TestCheckModelo720(t *testing.T) {
	tests := []struct {
		name     string
		quantity Quantity
		price    Money
		required bool
	}{
		{"below threshold", Q(1), EUR(40_000), false},
		{"exactly threshold", Q(1), EUR(50_000), false},
		{"above threshold", Q(1), EUR(50_001), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewLotLedger()
			ledger.Append("BTC", "kraken", day(2024, time.January, 15), tt.quantity, EUR(30_000))

			check, err := CheckModelo720(ledger, staticPrices{"BTC": tt.price}, "EUR", 2024)
			if err != nil {
				t.Fatalf("CheckModelo720() error = %v", err)
			}
			if check.Required != tt.required {
				t.Errorf("Required = %v, want %v (total %s)", check.Required, tt.required, check.Total)
			}
		})
	}
}

func TestCheckModelo720_SumsAcrossAssets(t *testing.T) {
	ledger := NewLotLedger()
	ledger.Append("BTC", "kraken", day(2024, time.January, 15), Q(1), EUR(30_000))
	ledger.Append("ETH", "coinbase", day(2024, time.March, 1), Q(10), EUR(2_000))

	check, err := CheckModelo720(ledger, staticPrices{"BTC": EUR(35_000), "ETH": EUR(2_500)}, "EUR", 2024)
	if err != nil {
		t.Fatalf("CheckModelo720() error = %v", err)
	}
	if !check.Total.Equal(EUR(60_000)) {
		t.Errorf("Total = %s, want 60000", check.Total)
	}
	if !check.Required {
		t.Error("Required = false, want true")
	}
}

func TestCheckModelo720_MissingPriceFails(t *testing.T) {
	ledger := NewLotLedger()
	ledger.Append("BTC", "kraken", day(2024, time.January, 15), Q(1), EUR(30_000))
	ledger.Append("OBSCURE", "kraken", day(2024, time.June, 1), Q(100), EUR(1))

	_, err := CheckModelo720(ledger, staticPrices{"BTC": EUR(60_000)}, "EUR", 2024)
	var pe *PriceUnavailableError
	if !errors.As(err, &pe) {
		t.Fatalf("CheckModelo720() error = %v, want *PriceUnavailableError", err)
	}
	// a partial total would have crossed the threshold silently
}
