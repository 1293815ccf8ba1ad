package plusvalia

import (
	"testing"
	"time"
)

func TestTransaction_Validate(t *testing.T) {
	valid := NewAcquire(day(2024, time.January, 15), "kraken", "t1", "BTC", Q(1), EUR(40_000), Money{})

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{"valid acquire", func(tx *Transaction) {}, false},
		{"no timestamp", func(tx *Transaction) { tx.Time = time.Time{} }, true},
		{"zero quantity", func(tx *Transaction) { tx.Quantity = Q(0) }, true},
		{"negative quantity", func(tx *Transaction) { tx.Quantity = Q(-1) }, true},
		{"negative price", func(tx *Transaction) { tx.Price = EUR(-1) }, true},
		{"no asset", func(tx *Transaction) { tx.Asset = "" }, true},
		{"unknown kind", func(tx *Transaction) { tx.Kind = "stake" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_ValidateTransfers(t *testing.T) {
	out := NewTransferOut(day(2024, time.February, 1), "kraken", "t1", "BTC", Q(1), "x1")
	if err := out.Validate(); err != nil {
		t.Errorf("Validate(transfer-out) = %v", err)
	}
	out.Transfer = ""
	if err := out.Validate(); err == nil {
		t.Error("transfer-out without a transfer id must not validate")
	}

	in := NewTransferIn(day(2024, time.February, 1), "wallet", "t2", "BTC", Q(1), "x1")
	if err := in.Validate(); err != nil {
		t.Errorf("Validate(transfer-in) = %v", err)
	}
	in.Transfer = ""
	if err := in.Validate(); err == nil {
		t.Error("transfer-in without transfer id or basis must not validate")
	}

	rec := NewReconciledTransferIn(day(2024, time.February, 1), "wallet", "t3", "BTC", Q(1),
		EUR(30_000), day(2023, time.November, 5))
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate(reconciled transfer-in) = %v", err)
	}
}

func TestSortTransactions(t *testing.T) {
	early := NewAcquire(day(2024, time.January, 1), "kraken", "a", "BTC", Q(1), EUR(1), Money{})
	sameTimeCoinbase := NewAcquire(day(2024, time.March, 1), "coinbase", "b", "BTC", Q(1), EUR(1), Money{})
	sameTimeKraken := NewAcquire(day(2024, time.March, 1), "kraken", "a", "BTC", Q(1), EUR(1), Money{})
	late := NewAcquire(day(2024, time.June, 1), "kraken", "z", "BTC", Q(1), EUR(1), Money{})

	txs := []Transaction{late, sameTimeKraken, early, sameTimeCoinbase}
	ambiguities := SortTransactions(txs)
	if len(ambiguities) != 0 {
		t.Errorf("ambiguities = %v, want none", ambiguities)
	}

	wantIDs := []string{"a", "b", "a", "z"}
	wantPlatforms := []string{"kraken", "coinbase", "kraken", "kraken"}
	for i, tx := range txs {
		if tx.ID != wantIDs[i] || tx.Platform != wantPlatforms[i] {
			t.Errorf("position %d = %s/%s, want %s/%s", i, tx.Platform, tx.ID, wantPlatforms[i], wantIDs[i])
		}
	}
}

func TestSortTransactions_FlagsFullKeyCollision(t *testing.T) {
	a := NewAcquire(day(2024, time.March, 1), "kraken", "t1", "BTC", Q(1), EUR(1), Money{})
	b := NewDispose(day(2024, time.March, 1), "kraken", "t1", "ETH", Q(1), EUR(1), Money{})

	ambiguities := SortTransactions([]Transaction{a, b})
	if len(ambiguities) != 1 {
		t.Fatalf("ambiguities = %d, want 1", len(ambiguities))
	}
	// deterministic: input order is preserved for the colliding pair
	if ambiguities[0].First.Kind != KindAcquire {
		t.Errorf("first of the pair = %s, want the acquire that came first", ambiguities[0].First.Kind)
	}
}

func TestNewTrade_Legs(t *testing.T) {
	dispose, acquire := NewTrade(day(2024, time.March, 1), "kraken", "trade7",
		"BTC", Q(0.5), EUR(44_000),
		"ETH", Q(8), EUR(2_750), EUR(10))

	if dispose.Kind != KindDispose || acquire.Kind != KindAcquire {
		t.Fatalf("legs = %s/%s, want dispose/acquire", dispose.Kind, acquire.Kind)
	}
	if dispose.Trade != "trade7" || acquire.Trade != "trade7" {
		t.Errorf("legs do not share the trade id: %q / %q", dispose.Trade, acquire.Trade)
	}
	if dispose.ID == acquire.ID {
		t.Error("legs must have distinct ids")
	}
	if err := dispose.Validate(); err != nil {
		t.Errorf("dispose leg invalid: %v", err)
	}
	if err := acquire.Validate(); err != nil {
		t.Errorf("acquire leg invalid: %v", err)
	}
}
