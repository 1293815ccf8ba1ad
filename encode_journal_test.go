package plusvalia

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestJournalRoundTrip(t *testing.T) {
	j := NewJournal()
	dispose, acquire := NewTrade(day(2024, time.March, 1), "kraken", "trade7",
		"BTC", Q(0.5), EUR(44_000),
		"ETH", Q(8), EUR(2_750), EUR(10))
	j.Append(
		NewAcquire(day(2024, time.January, 15), "kraken", "t1", "BTC", Q(1), EUR(40_000), EUR(12.5)),
		NewDispose(day(2024, time.June, 10), "kraken", "t2", "BTC", Q(0.25), EUR(50_000), Money{}),
		NewStakeReward(day(2024, time.April, 1), "kraken", "r1", "ETH", Q(0.1), EUR(2_500)),
		NewTransferOut(day(2024, time.February, 1), "kraken", "x1-out", "BTC", Q(0.5), "x1"),
		NewTransferIn(day(2024, time.February, 1), "wallet", "x1-in", "BTC", Q(0.5), "x1"),
		NewReconciledTransferIn(day(2024, time.May, 1), "wallet", "t9", "ETH", Q(2),
			EUR(1_800), day(2023, time.October, 10)),
		NewFee(day(2024, time.July, 1), "kraken", "f1", EUR(25)),
		dispose, acquire,
	)
	j.AppendFiat(FiatMovement{
		ID: "d1", Platform: "kraken", Direction: FiatDeposit,
		Amount: EUR(10_000), Time: day(2024, time.January, 5),
	})

	var buf bytes.Buffer
	if err := EncodeJournal(&buf, j); err != nil {
		t.Fatalf("EncodeJournal() error = %v", err)
	}

	got, err := DecodeJournal(&buf)
	if err != nil {
		t.Fatalf("DecodeJournal() error = %v", err)
	}

	if len(got.Transactions) != len(j.Transactions) {
		t.Fatalf("decoded %d transactions, want %d", len(got.Transactions), len(j.Transactions))
	}
	for i := range j.Transactions {
		if !got.Transactions[i].Equal(j.Transactions[i]) {
			t.Errorf("transaction %d differs:\n got %+v\nwant %+v", i, got.Transactions[i], j.Transactions[i])
		}
	}
	if len(got.Fiat) != 1 || !got.Fiat[0].Amount.Equal(EUR(10_000)) {
		t.Errorf("fiat = %+v, want the single deposit back", got.Fiat)
	}
}

func TestJournalRoundTrip_PreservesReconciledBasis(t *testing.T) {
	j := NewJournal()
	j.Append(NewReconciledTransferIn(day(2024, time.May, 1), "wallet", "t1", "ETH", Q(2),
		EUR(1_800), day(2023, time.October, 10)))

	var buf bytes.Buffer
	if err := EncodeJournal(&buf, j); err != nil {
		t.Fatalf("EncodeJournal() error = %v", err)
	}
	got, err := DecodeJournal(&buf)
	if err != nil {
		t.Fatalf("DecodeJournal() error = %v", err)
	}
	tx := got.Transactions[0]
	if !tx.BasisTime.Equal(day(2023, time.October, 10)) || !tx.BasisPrice.Equal(EUR(1_800)) {
		t.Errorf("basis = %s @ %s, want October 10 @ 1800", tx.BasisTime, tx.BasisPrice)
	}
}

func TestDecodeJournal_SkipsEmptyLinesAndSorts(t *testing.T) {
	input := `{"kind":"dispose","id":"t2","platform":"kraken","asset":"BTC","time":"2024-06-10T12:00:00Z","quantity":1,"price":50000,"currency":"EUR"}

{"kind":"acquire","id":"t1","platform":"kraken","asset":"BTC","time":"2024-01-15T12:00:00Z","quantity":1,"price":40000,"currency":"EUR"}
`
	j, err := DecodeJournal(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeJournal() error = %v", err)
	}
	if len(j.Transactions) != 2 {
		t.Fatalf("decoded %d transactions, want 2", len(j.Transactions))
	}
	if j.Transactions[0].ID != "t1" {
		t.Errorf("first transaction = %q, want the January acquire", j.Transactions[0].ID)
	}
}

func TestDecodeJournal_UnknownKind(t *testing.T) {
	input := `{"kind":"airdrop","id":"t1","time":"2024-01-15T12:00:00Z"}`
	if _, err := DecodeJournal(strings.NewReader(input)); err == nil {
		t.Error("unknown kind must fail decoding")
	}
}

func TestJournalUpTo(t *testing.T) {
	j := NewJournal()
	j.Append(
		NewAcquire(day(2023, time.December, 31), "kraken", "t1", "BTC", Q(1), EUR(30_000), Money{}),
		NewAcquire(day(2024, time.June, 1), "kraken", "t2", "BTC", Q(1), EUR(40_000), Money{}),
		NewAcquire(day(2025, time.January, 1), "kraken", "t3", "BTC", Q(1), EUR(50_000), Money{}),
	)
	upTo := j.UpTo(2024)
	if len(upTo) != 2 {
		t.Fatalf("UpTo(2024) = %d transactions, want 2", len(upTo))
	}
	for _, tx := range upTo {
		if tx.Time.Year() > 2024 {
			t.Errorf("UpTo(2024) includes %s from %d", tx.ID, tx.Time.Year())
		}
	}
}
