package plusvalia

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// journalRecord is the flat JSONL shape shared by every event. The kind
// field discriminates; unused fields are omitted per kind.
type journalRecord struct {
	Kind       string           `json:"kind"`
	ID         string           `json:"id,omitempty"`
	Platform   string           `json:"platform,omitempty"`
	Asset      string           `json:"asset,omitempty"`
	Time       time.Time        `json:"time"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Fee        *decimal.Decimal `json:"fee,omitempty"`
	Currency   string           `json:"currency,omitempty"`
	Trade      string           `json:"trade,omitempty"`
	Transfer   string           `json:"transfer,omitempty"`
	BasisPrice *decimal.Decimal `json:"basisPrice,omitempty"`
	BasisTime  *time.Time       `json:"basisTime,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
}

func optDecimal(d decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	return &d
}

func record(tx Transaction) journalRecord {
	r := journalRecord{
		Kind:     string(tx.Kind),
		ID:       tx.ID,
		Platform: tx.Platform,
		Asset:    tx.Asset,
		Time:     tx.Time.UTC(),
		Quantity: optDecimal(tx.Quantity.value),
		Price:    optDecimal(tx.Price.value),
		Fee:      optDecimal(tx.Fee.value),
		Currency: tx.Price.cur,
		Trade:    tx.Trade,
		Transfer: tx.Transfer,
	}
	if r.Currency == "" {
		r.Currency = tx.Fee.cur
	}
	if !tx.BasisTime.IsZero() {
		bt := tx.BasisTime.UTC()
		r.BasisTime = &bt
		r.BasisPrice = optDecimal(tx.BasisPrice.value)
		if r.Currency == "" {
			r.Currency = tx.BasisPrice.cur
		}
	}
	return r
}

func (r journalRecord) transaction() Transaction {
	tx := Transaction{
		ID:       r.ID,
		Platform: r.Platform,
		Asset:    r.Asset,
		Kind:     Kind(r.Kind),
		Time:     r.Time.UTC(),
		Trade:    r.Trade,
		Transfer: r.Transfer,
	}
	if r.Quantity != nil {
		tx.Quantity = Q(*r.Quantity)
	}
	if r.Price != nil {
		tx.Price = M(*r.Price, r.Currency)
	}
	if r.Fee != nil {
		tx.Fee = M(*r.Fee, r.Currency)
	}
	if r.BasisTime != nil {
		tx.BasisTime = r.BasisTime.UTC()
	}
	if r.BasisPrice != nil {
		tx.BasisPrice = M(*r.BasisPrice, r.Currency)
	}
	return tx
}

// EncodeJournal orders the journal and persists it as JSONL, one event per
// line, keys in a canonical order. Encoding then decoding yields an equal
// journal.
func EncodeJournal(w io.Writer, j *Journal) error {
	j.stableSort()
	enc := json.NewEncoder(w)
	for _, tx := range j.Transactions {
		if err := enc.Encode(record(tx)); err != nil {
			return fmt.Errorf("failed to encode event %q: %w", tx.ID, err)
		}
	}
	for _, m := range j.Fiat {
		r := journalRecord{
			Kind:     string(m.Direction),
			ID:       m.ID,
			Platform: m.Platform,
			Time:     m.Time.UTC(),
			Amount:   optDecimal(m.Amount.value),
			Currency: m.Amount.cur,
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode fiat movement %q: %w", m.ID, err)
		}
	}
	return nil
}

// DecodeJournal reads a JSONL stream back into a sorted journal. Empty
// lines are skipped; an unknown kind is an error.
func DecodeJournal(rd io.Reader) (*Journal, error) {
	j := NewJournal()
	scanner := bufio.NewScanner(rd)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var r journalRecord
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		switch Kind(r.Kind) {
		case KindAcquire, KindDispose, KindTransferIn, KindTransferOut, KindStakeReward, KindFee:
			j.Append(r.transaction())
		case Kind(FiatDeposit), Kind(FiatWithdrawal):
			var amount Money
			if r.Amount != nil {
				amount = M(*r.Amount, r.Currency)
			}
			j.AppendFiat(FiatMovement{
				ID:        r.ID,
				Platform:  r.Platform,
				Direction: FiatDirection(r.Kind),
				Amount:    amount,
				Time:      r.Time.UTC(),
			})
		default:
			return nil, fmt.Errorf("line %d: unknown event kind %q", line, r.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading journal: %w", err)
	}
	j.stableSort()
	return j, nil
}
