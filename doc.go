// Package plusvalia computes Spanish capital-gains tax on cryptocurrency
// activity aggregated from multiple platforms.
//
// The core is a deterministic FIFO cost-basis engine: it replays a normalized,
// totally ordered stream of transactions against a per-asset lot ledger and
// produces per-disposal gain/loss figures, the remaining holdings, a
// progressive-bracket tax assessment, and the Modelo 720 foreign-asset
// filing check.
//
// The main pieces are:
//   - Transaction: one immutable ledger event (acquire, dispose, transfer,
//     stake reward, fee), totally ordered by timestamp, platform and id.
//   - LotLedger: per-asset FIFO queues of open acquisition lots.
//   - Engine: the single-pass replay that mutates the ledger and emits
//     Disposal and income records.
//   - YearSummary, TaxAssessment, Modelo720Check: the structured outputs the
//     renderer and the CLI consume.
//
// The engine never fetches data and never renders output: input comes as a
// slice of transactions, prices come through the PriceLookup capability, and
// all results are plain values. Errors are structural, never retried: a
// disposal that exceeds the known acquired quantity fails that asset's
// computation and is reported alongside the partial results of the others.
//
// This package is the foundation of the `pva` command-line tool.
package plusvalia
