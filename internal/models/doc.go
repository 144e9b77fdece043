// Package models defines the core domain models for Divvy.
//
// # Models
//
//   - Person: someone who pays for or shares expenses
//   - Expense: an amount paid by one person and split evenly among several
//   - Settlement: a single directed payment that helps zero out balances
//
// People and expenses are the persisted records; settlements are derived by
// the settlement engine and recomputed from scratch whenever either list
// changes. They are never stored.
//
// # Design Principles
//
//  1. **IDs over pointers**: relationships use string UUIDs, never struct
//     pointers, so records round-trip cleanly through storage and JSON.
//  2. **Tolerant references**: a PartnerID or participant id that no longer
//     resolves to a Person must degrade gracefully (placeholder display,
//     no routing hint), never crash a computation.
//  3. **Exact money**: amounts are decimals, not floats; two-decimal
//     rounding happens at well-defined boundaries, not ad hoc.
package models
