// Package household keeps the shared-expense ledger of a family: who owes
// whom, in which currency, and how payments settle those debts.
//
// The package is a pure computation layer over a snapshot of transactions:
//   - Invoice projection: Project turns shared expenses into per-member
//     invoice items, a credit when a member owes the owning user, a debit when
//     the owning user owes a member.
//   - Totals: Totals reduces unpaid items into per-currency net balances.
//   - Settlement: Settle matches a payment against the oldest unpaid items of
//     a member and returns the money movement plus the items it settles.
//   - Installments: RescaleSeries and Anticipate keep a purchase split in
//     installments consistent when its total or its schedule changes.
//
// Nothing here writes anywhere. Operations that change the ledger return a
// Batch of mutation intents that the caller commits atomically, see the store
// package for implementations.
package household
