// Package billing provides domain models for the invoice payment ledger of a
// transport back office.
//
// This package implements the receivables bounded context, which is responsible for:
//   - Raising invoices against completed transport orders
//   - Validating and applying payments against outstanding balances
//   - Deriving settlement status (UNPAID, PAID, OVERDUE) from balance and due date
//   - Proposing payment amounts through percentage and full-remainder shortcuts
//   - Exporting the ledger in a spreadsheet-friendly delimited format
//
// Key Aggregates:
//   - Invoice: A billable document whose paid amount only ever grows
//
// Entities:
//   - Payment: Immutable history entry for a committed payment
//
// Value Objects:
//   - PaymentRequest: A candidate payment before validation and commit
//   - Allocator: Proposes payment amounts against a remaining balance
//   - Preset: Tags which allocation shortcut produced an amount
//
// All monetary amounts are integer minor currency units. NormalizeAmount
// accepts the formatted strings operators type into forms, so the same
// tolerant parsing applies at every entry point.
package billing
