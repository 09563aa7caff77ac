package billing

import (
	"context"

	"github.com/fleetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	Status *InvoiceStatus // Filter by settlement status
}

// InvoiceRepository defines the interface for invoice persistence. The
// ledger core never fetches invoices itself; this is the boundary the
// invoice store collaborator implements.
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByInvoiceNo finds an invoice by its display code
	FindByInvoiceNo(ctx context.Context, invoiceNo string) (*Invoice, error)

	// FindAll finds invoices matching the filter
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with an optimistic version check, returning
	// shared.ErrConcurrencyConflict when another writer got there first
	SaveWithLock(ctx context.Context, invoice *Invoice) error
}

// PaymentRepository is the commit sink for payment history entries
type PaymentRepository interface {
	// Save persists a committed payment history entry
	Save(ctx context.Context, payment *Payment) error

	// FindByInvoice lists payment history for an invoice, newest first
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
}
