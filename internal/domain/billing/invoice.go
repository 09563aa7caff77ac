package billing

import (
	"fmt"
	"time"

	"github.com/fleetops/backend/internal/domain/shared"
)

// InvoiceStatus represents the settlement status of an invoice
type InvoiceStatus string

const (
	StatusUnpaid  InvoiceStatus = "UNPAID"  // Outstanding, due date not passed
	StatusPaid    InvoiceStatus = "PAID"    // Fully settled
	StatusOverdue InvoiceStatus = "OVERDUE" // Outstanding past its due date
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsOutstanding returns true if the invoice still carries receivable debt
func (s InvoiceStatus) IsOutstanding() bool {
	return s == StatusUnpaid || s == StatusOverdue
}

// Invoice represents a billable document raised against a completed
// transport order. Amounts are integer minor currency units; Paid only ever
// grows, and Status is always derived from the balance and due date rather
// than set independently.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNo    string
	CustomerName string
	OrderCode    string
	Total        int64
	Paid         int64
	Status       InvoiceStatus
	DueAt        *time.Time
}

// NewInvoice creates an invoice for a completed order with nothing paid yet.
// The total is normalized before validation, so formatted string input is
// accepted the same way the payment form accepts it.
func NewInvoice(invoiceNo, customerName, orderCode string, total any, dueAt *time.Time, today time.Time) (*Invoice, error) {
	if invoiceNo == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NO", "Invoice number cannot be empty")
	}
	if len(invoiceNo) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NO", "Invoice number cannot exceed 50 characters")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	amount := NormalizeAmount(total)
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice total must be positive")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNo:         invoiceNo,
		CustomerName:      customerName,
		OrderCode:         orderCode,
		Total:             amount,
		Paid:              0,
		DueAt:             dueAt,
	}
	inv.Status = ComputeStatus(inv.Total, inv.Paid, inv.DueAt, today)
	return inv, nil
}

// Balance returns the outstanding amount, never negative.
func (inv Invoice) Balance() int64 {
	b := inv.Total - inv.Paid
	if b < 0 {
		return 0
	}
	return b
}

// ComputeStatus derives the invoice status from the current balance and due
// date. It is a pure function of its inputs, not of any previous status:
// a cleared balance is PAID no matter how late, and extending a due date
// flips OVERDUE back to UNPAID.
func ComputeStatus(total, paid int64, dueAt *time.Time, today time.Time) InvoiceStatus {
	balance := total - paid
	if balance <= 0 {
		return StatusPaid
	}
	if dueAt != nil && beforeDay(*dueAt, today) {
		return StatusOverdue
	}
	return StatusUnpaid
}

// beforeDay reports whether a falls on an earlier calendar day than b,
// ignoring the time of day.
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// ApplyPayment folds a validated payment amount into the invoice and
// recomputes the status as of now. It returns an updated copy; the receiver
// is left untouched so callers keep a consistent pre-payment view.
//
// The amount must already have passed payment validation. Calling this with
// a non-positive amount, or on an invoice holding negative amounts, is a
// programming error and panics.
func (inv Invoice) ApplyPayment(amount int64, now time.Time) Invoice {
	if amount <= 0 {
		panic(fmt.Sprintf("billing: ApplyPayment called with non-positive amount %d", amount))
	}
	if inv.Total < 0 || inv.Paid < 0 {
		panic(fmt.Sprintf("billing: ApplyPayment on invoice %s with non-normalized amounts", inv.InvoiceNo))
	}

	out := inv
	out.Paid = inv.Paid + amount
	out.Status = ComputeStatus(out.Total, out.Paid, out.DueAt, now)
	out.UpdatedAt = now
	out.IncrementVersion()
	return out
}
