package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fleetops/backend/internal/domain/billing"
	"github.com/fleetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService orchestrates the invoice payment ledger: it loads invoice
// state from the store, runs the domain's allocation/validation/apply
// pipeline, and hands committed results back to the store. All time reads go
// through an injected clock so status transitions stay deterministic.
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	paymentRepo    billing.PaymentRepository
	allowOverpay   bool
	percentPresets []int64
	now            func() time.Time
}

// InvoiceServiceOption configures an InvoiceService
type InvoiceServiceOption func(*InvoiceService)

// WithClock overrides the service clock (tests, replays)
func WithClock(now func() time.Time) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.now = now
	}
}

// WithOverpayPolicy sets the default overpay policy for payment validation
func WithOverpayPolicy(allow bool) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.allowOverpay = allow
	}
}

// WithPercentPresets sets the percentage shortcuts offered to callers
func WithPercentPresets(presets []int64) InvoiceServiceOption {
	return func(s *InvoiceService) {
		if len(presets) > 0 {
			s.percentPresets = presets
		}
	}
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, paymentRepo billing.PaymentRepository, opts ...InvoiceServiceOption) *InvoiceService {
	s := &InvoiceService{
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
		percentPresets: []int64{30, 50},
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PercentPresets returns the configured percentage shortcuts
func (s *InvoiceService) PercentPresets() []int64 {
	return s.percentPresets
}

// CreateInvoiceInput carries the fields for raising an invoice from a
// completed transport order
type CreateInvoiceInput struct {
	InvoiceNo    string
	CustomerName string
	OrderCode    string
	Total        any
	DueAt        *time.Time
}

// CreateInvoice raises a new invoice with nothing paid yet
func (s *InvoiceService) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*billing.Invoice, error) {
	existing, err := s.invoiceRepo.FindByInvoiceNo(ctx, in.InvoiceNo)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check invoice number: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Invoice %s already exists", in.InvoiceNo))
	}

	inv, err := billing.NewInvoice(in.InvoiceNo, in.CustomerName, in.OrderCode, in.Total, in.DueAt, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	return inv, nil
}

// GetInvoice loads a single invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Status = billing.ComputeStatus(inv.Total, inv.Paid, inv.DueAt, s.now())
	return inv, nil
}

// refreshStatus re-derives each invoice's status against the current clock.
// The stored status is a snapshot from the last write and goes stale once a
// due date passes; read paths serve the derived value instead.
func (s *InvoiceService) refreshStatus(invoices []billing.Invoice) {
	today := s.now()
	for i := range invoices {
		invoices[i].Status = billing.ComputeStatus(invoices[i].Total, invoices[i].Paid, invoices[i].DueAt, today)
	}
}

// ListInvoicesInput carries listing parameters
type ListInvoicesInput struct {
	Page     int
	PageSize int
	Status   string
	Search   string
	DebtMode bool
}

// ListInvoices returns a page of invoices. In debt mode the result is
// restricted to outstanding invoices and ordered by collection priority;
// otherwise it follows the store's creation-time ordering.
func (s *InvoiceService) ListInvoices(ctx context.Context, in ListInvoicesInput) (shared.Paginated[billing.Invoice], error) {
	if in.DebtMode {
		return s.listDebtMode(ctx, in)
	}

	filter := billing.InvoiceFilter{Filter: shared.DefaultFilter()}
	if in.Page > 0 {
		filter.Page = in.Page
	}
	if in.PageSize > 0 {
		filter.PageSize = in.PageSize
	}
	filter.Search = in.Search
	if in.Status != "" {
		status := billing.InvoiceStatus(in.Status)
		if !status.IsValid() {
			return shared.Paginated[billing.Invoice]{}, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown invoice status %q", in.Status))
		}
		filter.Status = &status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, fmt.Errorf("failed to list invoices: %w", err)
	}
	s.refreshStatus(invoices)
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, fmt.Errorf("failed to count invoices: %w", err)
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.PageSize), nil
}

// listDebtMode fetches every outstanding invoice, orders it by collection
// priority in the domain, and pages the sorted result in memory. The
// priority order needs the whole set, so store-side paging is bypassed.
func (s *InvoiceService) listDebtMode(ctx context.Context, in ListInvoicesInput) (shared.Paginated[billing.Invoice], error) {
	invoices, err := s.fetchOutstanding(ctx, in.Search)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, err
	}

	page, pageSize := in.Page, in.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	total := int64(len(invoices))
	start := (page - 1) * pageSize
	if start > len(invoices) {
		start = len(invoices)
	}
	end := start + pageSize
	if end > len(invoices) {
		end = len(invoices)
	}
	return shared.NewPaginated(invoices[start:end], total, page, pageSize), nil
}

func (s *InvoiceService) fetchOutstanding(ctx context.Context, search string) ([]billing.Invoice, error) {
	// PageSize 0 disables store-side paging.
	filter := billing.InvoiceFilter{Filter: shared.Filter{Search: search, OrderBy: "due_at", OrderDir: "asc"}}
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	s.refreshStatus(invoices)
	outstanding := billing.FilterOutstanding(invoices)
	billing.SortDebtPriority(outstanding)
	return outstanding, nil
}

// ProposalResult is a proposed payment amount for an invoice
type ProposalResult struct {
	InvoiceID uuid.UUID      `json:"invoice_id"`
	Remaining int64          `json:"remaining"`
	Amount    int64          `json:"amount"`
	Preset    billing.Preset `json:"preset"`
}

// ProposePayment computes the amount a preset shortcut would pre-fill for
// an invoice. Preset "all" (or empty) proposes the full remainder; a numeric
// preset must be one of the configured percentages.
func (s *InvoiceService) ProposePayment(ctx context.Context, id uuid.UUID, preset string) (*ProposalResult, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	alloc := billing.NewAllocator(inv.Total, inv.Paid)
	result := &ProposalResult{InvoiceID: inv.ID, Remaining: alloc.Remaining()}

	switch preset {
	case "", "all", "ALL":
		result.Amount = alloc.ProposeAll()
		result.Preset = billing.ResolvePreset(result.Amount, alloc.Remaining())
		return result, nil
	default:
		pct, err := strconv.ParseInt(preset, 10, 64)
		if err != nil || !s.isConfiguredPreset(pct) {
			return nil, shared.NewDomainError("INVALID_PRESET", fmt.Sprintf("Unknown allocation preset %q", preset))
		}
		result.Amount = alloc.ProposePercent(pct)
		result.Preset = billing.PercentPreset(pct)
		return result, nil
	}
}

func (s *InvoiceService) isConfiguredPreset(pct int64) bool {
	for _, p := range s.percentPresets {
		if p == pct {
			return true
		}
	}
	return false
}

// RecordPaymentInput carries a candidate payment for an invoice.
// AllowOverpay overrides the service-wide policy when set.
type RecordPaymentInput struct {
	InvoiceID    uuid.UUID
	Request      billing.PaymentRequest
	AllowOverpay *bool
}

// RecordPaymentResult is the outcome of a committed payment
type RecordPaymentResult struct {
	Invoice billing.Invoice  `json:"invoice"`
	Payment *billing.Payment `json:"payment"`
	Overpay bool             `json:"overpay"`
}

// RecordPayment validates the candidate payment against the invoice's
// outstanding balance, applies it, persists the updated invoice with an
// optimistic version check, and records a payment history entry. An invalid
// request is rejected with the validator's single failure reason and nothing
// is written.
func (s *InvoiceService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*RecordPaymentResult, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, in.InvoiceID)
	if err != nil {
		return nil, err
	}

	allowOverpay := s.allowOverpay
	if in.AllowOverpay != nil {
		allowOverpay = *in.AllowOverpay
	}

	validation := in.Request.Validate(inv.Balance(), allowOverpay)
	if !validation.OK {
		return nil, shared.NewDomainError(validation.Code, validation.Reason)
	}

	updated := inv.ApplyPayment(in.Request.Amount, s.now())
	if err := s.invoiceRepo.SaveWithLock(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	payment, err := billing.NewPayment(inv.ID, in.Request)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment record: %w", err)
	}

	return &RecordPaymentResult{
		Invoice: updated,
		Payment: payment,
		Overpay: validation.Overpay,
	}, nil
}

// ListPayments returns the payment history of an invoice, newest first
func (s *InvoiceService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindByInvoice(ctx, invoiceID)
}

// ExportInvoices serializes invoices to the delimited ledger format. In debt
// mode only outstanding invoices are exported, in collection-priority order.
func (s *InvoiceService) ExportInvoices(ctx context.Context, debtMode bool, search string) (string, error) {
	var invoices []billing.Invoice
	var err error
	if debtMode {
		invoices, err = s.fetchOutstanding(ctx, search)
	} else {
		filter := billing.InvoiceFilter{Filter: shared.Filter{Search: search, OrderBy: "created_at", OrderDir: "desc"}}
		invoices, err = s.invoiceRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return "", err
	}
	if !debtMode {
		s.refreshStatus(invoices)
	}
	return billing.ExportCSV(invoices), nil
}
