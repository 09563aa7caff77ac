package billing

import (
	"strings"
	"time"

	"github.com/fleetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	return m == MethodCash || m == MethodBankTransfer
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentKind distinguishes deposits from regular payments. It is purely
// informational and never affects balance math.
type PaymentKind string

const (
	KindDeposit PaymentKind = "DEPOSIT"
	KindPayment PaymentKind = "PAYMENT"
)

// IsValid checks if the kind is a valid PaymentKind
func (k PaymentKind) IsValid() bool {
	return k == KindDeposit || k == KindPayment
}

// BankDetails carries the transfer-specific fields of a payment.
// AccountNumber is required for bank transfers; the rest is optional.
type BankDetails struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name,omitempty"`
	Reference     string `json:"reference,omitempty"`
}

// Attachment is an opaque file descriptor attached to a payment. The ledger
// stores name/size/type only; file contents are handled elsewhere.
type Attachment struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// PaymentDateLayout is the calendar date format payment requests carry.
const PaymentDateLayout = "2006-01-02"

// PaymentRequest is a candidate payment that has not been committed yet.
// It has no identity of its own until the ledger folds its amount into an
// invoice.
type PaymentRequest struct {
	Amount      int64
	Method      PaymentMethod
	Date        string // ISO calendar date, YYYY-MM-DD
	Kind        PaymentKind
	Note        string
	Bank        BankDetails
	Attachments []Attachment
}

// ValidationResult reports the outcome of payment validation. At most one
// failure reason is carried, selected by the first violated rule; the UI
// shows a single inline message near the amount field.
type ValidationResult struct {
	OK      bool   `json:"ok"`
	Overpay bool   `json:"overpay"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func invalid(code, reason string) ValidationResult {
	return ValidationResult{Code: code, Reason: reason}
}

// Validate enforces structural and business validity of the request against
// the invoice's remaining balance. Rules are checked in fixed precedence
// order: amount, method, date, bank fields, overpay. An overpaying request
// passes when allowOverpay is set, with the Overpay flag raised so callers
// can warn before commit.
func (r PaymentRequest) Validate(remaining int64, allowOverpay bool) ValidationResult {
	if r.Amount <= 0 {
		return invalid("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !r.Method.IsValid() {
		return invalid("INVALID_METHOD", "Payment method must be CASH or BANK_TRANSFER")
	}
	if _, err := time.Parse(PaymentDateLayout, r.Date); err != nil {
		return invalid("INVALID_DATE", "Payment date must be a valid YYYY-MM-DD date")
	}
	if r.Method == MethodBankTransfer && strings.TrimSpace(r.Bank.AccountNumber) == "" {
		return invalid("MISSING_BANK_ACCOUNT", "Bank account number is required for bank transfers")
	}
	overpay := r.Amount > remaining
	if overpay && !allowOverpay {
		return ValidationResult{
			Overpay: true,
			Code:    "EXCEEDS_OUTSTANDING",
			Reason:  "Payment amount exceeds the outstanding balance",
		}
	}
	return ValidationResult{OK: true, Overpay: overpay}
}

// Payment is a committed payment history entry persisted alongside the
// invoice it settled against.
type Payment struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID
	Amount      int64
	Method      PaymentMethod
	Kind        PaymentKind
	PaidOn      time.Time // calendar date of the payment
	Note        string
	Bank        BankDetails
	Attachments []Attachment
}

// NewPayment creates a history entry from a validated request. The request
// date must already have passed validation.
func NewPayment(invoiceID uuid.UUID, req PaymentRequest) (*Payment, error) {
	paidOn, err := time.Parse(PaymentDateLayout, req.Date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date must be a valid YYYY-MM-DD date")
	}
	kind := req.Kind
	if kind == "" {
		kind = KindPayment
	}
	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   invoiceID,
		Amount:      req.Amount,
		Method:      req.Method,
		Kind:        kind,
		PaidOn:      paidOn,
		Note:        req.Note,
		Bank:        req.Bank,
		Attachments: req.Attachments,
	}, nil
}
