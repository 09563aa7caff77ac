package models

import (
	"encoding/json"
	"time"

	"github.com/fleetops/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// InvoiceModel is the persistence model for billing.Invoice
type InvoiceModel struct {
	AggregateModel
	InvoiceNo    string     `gorm:"size:50;not null;uniqueIndex"`
	CustomerName string     `gorm:"size:255;not null"`
	OrderCode    string     `gorm:"size:100"`
	Total        int64      `gorm:"not null"`
	Paid         int64      `gorm:"not null;default:0"`
	Status       string     `gorm:"size:20;not null;index"`
	DueAt        *time.Time `gorm:"index"`
}

// TableName specifies the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts InvoiceModel to domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		InvoiceNo:    m.InvoiceNo,
		CustomerName: m.CustomerName,
		OrderCode:    m.OrderCode,
		Total:        m.Total,
		Paid:         m.Paid,
		Status:       billing.InvoiceStatus(m.Status),
		DueAt:        m.DueAt,
	}
	m.PopulateAggregateRoot(&inv.BaseAggregateRoot)
	return inv
}

// InvoiceModelFromDomain converts domain Invoice to InvoiceModel
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	model := &InvoiceModel{
		InvoiceNo:    inv.InvoiceNo,
		CustomerName: inv.CustomerName,
		OrderCode:    inv.OrderCode,
		Total:        inv.Total,
		Paid:         inv.Paid,
		Status:       inv.Status.String(),
		DueAt:        inv.DueAt,
	}
	model.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	return model
}

// PaymentModel is the persistence model for billing.Payment.
// Bank details and attachments are stored as jsonb documents.
type PaymentModel struct {
	BaseModel
	InvoiceID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount          int64     `gorm:"not null"`
	Method          string    `gorm:"size:20;not null"`
	Kind            string    `gorm:"size:20;not null"`
	PaidOn          time.Time `gorm:"type:date;not null"`
	Note            string    `gorm:"size:500"`
	BankJSON        string    `gorm:"column:bank;type:jsonb;default:'{}'"`
	AttachmentsJSON string    `gorm:"column:attachments;type:jsonb;default:'[]'"`
}

// TableName specifies the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts PaymentModel to domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	p := &billing.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		InvoiceID:  m.InvoiceID,
		Amount:     m.Amount,
		Method:     billing.PaymentMethod(m.Method),
		Kind:       billing.PaymentKind(m.Kind),
		PaidOn:     m.PaidOn,
		Note:       m.Note,
	}
	if m.BankJSON != "" {
		_ = json.Unmarshal([]byte(m.BankJSON), &p.Bank)
	}
	if m.AttachmentsJSON != "" {
		_ = json.Unmarshal([]byte(m.AttachmentsJSON), &p.Attachments)
	}
	return p
}

// PaymentModelFromDomain converts domain Payment to PaymentModel
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	model := &PaymentModel{
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    p.Method.String(),
		Kind:      string(p.Kind),
		PaidOn:    p.PaidOn,
		Note:      p.Note,
	}
	model.FromDomainBaseEntity(p.BaseEntity)
	if bankBytes, err := json.Marshal(p.Bank); err == nil {
		model.BankJSON = string(bankBytes)
	}
	attachments := p.Attachments
	if attachments == nil {
		attachments = []billing.Attachment{}
	}
	if attachmentBytes, err := json.Marshal(attachments); err == nil {
		model.AttachmentsJSON = string(attachmentBytes)
	}
	return model
}
