package handler

import (
	"fmt"
	"net/http"
	"time"

	billingapp "github.com/fleetops/backend/internal/application/billing"
	"github.com/fleetops/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// utf8BOM prefixes CSV downloads so spreadsheet tools detect the encoding.
const utf8BOM = "\xEF\xBB\xBF"

// InvoiceHandler handles invoice ledger API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// ===================== Request/Response DTOs =====================

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID           string     `json:"id"`
	InvoiceNo    string     `json:"invoice_no"`
	CustomerName string     `json:"customer_name"`
	OrderCode    string     `json:"order_code,omitempty"`
	Total        int64      `json:"total"`
	Paid         int64      `json:"paid"`
	Balance      int64      `json:"balance"`
	Status       string     `json:"status"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// PaymentResponse represents a payment history entry in API responses
type PaymentResponse struct {
	ID          string              `json:"id"`
	InvoiceID   string              `json:"invoice_id"`
	Amount      int64               `json:"amount"`
	Method      string              `json:"method"`
	Kind        string              `json:"kind"`
	PaidOn      string              `json:"paid_on"`
	Note        string              `json:"note,omitempty"`
	Bank        *BankDetailsPayload `json:"bank,omitempty"`
	Attachments []AttachmentPayload `json:"attachments,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// BankDetailsPayload carries the transfer fields of a payment
type BankDetailsPayload struct {
	AccountNumber string `json:"account_number" binding:"omitempty,max=50"`
	BankName      string `json:"bank_name,omitempty" binding:"omitempty,max=100"`
	Reference     string `json:"reference,omitempty" binding:"omitempty,max=100"`
}

// AttachmentPayload describes a file attached to a payment
type AttachmentPayload struct {
	Name        string `json:"name" binding:"required,max=255"`
	Size        int64  `json:"size" binding:"min=0"`
	ContentType string `json:"content_type,omitempty" binding:"omitempty,max=100"`
}

// CreateInvoiceRequest represents a request to raise an invoice
type CreateInvoiceRequest struct {
	InvoiceNo    string `json:"invoice_no" binding:"required,max=50"`
	CustomerName string `json:"customer_name" binding:"required,max=255"`
	OrderCode    string `json:"order_code" binding:"omitempty,max=100"`
	Total        any    `json:"total" binding:"required"`
	DueAt        string `json:"due_at" binding:"omitempty,isodate"`
}

// RecordPaymentRequest represents a candidate payment against an invoice
type RecordPaymentRequest struct {
	Amount       any                 `json:"amount" binding:"required"`
	Method       string              `json:"method" binding:"required"`
	Date         string              `json:"date" binding:"required"`
	Kind         string              `json:"kind" binding:"omitempty,oneof=DEPOSIT PAYMENT"`
	Note         string              `json:"note" binding:"omitempty,max=500"`
	Bank         BankDetailsPayload  `json:"bank"`
	Attachments  []AttachmentPayload `json:"attachments" binding:"omitempty,dive"`
	AllowOverpay *bool               `json:"allow_overpay"`
}

// RecordPaymentResponse represents the outcome of a committed payment
type RecordPaymentResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Payment PaymentResponse `json:"payment"`
	Overpay bool            `json:"overpay"`
}

// ProposalResponse represents a proposed payment amount for an invoice
type ProposalResponse struct {
	InvoiceID string `json:"invoice_id"`
	Remaining int64  `json:"remaining"`
	Amount    int64  `json:"amount"`
	Preset    string `json:"preset"`
}

// ListInvoicesRequest represents invoice listing query parameters
type ListInvoicesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	DebtMode bool   `form:"debt_mode"`
}

// ExportInvoicesRequest represents CSV export query parameters
type ExportInvoicesRequest struct {
	DebtMode bool   `form:"debt_mode"`
	Search   string `form:"search"`
}

func toInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:           inv.ID.String(),
		InvoiceNo:    inv.InvoiceNo,
		CustomerName: inv.CustomerName,
		OrderCode:    inv.OrderCode,
		Total:        inv.Total,
		Paid:         inv.Paid,
		Balance:      inv.Balance(),
		Status:       inv.Status.String(),
		DueAt:        inv.DueAt,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
		Version:      inv.Version,
	}
}

func toInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = toInvoiceResponse(&invoices[i])
	}
	return responses
}

func toPaymentResponse(p *billing.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:        p.ID.String(),
		InvoiceID: p.InvoiceID.String(),
		Amount:    p.Amount,
		Method:    p.Method.String(),
		Kind:      string(p.Kind),
		PaidOn:    p.PaidOn.Format(billing.PaymentDateLayout),
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
	}
	if p.Bank != (billing.BankDetails{}) {
		resp.Bank = &BankDetailsPayload{
			AccountNumber: p.Bank.AccountNumber,
			BankName:      p.Bank.BankName,
			Reference:     p.Bank.Reference,
		}
	}
	for _, a := range p.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentPayload{
			Name:        a.Name,
			Size:        a.Size,
			ContentType: a.ContentType,
		})
	}
	return resp
}

func toPaymentResponses(payments []billing.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = toPaymentResponse(&payments[i])
	}
	return responses
}

// ===================== Invoice Handlers =====================

// CreateInvoice handles POST /invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var dueAt *time.Time
	if req.DueAt != "" {
		parsed, err := time.Parse(billing.PaymentDateLayout, req.DueAt)
		if err != nil {
			h.BadRequest(c, "Due date must be a valid YYYY-MM-DD date")
			return
		}
		dueAt = &parsed
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), billingapp.CreateInvoiceInput{
		InvoiceNo:    req.InvoiceNo,
		CustomerName: req.CustomerName,
		OrderCode:    req.OrderCode,
		Total:        req.Total,
		DueAt:        dueAt,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toInvoiceResponse(invoice))
}

// ListInvoices handles GET /invoices
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), billingapp.ListInvoicesInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		Status:   req.Status,
		Search:   req.Search,
		DebtMode: req.DebtMode,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toInvoiceResponses(result.Items), result.Total, result.Page, result.PageSize)
}

// GetInvoice handles GET /invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toInvoiceResponse(invoice))
}

// ProposePayment handles GET /invoices/:id/proposal
func (h *InvoiceHandler) ProposePayment(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	proposal, err := h.invoiceService.ProposePayment(c.Request.Context(), invoiceID, c.Query("preset"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ProposalResponse{
		InvoiceID: proposal.InvoiceID.String(),
		Remaining: proposal.Remaining,
		Amount:    proposal.Amount,
		Preset:    string(proposal.Preset),
	})
}

// RecordPayment handles POST /invoices/:id/payments
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	attachments := make([]billing.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, billing.Attachment{
			Name:        a.Name,
			Size:        a.Size,
			ContentType: a.ContentType,
		})
	}

	result, err := h.invoiceService.RecordPayment(c.Request.Context(), billingapp.RecordPaymentInput{
		InvoiceID: invoiceID,
		Request: billing.PaymentRequest{
			Amount: billing.NormalizeAmount(req.Amount),
			Method: billing.PaymentMethod(req.Method),
			Date:   req.Date,
			Kind:   billing.PaymentKind(req.Kind),
			Note:   req.Note,
			Bank: billing.BankDetails{
				AccountNumber: req.Bank.AccountNumber,
				BankName:      req.Bank.BankName,
				Reference:     req.Bank.Reference,
			},
			Attachments: attachments,
		},
		AllowOverpay: req.AllowOverpay,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, RecordPaymentResponse{
		Invoice: toInvoiceResponse(&result.Invoice),
		Payment: toPaymentResponse(result.Payment),
		Overpay: result.Overpay,
	})
}

// ListPayments handles GET /invoices/:id/payments
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toPaymentResponses(payments))
}

// ExportInvoices handles GET /invoices/export
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	var req ExportInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	csv, err := h.invoiceService.ExportInvoices(c.Request.Context(), req.DebtMode, req.Search)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	filename := fmt.Sprintf("invoices_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(utf8BOM+csv))
}
