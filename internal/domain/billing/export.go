package billing

import (
	"strconv"
	"strings"
)

// exportColumns is the fixed header of the ledger export.
var exportColumns = []string{
	"invoice_no", "customer", "order_code",
	"total", "paid", "balance",
	"status", "created_at", "due_at",
}

// ExportCSV serializes invoices into a delimited table for offline
// consumption. Text fields are always quoted so embedded delimiters survive;
// numeric fields stay bare. The balance column is recomputed from total and
// paid rather than trusted from any stored field. Rows end with CRLF.
//
// Output is plain Unicode text; callers writing it to a file are responsible
// for prefixing a byte-order mark where spreadsheet tools need one.
func ExportCSV(invoices []Invoice) string {
	var b strings.Builder
	b.WriteString(strings.Join(exportColumns, ","))
	b.WriteString("\r\n")

	for _, inv := range invoices {
		dueAt := ""
		if inv.DueAt != nil {
			dueAt = inv.DueAt.Format(PaymentDateLayout)
		}
		fields := []string{
			quoteField(inv.InvoiceNo),
			quoteField(inv.CustomerName),
			quoteField(inv.OrderCode),
			strconv.FormatInt(inv.Total, 10),
			strconv.FormatInt(inv.Paid, 10),
			strconv.FormatInt(inv.Balance(), 10),
			quoteField(inv.Status.String()),
			quoteField(inv.CreatedAt.Format(PaymentDateLayout)),
			quoteField(dueAt),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\r\n")
	}
	return b.String()
}

// quoteField wraps a text field in double quotes, doubling embedded quotes.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
