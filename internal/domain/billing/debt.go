package billing

import (
	"math"
	"sort"
)

// debtRank orders statuses by collection urgency
func debtRank(s InvoiceStatus) int {
	switch s {
	case StatusOverdue:
		return 0
	case StatusUnpaid:
		return 1
	default:
		return 2
	}
}

// dueKey maps a due date to a sortable key. Invoices with no due date sort
// after every dated invoice in the same bucket.
func dueKey(inv Invoice) int64 {
	if inv.DueAt == nil {
		return math.MaxInt64
	}
	return inv.DueAt.Unix()
}

// CompareDebtPriority is a total order over invoices for debt-collection
// views: OVERDUE before UNPAID before PAID, then ascending due date within
// each bucket. Returns a negative value when a is more urgent than b.
func CompareDebtPriority(a, b Invoice) int {
	if ra, rb := debtRank(a.Status), debtRank(b.Status); ra != rb {
		return ra - rb
	}
	da, db := dueKey(a), dueKey(b)
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	default:
		return 0
	}
}

// SortDebtPriority sorts invoices in place by collection priority. The sort
// is stable, so invoices tying on status and due date retain their incoming
// order.
func SortDebtPriority(invoices []Invoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		return CompareDebtPriority(invoices[i], invoices[j]) < 0
	})
}

// FilterOutstanding returns only the invoices that still carry debt. The
// debt-mode view applies this before sorting, so PAID invoices never appear.
func FilterOutstanding(invoices []Invoice) []Invoice {
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status.IsOutstanding() {
			out = append(out, inv)
		}
	}
	return out
}
