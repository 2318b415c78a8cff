// Package status collapses the raw status labels scattered across the
// transactional tables into a small canonical vocabulary. The stores have
// been written and rewritten over several storefront generations, so the
// same business state shows up as a legacy Korean label, an old short code
// or a canonical value depending on row age. Normalization is a pure
// lookup: unknown input maps to the neutral member, never an error.
package status

import "strings"

// Payment is the canonical payment state of a record.
type Payment string

const (
	PaymentPaid    Payment = "PAID"
	PaymentPending Payment = "PENDING"
	PaymentOther   Payment = "OTHER"
)

// Cancel is the canonical cancellation state of a record.
type Cancel string

const (
	CancelNone      Cancel = "NONE"
	CancelRequested Cancel = "REQUESTED"
	CancelApproved  Cancel = "APPROVED"
	CancelRejected  Cancel = "REJECTED"
)

// Equivalence sets. Every canonical value is a member of its own set so
// that normalizing twice is the identity.
var paymentSets = map[Payment][]string{
	PaymentPaid: {
		string(PaymentPaid),
		"paid",
		"결제완료",
		"payment_completed",
		"complete",
		"completed",
	},
	PaymentPending: {
		string(PaymentPending),
		"pending",
		"입금대기",
		"결제대기",
		"awaiting_deposit",
		"unpaid",
	},
}

var cancelSets = map[Cancel][]string{
	CancelRequested: {
		string(CancelRequested),
		"cancel_requested",
		"취소요청",
	},
	CancelApproved: {
		string(CancelApproved),
		"cancel_approved",
		"cancelled",
		"canceled",
		"취소완료",
	},
	CancelRejected: {
		string(CancelRejected),
		"cancel_rejected",
		"취소거부",
	},
	CancelNone: {
		string(CancelNone),
		"none",
		"",
	},
}

var (
	paymentByRaw = make(map[string]Payment)
	cancelByRaw  = make(map[string]Cancel)
)

func init() {
	for canonical, raws := range paymentSets {
		for _, r := range raws {
			paymentByRaw[r] = canonical
		}
	}
	for canonical, raws := range cancelSets {
		for _, r := range raws {
			cancelByRaw[r] = canonical
		}
	}
}

// NormalizePayment maps a raw payment label onto its canonical value.
// Unrecognized labels (refunds, failures, typos) normalize to PaymentOther.
func NormalizePayment(raw string) Payment {
	if p, ok := paymentByRaw[strings.TrimSpace(raw)]; ok {
		return p
	}
	return PaymentOther
}

// NormalizeCancel maps a raw cancellation label onto its canonical value.
// Unrecognized labels normalize to CancelNone.
func NormalizeCancel(raw string) Cancel {
	if c, ok := cancelByRaw[strings.TrimSpace(raw)]; ok {
		return c
	}
	return CancelNone
}

// PaymentLabels returns every raw label of the canonical payment status,
// for expansion into SQL IN clauses. PaymentOther is an open class and has
// no enumerable label set.
func PaymentLabels(p Payment) []string {
	set, ok := paymentSets[p]
	if !ok {
		return nil
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}

// CancelLabels returns every raw label of the canonical cancel status.
func CancelLabels(c Cancel) []string {
	set, ok := cancelSets[c]
	if !ok {
		return nil
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}
