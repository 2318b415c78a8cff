package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaymentEquivalenceClasses(t *testing.T) {
	tests := []struct {
		raw  string
		want Payment
	}{
		{"PAID", PaymentPaid},
		{"paid", PaymentPaid},
		{"결제완료", PaymentPaid},
		{"payment_completed", PaymentPaid},
		{" complete ", PaymentPaid},
		{"PENDING", PaymentPending},
		{"입금대기", PaymentPending},
		{"결제대기", PaymentPending},
		{"unpaid", PaymentPending},
		{"refunded", PaymentOther},
		{"환불완료", PaymentOther},
		{"", PaymentOther},
		{"garbage", PaymentOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePayment(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeCancelEquivalenceClasses(t *testing.T) {
	tests := []struct {
		raw  string
		want Cancel
	}{
		{"REQUESTED", CancelRequested},
		{"취소요청", CancelRequested},
		{"cancel_requested", CancelRequested},
		{"APPROVED", CancelApproved},
		{"취소완료", CancelApproved},
		{"cancelled", CancelApproved},
		{"canceled", CancelApproved},
		{"REJECTED", CancelRejected},
		{"취소거부", CancelRejected},
		{"", CancelNone},
		{"none", CancelNone},
		{"whatever", CancelNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCancel(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, raws := range paymentSets {
		for _, raw := range raws {
			once := NormalizePayment(raw)
			assert.Equal(t, once, NormalizePayment(string(once)))
		}
	}
	assert.Equal(t, PaymentOther, NormalizePayment(string(PaymentOther)))

	for _, raws := range cancelSets {
		for _, raw := range raws {
			once := NormalizeCancel(raw)
			assert.Equal(t, once, NormalizeCancel(string(once)))
		}
	}
}

func TestPaymentLabelsRoundTrip(t *testing.T) {
	labels := PaymentLabels(PaymentPaid)
	assert.NotEmpty(t, labels)
	for _, l := range labels {
		assert.Equal(t, PaymentPaid, NormalizePayment(l))
	}
	assert.Nil(t, PaymentLabels(PaymentOther))
}

func TestLifecycleMembership(t *testing.T) {
	assert.True(t, IsTerminalOrder("배송완료"))
	assert.True(t, IsTerminalOrder("delivered"))
	assert.False(t, IsTerminalOrder("preparing"))

	assert.True(t, IsPickupMethod("방문수령"))
	assert.False(t, IsPickupMethod("courier"))

	assert.True(t, IsUnresolvedApplication("검토중"))
	assert.True(t, IsUnresolvedApplication("in review"))
	assert.False(t, IsUnresolvedApplication("완료"))

	assert.True(t, IsCheckedOut("checked out"))
	assert.True(t, IsCheckedOut("대여중"))
	assert.False(t, IsCheckedOut("returned"))

	assert.True(t, IsActivePass("active"))
	assert.False(t, IsActivePass("expired"))
}
