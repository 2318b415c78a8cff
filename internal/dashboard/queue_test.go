package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/timewindow"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, timewindow.Location())

func orderCand(id int, created time.Time, payment, lifecycle, cancel string) entity.QueueCandidate {
	return entity.QueueCandidate{
		Kind:               "order",
		ID:                 id,
		PublicID:           fmt.Sprintf("ord-%d", id),
		CreatedAt:          created,
		DisplayName:        "김민준",
		Amount:             decimal.NewFromInt(42000),
		RawPaymentStatus:   payment,
		RawLifecycleStatus: lifecycle,
		RawCancelStatus:    cancel,
	}
}

func TestPaymentPendingQueue(t *testing.T) {
	cands := []entity.QueueCandidate{
		orderCand(1, testNow.Add(-30*time.Hour), "입금대기", "주문접수", ""),
		// young orders are still inside the grace period
		orderCand(2, testNow.Add(-10*time.Hour), "입금대기", "주문접수", ""),
		// a requested cancellation moves the order to the cancel queue
		orderCand(3, testNow.Add(-50*time.Hour), "pending", "주문접수", "취소요청"),
		orderCand(4, testNow.Add(-30*time.Hour), "결제완료", "주문접수", ""),
	}

	got := paymentPendingQueue(testNow, cands)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, "ord-1", got.Items[0].ID)
	assert.Equal(t, entity.AgeHoursAgo, got.Items[0].AgeMetric)
	assert.Equal(t, 30, got.Items[0].AgeValue)
	assert.Equal(t, "/admin/orders/ord-1", got.Items[0].Target)
}

func TestCancelRequestedQueueIgnoresAge(t *testing.T) {
	cands := []entity.QueueCandidate{
		orderCand(1, testNow.Add(-1*time.Hour), "결제완료", "주문접수", "취소요청"),
		orderCand(2, testNow.Add(-3*time.Hour), "결제완료", "주문접수", "cancel_rejected"),
	}

	got := cancelRequestedQueue(testNow, cands)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "ord-1", got.Items[0].ID)
	assert.Equal(t, 1, got.Items[0].AgeValue)
}

func TestShippingPendingQueue(t *testing.T) {
	pickup := orderCand(2, testNow.Add(-5*time.Hour), "paid", "배송준비", "")
	pickup.ShippingMethod = "매장수령"
	tracked := orderCand(3, testNow.Add(-5*time.Hour), "paid", "배송준비", "")
	tracked.HasTracking = true

	cands := []entity.QueueCandidate{
		orderCand(1, testNow.Add(-5*time.Hour), "결제완료", "배송준비", ""),
		pickup,
		tracked,
		orderCand(4, testNow.Add(-5*time.Hour), "paid", "구매확정", ""),
		orderCand(5, testNow.Add(-5*time.Hour), "입금대기", "배송준비", ""),
	}

	got := shippingPendingQueue(testNow, cands)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "ord-1", got.Items[0].ID)
}

func TestRentalQueuesSplitDisjoint(t *testing.T) {
	rental := func(id int, due time.Time, lifecycle string) entity.QueueCandidate {
		return entity.QueueCandidate{
			Kind:               "rental",
			ID:                 id,
			CreatedAt:          testNow.Add(-72 * time.Hour),
			DisplayName:        "이서연",
			RawLifecycleStatus: lifecycle,
			DueAt:              due,
		}
	}

	cands := []entity.QueueCandidate{
		rental(1, testNow.Add(2*time.Hour), "대여중"),
		rental(2, testNow.Add(30*time.Minute), "대여중"),
		rental(3, testNow.Add(-36*time.Hour), "대여중"),
		rental(4, testNow.Add(60*time.Hour), "대여중"),
		rental(5, testNow.Add(-1*time.Hour), "returned"),
	}

	overdue, dueSoon := rentalQueues(testNow, cands)

	require.Len(t, overdue.Items, 1)
	assert.Equal(t, entity.AgeOverdueDays, overdue.Items[0].AgeMetric)
	assert.Equal(t, 1, overdue.Items[0].AgeValue) // 36h overdue floors to 1 day

	require.Len(t, dueSoon.Items, 2)
	for _, it := range dueSoon.Items {
		assert.Equal(t, entity.AgeDueInHours, it.AgeMetric)
	}
	// soonest due first; the half-hour rental rounds up to the 1 hour floor
	assert.Equal(t, 1, dueSoon.Items[0].AgeValue)
	assert.Equal(t, 2, dueSoon.Items[1].AgeValue)

	for _, o := range overdue.Items {
		for _, d := range dueSoon.Items {
			assert.NotEqual(t, o.ID, d.ID)
		}
	}
}

func TestAgingApplicationsQueue(t *testing.T) {
	app := func(id int, created time.Time, lifecycle string) entity.QueueCandidate {
		return entity.QueueCandidate{
			Kind:               "application",
			ID:                 id,
			CreatedAt:          created,
			DisplayName:        "박지후",
			RawLifecycleStatus: lifecycle,
		}
	}

	cands := []entity.QueueCandidate{
		app(1, testNow.Add(-4*24*time.Hour), "검토중"),
		app(2, testNow.Add(-2*24*time.Hour), "검토중"),
		app(3, testNow.Add(-10*24*time.Hour), "completed"),
	}

	got := agingApplicationsQueue(testNow, cands)
	require.Len(t, got.Items, 1)
	assert.Equal(t, entity.AgeDaysAgo, got.Items[0].AgeMetric)
	assert.Equal(t, 4, got.Items[0].AgeValue)
	assert.Equal(t, "/admin/applications/1", got.Items[0].Target)
}

func TestExpiringPassesQueue(t *testing.T) {
	pass := func(id int, due time.Time, lifecycle string) entity.QueueCandidate {
		return entity.QueueCandidate{
			Kind:               "pass",
			ID:                 id,
			CreatedAt:          testNow.Add(-200 * 24 * time.Hour),
			RawLifecycleStatus: lifecycle,
			DueAt:              due,
		}
	}

	cands := []entity.QueueCandidate{
		pass(1, testNow.Add(10*24*time.Hour), "사용중"),
		pass(2, testNow.Add(-24*time.Hour), "사용중"),
		pass(3, testNow.Add(45*24*time.Hour), "사용중"),
		pass(4, testNow.Add(5*24*time.Hour), "expired"),
	}

	got := expiringPassesQueue(testNow, cands)
	require.Len(t, got.Items, 1)
	assert.Equal(t, entity.AgeDaysLeft, got.Items[0].AgeMetric)
	assert.Equal(t, 10, got.Items[0].AgeValue)
}

func TestQueueDetailCapKeepsOldest(t *testing.T) {
	var cands []entity.QueueCandidate
	for i := 0; i < 23; i++ {
		cands = append(cands, orderCand(i+1, testNow.Add(-time.Duration(25+i)*time.Hour), "입금대기", "주문접수", ""))
	}

	got := paymentPendingQueue(testNow, cands)
	assert.Equal(t, 23, got.Count)
	require.Len(t, got.Items, queueDetailLimit)
	// oldest candidates survive the cap
	assert.Equal(t, "ord-23", got.Items[0].ID)
	for i := 1; i < len(got.Items); i++ {
		assert.False(t, got.Items[i].CreatedAt.Before(got.Items[i-1].CreatedAt))
	}
}

func TestZeroCreatedAtExcluded(t *testing.T) {
	pending := orderCand(1, time.Time{}, "입금대기", "주문접수", "")
	cancelled := orderCand(2, time.Time{}, "결제완료", "주문접수", "취소요청")
	unshipped := orderCand(3, time.Time{}, "결제완료", "배송준비", "")

	for name, got := range map[string]queueResult{
		"payment pending":  paymentPendingQueue(testNow, []entity.QueueCandidate{pending}),
		"cancel requested": cancelRequestedQueue(testNow, []entity.QueueCandidate{cancelled}),
		"shipping pending": shippingPendingQueue(testNow, []entity.QueueCandidate{unshipped}),
	} {
		assert.Zero(t, got.Count, name)
		assert.Empty(t, got.Items, name)
	}
}
