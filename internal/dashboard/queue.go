package dashboard

import (
	"sort"
	"strconv"
	"time"

	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/status"
)

// Queue thresholds. Fixed operational policy, not configuration: the
// dashboard must mean the same thing on every deploy.
const (
	paymentPendingAfter   = 24 * time.Hour
	rentalDueSoonWithin   = 48 * time.Hour
	applicationAgingAfter = 72 * time.Hour
	passExpiryWithin      = 30 * 24 * time.Hour

	queueDetailLimit = 10
)

// queueResult carries the full matching count plus the capped,
// oldest-first detail list for one queue.
type queueResult struct {
	Count int
	Items []entity.QueueItem
}

func queueItem(c entity.QueueCandidate, shownStatus, metric string, value int) entity.QueueItem {
	id := c.PublicID
	if id == "" {
		id = strconv.Itoa(c.ID)
	}
	return entity.QueueItem{
		Kind:        c.Kind,
		ID:          id,
		CreatedAt:   c.CreatedAt,
		DisplayName: c.DisplayName,
		Amount:      c.Amount,
		Status:      shownStatus,
		Target:      c.Target(),
		AgeMetric:   metric,
		AgeValue:    value,
	}
}

func finish(items []entity.QueueItem) queueResult {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	r := queueResult{Count: len(items), Items: items}
	if len(r.Items) > queueDetailLimit {
		r.Items = r.Items[:queueDetailLimit]
	}
	return r
}

func hoursAgo(now, t time.Time) int {
	return int(now.Sub(t).Hours())
}

func daysAgo(now, t time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// paymentPendingQueue lists orders still awaiting payment a full day
// after creation. An order whose cancellation has been requested belongs
// to the cancel queue instead, never both.
func paymentPendingQueue(now time.Time, cands []entity.QueueCandidate) queueResult {
	cutoff := now.Add(-paymentPendingAfter)
	var items []entity.QueueItem
	for _, c := range cands {
		if c.CreatedAt.IsZero() || c.CreatedAt.After(cutoff) {
			continue
		}
		if status.NormalizePayment(c.RawPaymentStatus) != status.PaymentPending {
			continue
		}
		if status.NormalizeCancel(c.RawCancelStatus) == status.CancelRequested {
			continue
		}
		items = append(items, queueItem(c, c.RawPaymentStatus, entity.AgeHoursAgo, hoursAgo(now, c.CreatedAt)))
	}
	return finish(items)
}

// cancelRequestedQueue lists orders with an open cancellation request,
// regardless of age.
func cancelRequestedQueue(now time.Time, cands []entity.QueueCandidate) queueResult {
	var items []entity.QueueItem
	for _, c := range cands {
		if c.CreatedAt.IsZero() {
			continue
		}
		if status.NormalizeCancel(c.RawCancelStatus) != status.CancelRequested {
			continue
		}
		items = append(items, queueItem(c, c.RawCancelStatus, entity.AgeHoursAgo, hoursAgo(now, c.CreatedAt)))
	}
	return finish(items)
}

// shippingPendingQueue lists paid orders with no tracking number that
// still need a shipment. Terminal orders and pickup orders never ship.
func shippingPendingQueue(now time.Time, cands []entity.QueueCandidate) queueResult {
	var items []entity.QueueItem
	for _, c := range cands {
		if c.CreatedAt.IsZero() {
			continue
		}
		if status.NormalizePayment(c.RawPaymentStatus) != status.PaymentPaid {
			continue
		}
		if c.HasTracking {
			continue
		}
		if status.IsTerminalOrder(c.RawLifecycleStatus) {
			continue
		}
		if status.IsPickupMethod(c.ShippingMethod) {
			continue
		}
		items = append(items, queueItem(c, c.RawLifecycleStatus, entity.AgeHoursAgo, hoursAgo(now, c.CreatedAt)))
	}
	return finish(items)
}

// rentalQueues splits checked-out rentals with a due time into overdue
// and due-soon. The split is disjoint: a rental is overdue once its due
// time has passed, due-soon while the due time is within the lookahead.
func rentalQueues(now time.Time, cands []entity.QueueCandidate) (overdue, dueSoon queueResult) {
	sorted := make([]entity.QueueCandidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueAt.Before(sorted[j].DueAt)
	})

	horizon := now.Add(rentalDueSoonWithin)
	var over, soon []entity.QueueItem
	for _, c := range sorted {
		if !status.IsCheckedOut(c.RawLifecycleStatus) || c.DueAt.IsZero() {
			continue
		}
		switch {
		case !c.DueAt.After(now):
			days := int(now.Sub(c.DueAt).Hours() / 24)
			over = append(over, queueItem(c, c.RawLifecycleStatus, entity.AgeOverdueDays, days))
		case !c.DueAt.After(horizon):
			hours := int(c.DueAt.Sub(now).Hours())
			if float64(hours) < c.DueAt.Sub(now).Hours() {
				hours++
			}
			if hours < 1 {
				hours = 1
			}
			soon = append(soon, queueItem(c, c.RawLifecycleStatus, entity.AgeDueInHours, hours))
		}
	}
	capped := func(items []entity.QueueItem) queueResult {
		r := queueResult{Count: len(items), Items: items}
		if len(r.Items) > queueDetailLimit {
			r.Items = r.Items[:queueDetailLimit]
		}
		return r
	}
	return capped(over), capped(soon)
}

// agingApplicationsQueue lists stringing applications that have sat
// unresolved for three days or more.
func agingApplicationsQueue(now time.Time, cands []entity.QueueCandidate) queueResult {
	cutoff := now.Add(-applicationAgingAfter)
	var items []entity.QueueItem
	for _, c := range cands {
		if c.CreatedAt.IsZero() || c.CreatedAt.After(cutoff) {
			continue
		}
		if !status.IsUnresolvedApplication(c.RawLifecycleStatus) {
			continue
		}
		items = append(items, queueItem(c, c.RawLifecycleStatus, entity.AgeDaysAgo, daysAgo(now, c.CreatedAt)))
	}
	return finish(items)
}

// expiringPassesQueue lists active stringing passes expiring within the
// next thirty days, soonest expiry first.
func expiringPassesQueue(now time.Time, cands []entity.QueueCandidate) queueResult {
	sorted := make([]entity.QueueCandidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueAt.Before(sorted[j].DueAt)
	})

	horizon := now.Add(passExpiryWithin)
	var items []entity.QueueItem
	for _, c := range sorted {
		if !status.IsActivePass(c.RawLifecycleStatus) || c.DueAt.IsZero() {
			continue
		}
		if c.DueAt.Before(now) || c.DueAt.After(horizon) {
			continue
		}
		days := int(c.DueAt.Sub(now).Hours() / 24)
		items = append(items, queueItem(c, c.RawLifecycleStatus, entity.AgeDaysLeft, days))
	}
	r := queueResult{Count: len(items), Items: items}
	if len(r.Items) > queueDetailLimit {
		r.Items = r.Items[:queueDetailLimit]
	}
	return r
}
