package status

import "strings"

// Lifecycle label sets per entity. These are not a canonical enum like
// payment/cancel: the queues only need membership checks ("is this order
// already terminal", "is this application still being worked"), so the sets
// stay raw and open-ended.

var orderTerminal = []string{
	"delivered",
	"배송완료",
	"구매확정",
	"purchase_confirmed",
	"cancelled",
	"canceled",
	"취소완료",
	"refunded",
	"환불완료",
}

var pickupMethods = []string{
	"pickup",
	"store_pickup",
	"방문수령",
	"매장수령",
}

var applicationUnresolved = []string{
	"received",
	"접수",
	"접수완료",
	"in review",
	"검토중",
	"in_progress",
	"작업중",
}

var rentalCheckedOut = []string{
	"checked out",
	"checked_out",
	"대여중",
}

var passActive = []string{
	"active",
	"사용중",
	"이용중",
}

func contains(set []string, raw string) bool {
	raw = strings.TrimSpace(raw)
	for _, s := range set {
		if s == raw {
			return true
		}
	}
	return false
}

// IsTerminalOrder reports whether the order lifecycle label is a
// terminal/cancelled state that no longer needs shipping attention.
func IsTerminalOrder(raw string) bool { return contains(orderTerminal, raw) }

// IsPickupMethod reports whether the shipping method is an in-person
// pickup; pickup orders never carry a tracking reference.
func IsPickupMethod(raw string) bool { return contains(pickupMethods, raw) }

// IsUnresolvedApplication reports whether a stringing application is still
// in an unresolved processing state.
func IsUnresolvedApplication(raw string) bool { return contains(applicationUnresolved, raw) }

// IsCheckedOut reports whether a rental is currently out with a customer.
func IsCheckedOut(raw string) bool { return contains(rentalCheckedOut, raw) }

// IsActivePass reports whether a stringing pass is usable.
func IsActivePass(raw string) bool { return contains(passActive, raw) }

// UnresolvedApplicationLabels returns the raw unresolved labels for query
// expansion.
func UnresolvedApplicationLabels() []string {
	out := make([]string, len(applicationUnresolved))
	copy(out, applicationUnresolved)
	return out
}

// CheckedOutLabels returns the raw checked-out labels for query expansion.
func CheckedOutLabels() []string {
	out := make([]string, len(rentalCheckedOut))
	copy(out, rentalCheckedOut)
	return out
}

// ActivePassLabels returns the raw active-pass labels for query expansion.
func ActivePassLabels() []string {
	out := make([]string, len(passActive))
	copy(out, passActive)
	return out
}
