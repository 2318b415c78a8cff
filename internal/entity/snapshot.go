package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the complete operational view the admin dashboard renders.
// It is built fresh per request, stamped with a single GeneratedAt instant,
// and every sub-aggregate is computed against windows derived from that
// same instant.
type Snapshot struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Series      Series      `json:"series"`
	KPI         KPI         `json:"kpi"`
	Dist        Dist        `json:"dist"`
	Inventory   []LowStock  `json:"inventoryList"`
	Top         Top         `json:"top"`
	Queues      QueueDetail `json:"queueDetails"`
	Recent      Recent      `json:"recent"`
	Settlements Settlements `json:"settlements"`

	// CacheMaxAge is the freshness window, in seconds, the engine
	// recommends to whatever cache wraps it. The engine itself stores
	// nothing.
	CacheMaxAge int `json:"cacheMaxAge"`
}

// SeriesPoint is one calendar day of a zero-filled series.
type SeriesPoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// SeriesWindow describes the trailing window the day series cover.
type SeriesWindow struct {
	Days  int      `json:"days"`
	Start string   `json:"start"`
	End   string   `json:"end"`
	Dates []string `json:"dates"`
}

// Series bundles the day-indexed charts. Revenue carries both the merged
// total and the per-source breakdown; the dashboard renders a stacked view
// on top of the combined line.
type Series struct {
	Window          SeriesWindow             `json:"window"`
	Revenue         []SeriesPoint            `json:"revenue"`
	RevenueBySource map[string][]SeriesPoint `json:"revenueBySource"`
	Orders          []SeriesPoint            `json:"orders"`
	Applications    []SeriesPoint            `json:"applications"`
	Signups         []SeriesPoint            `json:"signups"`
	Reviews         []SeriesPoint            `json:"reviews"`
}

// StatusCount is one bucket of a status histogram.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Dist holds the month-lookback status histograms.
type Dist struct {
	OrderStatus       []StatusCount `json:"orderStatus"`
	OrderPayment      []StatusCount `json:"orderPayment"`
	ApplicationStatus []StatusCount `json:"applicationStatus"`
}

// KPI is the scalar block per entity.
type KPI struct {
	Users        UserKPI        `json:"users"`
	Orders       OrderKPI       `json:"orders"`
	Applications ApplicationKPI `json:"applications"`
	Rentals      RentalKPI      `json:"rentals"`
	Packages     PackageKPI     `json:"packages"`
	Reviews      ReviewKPI      `json:"reviews"`
	Passes       PassKPI        `json:"passes"`
	Points       PointKPI       `json:"points"`
	Community    CommunityKPI   `json:"community"`
	Inventory    InventoryKPI   `json:"inventory"`
	Queue        QueueKPI       `json:"queue"`
}

type UserKPI struct {
	Total int `json:"total"`
	New7d int `json:"new7d"`
}

type OrderKPI struct {
	Total     int             `json:"total"`
	New7d     int             `json:"new7d"`
	Paid7d    int             `json:"paid7d"`
	Revenue7d decimal.Decimal `json:"revenue7d"`
	AOV7d     decimal.Decimal `json:"aov7d"`
}

type ApplicationKPI struct {
	Total     int             `json:"total"`
	New7d     int             `json:"new7d"`
	Paid7d    int             `json:"paid7d"`
	Revenue7d decimal.Decimal `json:"revenue7d"`
}

type RentalKPI struct {
	Active    int             `json:"active"`
	New7d     int             `json:"new7d"`
	Revenue7d decimal.Decimal `json:"revenue7d"`
}

type PackageKPI struct {
	New7d     int             `json:"new7d"`
	Paid7d    int             `json:"paid7d"`
	Revenue7d decimal.Decimal `json:"revenue7d"`
}

type ReviewKPI struct {
	Total int `json:"total"`
	New7d int `json:"new7d"`
}

type PassKPI struct {
	Active      int `json:"active"`
	Expiring30d int `json:"expiring30d"`
}

type PointKPI struct {
	Issued30d   decimal.Decimal `json:"issued30d"`
	Spent30d    decimal.Decimal `json:"spent30d"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type CommunityKPI struct {
	Posts          int `json:"posts"`
	New7d          int `json:"new7d"`
	PendingReports int `json:"pendingReports"`
}

type InventoryKPI struct {
	Items    int `json:"items"`
	LowStock int `json:"lowStock"`
}

// QueueKPI is the scalar count per operator-attention queue. Counts are
// unbounded; the capped detail lists live in QueueDetail.
type QueueKPI struct {
	PaymentPending       int `json:"paymentPending"`
	CancelRequested      int `json:"cancelRequested"`
	ShippingPending      int `json:"shippingPending"`
	RentalOverdue        int `json:"rentalOverdue"`
	RentalDueSoon        int `json:"rentalDueSoon"`
	AgingApplications    int `json:"agingApplications"`
	ExpiringPasses       int `json:"expiringPasses"`
	PendingNotifications int `json:"pendingNotifications"`
	FailedNotifications  int `json:"failedNotifications"`
}

// LowStock is one inventory alert row.
type LowStock struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Stock       int    `json:"stock"`
	SafetyStock int    `json:"safetyStock"`
}

// RankedItem is one row of a best-seller ranking.
type RankedItem struct {
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity int             `json:"quantity"`
}

// Top holds the 7-day best-seller rankings over paid orders.
type Top struct {
	Products []RankedItem `json:"products"`
	Brands   []RankedItem `json:"brands"`
}

// Age metric kinds carried by queue items.
const (
	AgeHoursAgo    = "hoursAgo"
	AgeDaysAgo     = "daysAgo"
	AgeOverdueDays = "overdueDays"
	AgeDueInHours  = "dueInHours"
	AgeDaysLeft    = "daysLeft"
)

// QueueItem is one row of an operator-attention worklist.
type QueueItem struct {
	Kind        string          `json:"kind"`
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	DisplayName string          `json:"displayName"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Target      string          `json:"target"`
	AgeMetric   string          `json:"ageMetric"`
	AgeValue    int             `json:"ageValue"`
}

// QueueDetail holds the capped, oldest-first detail lists.
type QueueDetail struct {
	PaymentPending    []QueueItem `json:"paymentPending"`
	CancelRequested   []QueueItem `json:"cancelRequested"`
	ShippingPending   []QueueItem `json:"shippingPending"`
	RentalOverdue     []QueueItem `json:"rentalOverdue"`
	RentalDueSoon     []QueueItem `json:"rentalDueSoon"`
	AgingApplications []QueueItem `json:"agingApplications"`
	ExpiringPasses    []QueueItem `json:"expiringPasses"`
}

// RecentItem is one row of a latest-activity list.
type RecentItem struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Recent bundles the latest records per entity.
type Recent struct {
	Orders       []RecentItem `json:"orders"`
	Applications []RecentItem `json:"applications"`
	Users        []RecentItem `json:"users"`
	Reviews      []RecentItem `json:"reviews"`
}

// MonthArtifact reports whether the monthly settlement snapshot exists for
// a month. The artifact itself is produced elsewhere; the dashboard only
// checks presence.
type MonthArtifact struct {
	Month   string `json:"month"`
	Present bool   `json:"present"`
}

type Settlements struct {
	CurrentMonth  MonthArtifact `json:"currentMonth"`
	PreviousMonth MonthArtifact `json:"previousMonth"`
}
