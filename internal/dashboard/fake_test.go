package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
)

// fixture is an in-memory dependency.Repository with canned answers and
// per-store error injection.
type fixture struct {
	orders        fakeOrders
	applications  fakeApplications
	rentals       fakeRentals
	packages      fakePackages
	reviews       fakeReviews
	users         fakeUsers
	inventory     fakeInventory
	community     fakeCommunity
	notifications fakeNotifications
	passes        fakePasses
	points        fakePoints
	settlements   fakeSettlements
}

func (f *fixture) Orders() dependency.Orders               { return &f.orders }
func (f *fixture) Applications() dependency.Applications   { return &f.applications }
func (f *fixture) Rentals() dependency.Rentals             { return &f.rentals }
func (f *fixture) PackageOrders() dependency.PackageOrders { return &f.packages }
func (f *fixture) Reviews() dependency.Reviews             { return &f.reviews }
func (f *fixture) Users() dependency.Users                 { return &f.users }
func (f *fixture) Inventory() dependency.Inventory         { return &f.inventory }
func (f *fixture) Community() dependency.Community         { return &f.community }
func (f *fixture) Notifications() dependency.Notifications { return &f.notifications }
func (f *fixture) Passes() dependency.Passes               { return &f.passes }
func (f *fixture) Points() dependency.Points               { return &f.points }
func (f *fixture) Settlements() dependency.Settlements     { return &f.settlements }
func (f *fixture) Ping(context.Context) error              { return nil }
func (f *fixture) Close()                                  {}
func (f *fixture) DB() dependency.DB                       { return nil }

type fakeOrders struct {
	err error

	total, new7d, paid7d     int
	revenue7d                decimal.Decimal
	revenueByDay, countByDay []entity.SeriesPoint
	statusDist, paymentDist  []entity.StatusCount
	pendingCands             []entity.QueueCandidate
	cancelCands              []entity.QueueCandidate
	shippingCands            []entity.QueueCandidate
	topProducts, topBrands   []entity.RankedItem
	recent                   []entity.RecentItem
}

func (o *fakeOrders) CountTotal(context.Context) (int, error) { return o.total, o.err }
func (o *fakeOrders) CountCreatedBetween(context.Context, time.Time, time.Time) (int, error) {
	return o.new7d, o.err
}
func (o *fakeOrders) PaidTotals(context.Context, time.Time, time.Time) (int, decimal.Decimal, error) {
	return o.paid7d, o.revenue7d, o.err
}
func (o *fakeOrders) RevenueByDay(context.Context, time.Time, time.Time) ([]entity.SeriesPoint, error) {
	return o.revenueByDay, o.err
}
func (o *fakeOrders) CountByDay(context.Context, time.Time, time.Time) ([]entity.SeriesPoint, error) {
	return o.countByDay, o.err
}
func (o *fakeOrders) StatusDistribution(context.Context, time.Time) ([]entity.StatusCount, error) {
	return o.statusDist, o.err
}
func (o *fakeOrders) PaymentDistribution(context.Context, time.Time) ([]entity.StatusCount, error) {
	return o.paymentDist, o.err
}
func (o *fakeOrders) PaymentPendingCandidates(context.Context, time.Time) ([]entity.QueueCandidate, error) {
	return o.pendingCands, o.err
}
func (o *fakeOrders) CancelRequestedCandidates(context.Context) ([]entity.QueueCandidate, error) {
	return o.cancelCands, o.err
}
func (o *fakeOrders) ShippingPendingCandidates(context.Context) ([]entity.QueueCandidate, error) {
	return o.shippingCands, o.err
}
func (o *fakeOrders) TopProducts(context.Context, time.Time, time.Time, int) ([]entity.RankedItem, error) {
	return o.topProducts, o.err
}
func (o *fakeOrders) TopBrands(context.Context, time.Time, time.Time, int) ([]entity.RankedItem, error) {
	return o.topBrands, o.err
}
func (o *fakeOrders) Recent(context.Context, int) ([]entity.RecentItem, error) {
	return o.recent, o.err
}

type fakeApplications struct {
	err error

	total  int
	rows   []entity.ApplicationRow
	cands  []entity.QueueCandidate
	recent []entity.RecentItem
}

func (a *fakeApplications) CountTotal(context.Context) (int, error) { return a.total, a.err }
func (a *fakeApplications) CreatedSince(context.Context, string) ([]entity.ApplicationRow, error) {
	return a.rows, a.err
}
func (a *fakeApplications) UnresolvedCandidates(context.Context) ([]entity.QueueCandidate, error) {
	return a.cands, a.err
}
func (a *fakeApplications) Recent(context.Context, int) ([]entity.RecentItem, error) {
	return a.recent, a.err
}

type fakeRentals struct {
	err error

	active, new7d int
	revenue7d     decimal.Decimal
	dueCands      []entity.QueueCandidate
}

func (r *fakeRentals) ActiveCount(context.Context) (int, error) { return r.active, r.err }
func (r *fakeRentals) CountCreatedBetween(context.Context, time.Time, time.Time) (int, error) {
	return r.new7d, r.err
}
func (r *fakeRentals) PaidRevenue(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return r.revenue7d, r.err
}
func (r *fakeRentals) DueCandidates(context.Context, time.Time) ([]entity.QueueCandidate, error) {
	return r.dueCands, r.err
}

type fakePackages struct {
	err error

	new7d, paid7d int
	revenue7d     decimal.Decimal
	revenueByDay  []entity.SeriesPoint
}

func (p *fakePackages) CountCreatedBetween(context.Context, time.Time, time.Time) (int, error) {
	return p.new7d, p.err
}
func (p *fakePackages) PaidTotals(context.Context, time.Time, time.Time) (int, decimal.Decimal, error) {
	return p.paid7d, p.revenue7d, p.err
}
func (p *fakePackages) RevenueByDay(context.Context, time.Time, time.Time) ([]entity.SeriesPoint, error) {
	return p.revenueByDay, p.err
}

type fakeReviews struct {
	err error

	total, new7d int
	countByDay   []entity.SeriesPoint
	recent       []entity.RecentItem
}

func (r *fakeReviews) CountTotal(context.Context) (int, error) { return r.total, r.err }
func (r *fakeReviews) CountCreatedBetween(context.Context, time.Time, time.Time) (int, error) {
	return r.new7d, r.err
}
func (r *fakeReviews) CountByDay(context.Context, time.Time, time.Time) ([]entity.SeriesPoint, error) {
	return r.countByDay, r.err
}
func (r *fakeReviews) Recent(context.Context, int) ([]entity.RecentItem, error) {
	return r.recent, r.err
}

type fakeUsers struct {
	err error

	total, new7d int
	signupsByDay []entity.SeriesPoint
	recent       []entity.RecentItem
}

func (u *fakeUsers) CountTotal(context.Context) (int, error) { return u.total, u.err }
func (u *fakeUsers) CountCreatedBetween(context.Context, time.Time, time.Time) (int, error) {
	return u.new7d, u.err
}
func (u *fakeUsers) SignupsByDay(context.Context, time.Time, time.Time) ([]entity.SeriesPoint, error) {
	return u.signupsByDay, u.err
}
func (u *fakeUsers) Recent(context.Context, int) ([]entity.RecentItem, error) {
	return u.recent, u.err
}

type fakeInventory struct {
	err error

	items, lowStock int
	list            []entity.LowStock
}

func (i *fakeInventory) CountItems(context.Context) (int, error)    { return i.items, i.err }
func (i *fakeInventory) LowStockCount(context.Context) (int, error) { return i.lowStock, i.err }
func (i *fakeInventory) LowStockList(context.Context, int) ([]entity.LowStock, error) {
	return i.list, i.err
}

type fakeCommunity struct {
	err error

	posts, new7d, pendingReports int
}

func (c *fakeCommunity) PostCount(context.Context) (int, error) { return c.posts, c.err }
func (c *fakeCommunity) PostsCreatedBetween(context.Context, time.Time, time.Time) (int, error) {
	return c.new7d, c.err
}
func (c *fakeCommunity) PendingReportCount(context.Context) (int, error) {
	return c.pendingReports, c.err
}

type fakeNotifications struct {
	err error

	pending, failed int
}

func (n *fakeNotifications) PendingCount(context.Context) (int, error) { return n.pending, n.err }
func (n *fakeNotifications) FailedCount(context.Context) (int, error)  { return n.failed, n.err }

type fakePasses struct {
	err error

	active int
	cands  []entity.QueueCandidate
}

func (p *fakePasses) ActiveCount(context.Context) (int, error) { return p.active, p.err }
func (p *fakePasses) ExpiringCandidates(context.Context, time.Time, time.Time) ([]entity.QueueCandidate, error) {
	return p.cands, p.err
}

type fakePoints struct {
	err error

	issued, spent, outstanding decimal.Decimal
}

func (p *fakePoints) IssuedBetween(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return p.issued, p.err
}
func (p *fakePoints) SpentBetween(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return p.spent, p.err
}
func (p *fakePoints) OutstandingBalance(context.Context) (decimal.Decimal, error) {
	return p.outstanding, p.err
}

type fakeSettlements struct {
	err error

	present map[string]bool
}

func (s *fakeSettlements) Exists(_ context.Context, monthKey string) (bool, error) {
	return s.present[monthKey], s.err
}
