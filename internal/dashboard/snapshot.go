// Package dashboard builds the admin dashboard snapshot: windowed day
// series, per-entity KPI blocks, status distributions, operator-attention
// queues and latest-activity lists, all derived from one captured instant.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/status"
	"github.com/smashlab/racquet-manager/internal/timewindow"
)

// Window and limit policy. Fixed so every rendered dashboard means the
// same thing regardless of deploy or caller.
const (
	SeriesWindowDays = 14
	kpiWindowDays    = 7
	pointsWindowDays = 30
	topLimit         = 10
	recentLimit      = 5
	lowStockLimit    = 10

	// CacheMaxAgeSeconds is the freshness window recommended to whatever
	// cache fronts the builder.
	CacheMaxAgeSeconds = 5
)

// Service builds dashboard snapshots from the aggregation stores. It holds
// no state of its own; every Build starts from a fresh captured instant.
type Service struct {
	rep dependency.Repository
}

func New(rep dependency.Repository) *Service {
	return &Service{rep: rep}
}

// Build assembles a snapshot for the current moment.
func (s *Service) Build(ctx context.Context) (*entity.Snapshot, error) {
	return s.BuildAt(ctx, time.Now())
}

// BuildAt assembles a snapshot whose every window, threshold and age value
// is derived from the single instant now. Entity aggregations fan out
// concurrently; the first failure aborts the whole build, a snapshot is
// never partially populated.
func (s *Service) BuildAt(ctx context.Context, now time.Time) (*entity.Snapshot, error) {
	seriesWin := timewindow.Trailing(now, SeriesWindowDays)
	kpiWin := timewindow.Trailing(now, kpiWindowDays)
	pointsWin := timewindow.Trailing(now, pointsWindowDays)
	monthStart := timewindow.MonthStart(now)

	var (
		orders    ordersView
		apps      applicationsView
		rentals   rentalsView
		packages  packagesView
		reviews   reviewsView
		users     usersView
		inventory inventoryView
		community communityView
		outbox    notificationsView
		passes    passesView
		points    pointsView
		months    settlementsView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.collectOrders(gctx, now, seriesWin, kpiWin, monthStart)
		return err
	})
	g.Go(func() (err error) {
		apps, err = s.collectApplications(gctx, now, seriesWin, kpiWin, monthStart)
		return err
	})
	g.Go(func() (err error) {
		rentals, err = s.collectRentals(gctx, now, kpiWin)
		return err
	})
	g.Go(func() (err error) {
		packages, err = s.collectPackages(gctx, seriesWin, kpiWin)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.collectReviews(gctx, seriesWin, kpiWin)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.collectUsers(gctx, seriesWin, kpiWin)
		return err
	})
	g.Go(func() (err error) {
		inventory, err = s.collectInventory(gctx)
		return err
	})
	g.Go(func() (err error) {
		community, err = s.collectCommunity(gctx, kpiWin)
		return err
	})
	g.Go(func() (err error) {
		outbox, err = s.collectNotifications(gctx)
		return err
	})
	g.Go(func() (err error) {
		passes, err = s.collectPasses(gctx, now)
		return err
	})
	g.Go(func() (err error) {
		points, err = s.collectPoints(gctx, pointsWin)
		return err
	})
	g.Go(func() (err error) {
		months, err = s.collectSettlements(gctx, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build dashboard snapshot: %w", err)
	}

	revenueTotal, revenueBySource := Merge(seriesWin, map[string][]entity.SeriesPoint{
		"orders":       orders.revenueByDay,
		"applications": apps.revenueByDay,
		"packages":     packages.revenueByDay,
	})

	snap := &entity.Snapshot{
		GeneratedAt: now.In(timewindow.Location()),
		Series: entity.Series{
			Window: entity.SeriesWindow{
				Days:  seriesWin.Days,
				Start: seriesWin.Dates[0],
				End:   seriesWin.Dates[len(seriesWin.Dates)-1],
				Dates: seriesWin.Dates,
			},
			Revenue:         revenueTotal,
			RevenueBySource: revenueBySource,
			Orders:          Fill(seriesWin, orders.countByDay),
			Applications:    Fill(seriesWin, apps.countByDay),
			Signups:         Fill(seriesWin, users.signupsByDay),
			Reviews:         Fill(seriesWin, reviews.countByDay),
		},
		KPI: entity.KPI{
			Users: entity.UserKPI{Total: users.total, New7d: users.new7d},
			Orders: entity.OrderKPI{
				Total:     orders.total,
				New7d:     orders.new7d,
				Paid7d:    orders.paid7d,
				Revenue7d: orders.revenue7d,
				AOV7d:     averageOrderValue(orders.revenue7d, orders.paid7d),
			},
			Applications: entity.ApplicationKPI{
				Total:     apps.total,
				New7d:     apps.new7d,
				Paid7d:    apps.paid7d,
				Revenue7d: apps.revenue7d,
			},
			Rentals: entity.RentalKPI{
				Active:    rentals.active,
				New7d:     rentals.new7d,
				Revenue7d: rentals.revenue7d,
			},
			Packages: entity.PackageKPI{
				New7d:     packages.new7d,
				Paid7d:    packages.paid7d,
				Revenue7d: packages.revenue7d,
			},
			Reviews: entity.ReviewKPI{Total: reviews.total, New7d: reviews.new7d},
			Passes: entity.PassKPI{
				Active:      passes.active,
				Expiring30d: passes.expiring.Count,
			},
			Points: entity.PointKPI{
				Issued30d:   points.issued,
				Spent30d:    points.spent,
				Outstanding: points.outstanding,
			},
			Community: entity.CommunityKPI{
				Posts:          community.posts,
				New7d:          community.new7d,
				PendingReports: community.pendingReports,
			},
			Inventory: entity.InventoryKPI{Items: inventory.items, LowStock: inventory.lowStock},
			Queue: entity.QueueKPI{
				PaymentPending:       orders.paymentPending.Count,
				CancelRequested:      orders.cancelRequested.Count,
				ShippingPending:      orders.shippingPending.Count,
				RentalOverdue:        rentals.overdue.Count,
				RentalDueSoon:        rentals.dueSoon.Count,
				AgingApplications:    apps.aging.Count,
				ExpiringPasses:       passes.expiring.Count,
				PendingNotifications: outbox.pending,
				FailedNotifications:  outbox.failed,
			},
		},
		Dist: entity.Dist{
			OrderStatus:       orders.statusDist,
			OrderPayment:      orders.paymentDist,
			ApplicationStatus: apps.statusDist,
		},
		Inventory: inventory.list,
		Top:       entity.Top{Products: orders.topProducts, Brands: orders.topBrands},
		Queues: entity.QueueDetail{
			PaymentPending:    orders.paymentPending.Items,
			CancelRequested:   orders.cancelRequested.Items,
			ShippingPending:   orders.shippingPending.Items,
			RentalOverdue:     rentals.overdue.Items,
			RentalDueSoon:     rentals.dueSoon.Items,
			AgingApplications: apps.aging.Items,
			ExpiringPasses:    passes.expiring.Items,
		},
		Recent: entity.Recent{
			Orders:       orders.recent,
			Applications: apps.recent,
			Users:        users.recent,
			Reviews:      reviews.recent,
		},
		Settlements: entity.Settlements{
			CurrentMonth:  months.current,
			PreviousMonth: months.previous,
		},
		CacheMaxAge: CacheMaxAgeSeconds,
	}
	return snap, nil
}

// averageOrderValue guards the no-paid-orders case; an AOV over zero
// orders is zero, not a division error.
func averageOrderValue(revenue decimal.Decimal, paid int) decimal.Decimal {
	if paid == 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(int64(paid)), 2)
}

type ordersView struct {
	total, new7d, paid7d int
	revenue7d            decimal.Decimal
	revenueByDay         []entity.SeriesPoint
	countByDay           []entity.SeriesPoint
	statusDist           []entity.StatusCount
	paymentDist          []entity.StatusCount
	paymentPending       queueResult
	cancelRequested      queueResult
	shippingPending      queueResult
	topProducts          []entity.RankedItem
	topBrands            []entity.RankedItem
	recent               []entity.RecentItem
}

func (s *Service) collectOrders(ctx context.Context, now time.Time, seriesWin, kpiWin timewindow.Window, monthStart time.Time) (ordersView, error) {
	var (
		v   ordersView
		err error
	)
	rep := s.rep.Orders()

	if v.total, err = rep.CountTotal(ctx); err != nil {
		return v, fmt.Errorf("orders total: %w", err)
	}
	if v.new7d, err = rep.CountCreatedBetween(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("orders new: %w", err)
	}
	if v.paid7d, v.revenue7d, err = rep.PaidTotals(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("orders paid totals: %w", err)
	}
	if v.revenueByDay, err = rep.RevenueByDay(ctx, seriesWin.Start, seriesWin.End); err != nil {
		return v, fmt.Errorf("orders revenue series: %w", err)
	}
	if v.countByDay, err = rep.CountByDay(ctx, seriesWin.Start, seriesWin.End); err != nil {
		return v, fmt.Errorf("orders count series: %w", err)
	}
	if v.statusDist, err = rep.StatusDistribution(ctx, monthStart); err != nil {
		return v, fmt.Errorf("orders status distribution: %w", err)
	}
	if v.paymentDist, err = rep.PaymentDistribution(ctx, monthStart); err != nil {
		return v, fmt.Errorf("orders payment distribution: %w", err)
	}

	pending, err := rep.PaymentPendingCandidates(ctx, now.Add(-paymentPendingAfter))
	if err != nil {
		return v, fmt.Errorf("orders payment pending candidates: %w", err)
	}
	v.paymentPending = paymentPendingQueue(now, pending)

	cancels, err := rep.CancelRequestedCandidates(ctx)
	if err != nil {
		return v, fmt.Errorf("orders cancel candidates: %w", err)
	}
	v.cancelRequested = cancelRequestedQueue(now, cancels)

	shipping, err := rep.ShippingPendingCandidates(ctx)
	if err != nil {
		return v, fmt.Errorf("orders shipping candidates: %w", err)
	}
	v.shippingPending = shippingPendingQueue(now, shipping)

	if v.topProducts, err = rep.TopProducts(ctx, kpiWin.Start, kpiWin.End, topLimit); err != nil {
		return v, fmt.Errorf("top products: %w", err)
	}
	if v.topBrands, err = rep.TopBrands(ctx, kpiWin.Start, kpiWin.End, topLimit); err != nil {
		return v, fmt.Errorf("top brands: %w", err)
	}
	if v.recent, err = rep.Recent(ctx, recentLimit); err != nil {
		return v, fmt.Errorf("recent orders: %w", err)
	}
	return v, nil
}

type applicationsView struct {
	total, new7d, paid7d int
	revenue7d            decimal.Decimal
	revenueByDay         []entity.SeriesPoint
	countByDay           []entity.SeriesPoint
	statusDist           []entity.StatusCount
	aging                queueResult
	recent               []entity.RecentItem
}

// collectApplications does its windowed math in Go. The legacy table
// stores created_at as a string, so the store hands back every row from a
// coarse lexicographic lower bound and the precise instant comparisons
// happen here, against lenient-parsed timestamps.
func (s *Service) collectApplications(ctx context.Context, now time.Time, seriesWin, kpiWin timewindow.Window, monthStart time.Time) (applicationsView, error) {
	var (
		v   applicationsView
		err error
	)
	rep := s.rep.Applications()

	if v.total, err = rep.CountTotal(ctx); err != nil {
		return v, fmt.Errorf("applications total: %w", err)
	}

	fromKey := seriesWin.Dates[0]
	if monthKey := monthStart.Format(timewindow.DateKeyLayout); monthKey < fromKey {
		fromKey = monthKey
	}
	rows, err := rep.CreatedSince(ctx, fromKey)
	if err != nil {
		return v, fmt.Errorf("applications since %s: %w", fromKey, err)
	}
	v.fold(rows, seriesWin, kpiWin, monthStart)

	cands, err := rep.UnresolvedCandidates(ctx)
	if err != nil {
		return v, fmt.Errorf("applications unresolved candidates: %w", err)
	}
	v.aging = agingApplicationsQueue(now, cands)

	if v.recent, err = rep.Recent(ctx, recentLimit); err != nil {
		return v, fmt.Errorf("recent applications: %w", err)
	}
	return v, nil
}

func (v *applicationsView) fold(rows []entity.ApplicationRow, seriesWin, kpiWin timewindow.Window, monthStart time.Time) {
	countByDay := map[string]int{}
	revenueByDay := map[string]decimal.Decimal{}
	statusCounts := map[string]int{}

	for _, r := range rows {
		created := r.CreatedAt.Time
		if created.IsZero() {
			continue
		}
		paid := status.NormalizePayment(r.RawPaymentStatus) == status.PaymentPaid

		if !created.Before(seriesWin.Start) && created.Before(seriesWin.End) {
			key := created.In(timewindow.Location()).Format(timewindow.DateKeyLayout)
			countByDay[key]++
			if paid {
				revenueByDay[key] = revenueByDay[key].Add(r.Amount())
			}
		}
		if !created.Before(kpiWin.Start) && created.Before(kpiWin.End) {
			v.new7d++
			if paid {
				v.paid7d++
				v.revenue7d = v.revenue7d.Add(r.Amount())
			}
		}
		if !created.Before(monthStart) {
			statusCounts[r.RawLifecycleStatus]++
		}
	}

	for key, n := range countByDay {
		v.countByDay = append(v.countByDay, entity.SeriesPoint{Date: key, Value: decimal.NewFromInt(int64(n))})
	}
	for key, sum := range revenueByDay {
		v.revenueByDay = append(v.revenueByDay, entity.SeriesPoint{Date: key, Value: sum})
	}
	for label, n := range statusCounts {
		v.statusDist = append(v.statusDist, entity.StatusCount{Status: label, Count: n})
	}
	sort.Slice(v.statusDist, func(i, j int) bool {
		if v.statusDist[i].Count != v.statusDist[j].Count {
			return v.statusDist[i].Count > v.statusDist[j].Count
		}
		return v.statusDist[i].Status < v.statusDist[j].Status
	})
}

type rentalsView struct {
	active, new7d int
	revenue7d     decimal.Decimal
	overdue       queueResult
	dueSoon       queueResult
}

func (s *Service) collectRentals(ctx context.Context, now time.Time, kpiWin timewindow.Window) (rentalsView, error) {
	var (
		v   rentalsView
		err error
	)
	rep := s.rep.Rentals()

	if v.active, err = rep.ActiveCount(ctx); err != nil {
		return v, fmt.Errorf("rentals active: %w", err)
	}
	if v.new7d, err = rep.CountCreatedBetween(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("rentals new: %w", err)
	}
	if v.revenue7d, err = rep.PaidRevenue(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("rentals revenue: %w", err)
	}
	cands, err := rep.DueCandidates(ctx, now.Add(rentalDueSoonWithin))
	if err != nil {
		return v, fmt.Errorf("rentals due candidates: %w", err)
	}
	v.overdue, v.dueSoon = rentalQueues(now, cands)
	return v, nil
}

type packagesView struct {
	new7d, paid7d int
	revenue7d     decimal.Decimal
	revenueByDay  []entity.SeriesPoint
}

func (s *Service) collectPackages(ctx context.Context, seriesWin, kpiWin timewindow.Window) (packagesView, error) {
	var (
		v   packagesView
		err error
	)
	rep := s.rep.PackageOrders()

	if v.new7d, err = rep.CountCreatedBetween(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("packages new: %w", err)
	}
	if v.paid7d, v.revenue7d, err = rep.PaidTotals(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("packages paid totals: %w", err)
	}
	if v.revenueByDay, err = rep.RevenueByDay(ctx, seriesWin.Start, seriesWin.End); err != nil {
		return v, fmt.Errorf("packages revenue series: %w", err)
	}
	return v, nil
}

type reviewsView struct {
	total, new7d int
	countByDay   []entity.SeriesPoint
	recent       []entity.RecentItem
}

func (s *Service) collectReviews(ctx context.Context, seriesWin, kpiWin timewindow.Window) (reviewsView, error) {
	var (
		v   reviewsView
		err error
	)
	rep := s.rep.Reviews()

	if v.total, err = rep.CountTotal(ctx); err != nil {
		return v, fmt.Errorf("reviews total: %w", err)
	}
	if v.new7d, err = rep.CountCreatedBetween(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("reviews new: %w", err)
	}
	if v.countByDay, err = rep.CountByDay(ctx, seriesWin.Start, seriesWin.End); err != nil {
		return v, fmt.Errorf("reviews series: %w", err)
	}
	if v.recent, err = rep.Recent(ctx, recentLimit); err != nil {
		return v, fmt.Errorf("recent reviews: %w", err)
	}
	return v, nil
}

type usersView struct {
	total, new7d int
	signupsByDay []entity.SeriesPoint
	recent       []entity.RecentItem
}

func (s *Service) collectUsers(ctx context.Context, seriesWin, kpiWin timewindow.Window) (usersView, error) {
	var (
		v   usersView
		err error
	)
	rep := s.rep.Users()

	if v.total, err = rep.CountTotal(ctx); err != nil {
		return v, fmt.Errorf("users total: %w", err)
	}
	if v.new7d, err = rep.CountCreatedBetween(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("users new: %w", err)
	}
	if v.signupsByDay, err = rep.SignupsByDay(ctx, seriesWin.Start, seriesWin.End); err != nil {
		return v, fmt.Errorf("signup series: %w", err)
	}
	if v.recent, err = rep.Recent(ctx, recentLimit); err != nil {
		return v, fmt.Errorf("recent users: %w", err)
	}
	return v, nil
}

type inventoryView struct {
	items, lowStock int
	list            []entity.LowStock
}

func (s *Service) collectInventory(ctx context.Context) (inventoryView, error) {
	var (
		v   inventoryView
		err error
	)
	rep := s.rep.Inventory()

	if v.items, err = rep.CountItems(ctx); err != nil {
		return v, fmt.Errorf("inventory items: %w", err)
	}
	if v.lowStock, err = rep.LowStockCount(ctx); err != nil {
		return v, fmt.Errorf("low stock count: %w", err)
	}
	if v.list, err = rep.LowStockList(ctx, lowStockLimit); err != nil {
		return v, fmt.Errorf("low stock list: %w", err)
	}
	return v, nil
}

type communityView struct {
	posts, new7d, pendingReports int
}

func (s *Service) collectCommunity(ctx context.Context, kpiWin timewindow.Window) (communityView, error) {
	var (
		v   communityView
		err error
	)
	rep := s.rep.Community()

	if v.posts, err = rep.PostCount(ctx); err != nil {
		return v, fmt.Errorf("post count: %w", err)
	}
	if v.new7d, err = rep.PostsCreatedBetween(ctx, kpiWin.Start, kpiWin.End); err != nil {
		return v, fmt.Errorf("new posts: %w", err)
	}
	if v.pendingReports, err = rep.PendingReportCount(ctx); err != nil {
		return v, fmt.Errorf("pending reports: %w", err)
	}
	return v, nil
}

type notificationsView struct {
	pending, failed int
}

func (s *Service) collectNotifications(ctx context.Context) (notificationsView, error) {
	var (
		v   notificationsView
		err error
	)
	rep := s.rep.Notifications()

	if v.pending, err = rep.PendingCount(ctx); err != nil {
		return v, fmt.Errorf("pending notifications: %w", err)
	}
	if v.failed, err = rep.FailedCount(ctx); err != nil {
		return v, fmt.Errorf("failed notifications: %w", err)
	}
	return v, nil
}

type passesView struct {
	active   int
	expiring queueResult
}

func (s *Service) collectPasses(ctx context.Context, now time.Time) (passesView, error) {
	var (
		v   passesView
		err error
	)
	rep := s.rep.Passes()

	if v.active, err = rep.ActiveCount(ctx); err != nil {
		return v, fmt.Errorf("active passes: %w", err)
	}
	cands, err := rep.ExpiringCandidates(ctx, now, now.Add(passExpiryWithin))
	if err != nil {
		return v, fmt.Errorf("expiring pass candidates: %w", err)
	}
	v.expiring = expiringPassesQueue(now, cands)
	return v, nil
}

type pointsView struct {
	issued, spent, outstanding decimal.Decimal
}

func (s *Service) collectPoints(ctx context.Context, pointsWin timewindow.Window) (pointsView, error) {
	var (
		v   pointsView
		err error
	)
	rep := s.rep.Points()

	if v.issued, err = rep.IssuedBetween(ctx, pointsWin.Start, pointsWin.End); err != nil {
		return v, fmt.Errorf("points issued: %w", err)
	}
	if v.spent, err = rep.SpentBetween(ctx, pointsWin.Start, pointsWin.End); err != nil {
		return v, fmt.Errorf("points spent: %w", err)
	}
	if v.outstanding, err = rep.OutstandingBalance(ctx); err != nil {
		return v, fmt.Errorf("points outstanding: %w", err)
	}
	return v, nil
}

type settlementsView struct {
	current, previous entity.MonthArtifact
}

func (s *Service) collectSettlements(ctx context.Context, now time.Time) (settlementsView, error) {
	var v settlementsView
	rep := s.rep.Settlements()

	cur := timewindow.MonthKey(now)
	prev, err := timewindow.ShiftMonthKey(cur, -1)
	if err != nil {
		return v, fmt.Errorf("previous month key: %w", err)
	}

	curPresent, err := rep.Exists(ctx, cur)
	if err != nil {
		return v, fmt.Errorf("settlement %s: %w", cur, err)
	}
	prevPresent, err := rep.Exists(ctx, prev)
	if err != nil {
		return v, fmt.Errorf("settlement %s: %w", prev, err)
	}
	v.current = entity.MonthArtifact{Month: cur, Present: curPresent}
	v.previous = entity.MonthArtifact{Month: prev, Present: prevPresent}
	return v, nil
}
