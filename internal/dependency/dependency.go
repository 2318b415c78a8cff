package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/entity"
)

type (
	// Orders aggregates the shop_order table. All reads are scoped by
	// half-open [from, to) instants produced by the time window layer.
	Orders interface {
		CountTotal(ctx context.Context) (int, error)
		CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
		// PaidTotals returns the count of and revenue over canonically
		// PAID orders placed in the window.
		PaidTotals(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error)
		RevenueByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error)
		CountByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error)
		StatusDistribution(ctx context.Context, from time.Time) ([]entity.StatusCount, error)
		PaymentDistribution(ctx context.Context, from time.Time) ([]entity.StatusCount, error)
		// PaymentPendingCandidates returns pending-payment orders created
		// at or before the cutoff, projected for queue derivation.
		PaymentPendingCandidates(ctx context.Context, cutoff time.Time) ([]entity.QueueCandidate, error)
		CancelRequestedCandidates(ctx context.Context) ([]entity.QueueCandidate, error)
		ShippingPendingCandidates(ctx context.Context) ([]entity.QueueCandidate, error)
		TopProducts(ctx context.Context, from, to time.Time, limit int) ([]entity.RankedItem, error)
		TopBrands(ctx context.Context, from, to time.Time, limit int) ([]entity.RankedItem, error)
		Recent(ctx context.Context, limit int) ([]entity.RecentItem, error)
	}

	// Applications aggregates stringing-service applications. The legacy
	// table stores created_at as a string, so windowed math happens on the
	// Go side over coarse-fetched rows.
	Applications interface {
		CountTotal(ctx context.Context) (int, error)
		CreatedSince(ctx context.Context, fromKey string) ([]entity.ApplicationRow, error)
		UnresolvedCandidates(ctx context.Context) ([]entity.QueueCandidate, error)
		Recent(ctx context.Context, limit int) ([]entity.RecentItem, error)
	}

	Rentals interface {
		ActiveCount(ctx context.Context) (int, error)
		CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
		// PaidRevenue sums fee, string and stringing-labor components of
		// PAID rentals. Deposits are refundable liabilities and are never
		// part of revenue.
		PaidRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
		// DueCandidates returns checked-out rentals due at or before the
		// horizon, for the overdue/due-soon split.
		DueCandidates(ctx context.Context, horizon time.Time) ([]entity.QueueCandidate, error)
	}

	PackageOrders interface {
		CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
		PaidTotals(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error)
		RevenueByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error)
	}

	Reviews interface {
		CountTotal(ctx context.Context) (int, error)
		CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
		CountByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error)
		Recent(ctx context.Context, limit int) ([]entity.RecentItem, error)
	}

	Users interface {
		CountTotal(ctx context.Context) (int, error)
		CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
		SignupsByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error)
		Recent(ctx context.Context, limit int) ([]entity.RecentItem, error)
	}

	Inventory interface {
		CountItems(ctx context.Context) (int, error)
		LowStockCount(ctx context.Context) (int, error)
		LowStockList(ctx context.Context, limit int) ([]entity.LowStock, error)
	}

	Community interface {
		PostCount(ctx context.Context) (int, error)
		PostsCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
		PendingReportCount(ctx context.Context) (int, error)
	}

	Notifications interface {
		PendingCount(ctx context.Context) (int, error)
		FailedCount(ctx context.Context) (int, error)
	}

	Passes interface {
		ActiveCount(ctx context.Context) (int, error)
		// ExpiringCandidates returns active passes expiring inside
		// [from, until].
		ExpiringCandidates(ctx context.Context, from, until time.Time) ([]entity.QueueCandidate, error)
	}

	Points interface {
		IssuedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
		SpentBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
		OutstandingBalance(ctx context.Context) (decimal.Decimal, error)
	}

	Settlements interface {
		Exists(ctx context.Context, monthKey string) (bool, error)
	}

	Repository interface {
		Orders() Orders
		Applications() Applications
		Rentals() Rentals
		PackageOrders() PackageOrders
		Reviews() Reviews
		Users() Users
		Inventory() Inventory
		Community() Community
		Notifications() Notifications
		Passes() Passes
		Points() Points
		Settlements() Settlements
		Ping(ctx context.Context) error
		Close()
		DB() DB
	}

	// DB represents the database interface the generic query helpers run
	// against.
	DB interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
