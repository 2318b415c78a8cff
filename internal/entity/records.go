package entity

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/timewindow"
)

// LenientTime scans timestamps that older storefront generations wrote as
// native DATETIME, ISO-8601 strings, or date-only strings. Unparseable
// input scans to the zero time instead of erroring; derivations treat a
// zero time as "excluded from windowed logic".
type LenientTime struct {
	time.Time
}

var lenientLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (lt *LenientTime) Scan(v any) error {
	switch t := v.(type) {
	case nil:
		lt.Time = time.Time{}
	case time.Time:
		lt.Time = t
	case []byte:
		lt.Time = parseLenient(string(t))
	case string:
		lt.Time = parseLenient(t)
	default:
		lt.Time = time.Time{}
	}
	return nil
}

func (lt LenientTime) Value() (driver.Value, error) {
	if lt.IsZero() {
		return nil, nil
	}
	return lt.Time, nil
}

func parseLenient(s string) time.Time {
	for _, layout := range lenientLayouts {
		if t, err := time.ParseInLocation(layout, s, timewindow.Location()); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ApplicationRow is a raw stringing-application row. The legacy table
// predates the native-DATETIME migration, so created_at arrives as a
// string and amounts may be NULL; windowed aggregation over these rows
// happens after lenient coercion.
type ApplicationRow struct {
	ID                 int                 `db:"id"`
	CreatedAt          LenientTime         `db:"created_at"`
	CustomerName       string              `db:"customer_name"`
	RacquetModel       string              `db:"racquet_model"`
	StringName         string              `db:"string_name"`
	TotalAmount        decimal.NullDecimal `db:"total_amount"`
	RawPaymentStatus   string              `db:"payment_status"`
	RawLifecycleStatus string              `db:"status"`
}

// Amount returns the row amount, zero when the column was NULL.
func (r ApplicationRow) Amount() decimal.Decimal {
	if !r.TotalAmount.Valid {
		return decimal.Zero
	}
	return r.TotalAmount.Decimal
}

// RentalChargeRow holds the charge columns of a rental. The deposit is
// returned to the renter at check-in, so it never counts toward revenue.
type RentalChargeRow struct {
	RentalFee    decimal.NullDecimal `db:"rental_fee"`
	StringPrice  decimal.NullDecimal `db:"string_price"`
	StringingFee decimal.NullDecimal `db:"stringing_fee"`
	Deposit      decimal.NullDecimal `db:"deposit_amount"`
}

// Revenue sums the earned components: rental fee, string consumable and
// stringing labor. NULL columns count as zero.
func (r RentalChargeRow) Revenue() decimal.Decimal {
	rev := decimal.Zero
	for _, c := range []decimal.NullDecimal{r.RentalFee, r.StringPrice, r.StringingFee} {
		if c.Valid {
			rev = rev.Add(c.Decimal)
		}
	}
	return rev
}

// QueueCandidate is the common projection of an order, application, rental
// or pass row that a queue predicate evaluates. Each store maps its own
// column names into this shape; missing display names fall back to a
// placeholder and missing amounts to zero at scan time.
type QueueCandidate struct {
	Kind               string
	ID                 int
	PublicID           string
	CreatedAt          time.Time
	DisplayName        string
	Amount             decimal.Decimal
	RawPaymentStatus   string
	RawLifecycleStatus string
	RawCancelStatus    string
	DueAt              time.Time
	HasTracking        bool
	ShippingMethod     string
}

// Target returns the backoffice navigation path for the candidate.
func (c QueueCandidate) Target() string {
	ref := c.PublicID
	if ref == "" {
		ref = fmt.Sprint(c.ID)
	}
	return fmt.Sprintf("/admin/%ss/%s", c.Kind, ref)
}
