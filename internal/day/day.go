// Package day holds the calendar-date type used for per-day logs and alerts.
package day

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const Layout = "2006-01-02"

// Date wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type Date struct{ time.Time }

// Of returns the calendar day of t in t's own location. Every Date is held
// as midnight UTC so dates from the clock and from Postgres compare equal.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Time.Format(Layout) }

// AddDays moves the date by n calendar days.
func (d Date) AddDays(n int) Date { return Date{d.Time.AddDate(0, 0, n)} }

// Key returns the date string, used to bucket entries per calendar day.
// Keys sort in calendar order.
func (d Date) Key() string { return d.String() }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(Layout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+Layout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into Date. NULL zeroes the time.
func (d *Date) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	*d = Of(v.Time)
	return nil
}

// DateValue implements pgtype.DateValuer so Date can be passed as a query arg.
func (d Date) DateValue() (pgtype.Date, error) {
	return pgtype.Date{Time: d.Time, Valid: !d.Time.IsZero()}, nil
}
