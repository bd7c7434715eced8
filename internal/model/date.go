package model

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/rotisserie/eris"
)

// dateLayout is the wire format for all record dates.
const dateLayout = "02/01/2006"

// Date is a calendar date in DD/MM/YYYY form. The zero Date renders as the
// empty string, which downstream consumers read as "not applicable" — it is a
// deliberate sentinel, not a missing value.
type Date struct {
	t time.Time
}

// NewDate builds a Date from day, month, year.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a DD/MM/YYYY string. The empty string parses to the zero
// Date without error.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, eris.Wrapf(err, "model: parse date %q", s)
	}
	return Date{t: t}, nil
}

// IsZero reports whether the date is the empty sentinel.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String renders DD/MM/YYYY, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// Year returns the calendar year, 0 for the zero Date.
func (d Date) Year() int {
	if d.IsZero() {
		return 0
	}
	return d.t.Year()
}

// Time returns the underlying time.Time at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// AddYears returns the date shifted by n calendar years. Month-length
// normalization follows time.AddDate (29 Feb + 1y lands on 1 Mar).
func (d Date) AddYears(n int) Date { return Date{t: d.t.AddDate(n, 0, 0)} }

// AddMonths returns the date shifted by n calendar months.
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// AddDays returns the date shifted by n days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports calendar-date equality.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// DaysUntil returns the whole-day distance from d to other (negative when
// other precedes d).
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// MarshalJSON renders the DD/MM/YYYY string, "" for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a DD/MM/YYYY string or "".
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return eris.Wrap(err, "model: unmarshal date")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// RandomDateIn draws a uniformly random date in [start, end] inclusive.
// An inverted window falls back to start — the generator repairs rather than
// rejects (upstream inconsistency is handled by the validator, not here).
func RandomDateIn(rng *rand.Rand, start, end Date) Date {
	days := start.DaysUntil(end)
	if days < 0 {
		return start
	}
	return start.AddDays(rng.Intn(days + 1))
}
