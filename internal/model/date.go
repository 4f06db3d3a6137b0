package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in storage, JSON and reports.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
// SQLite stores it as TEXT, PostgreSQL as DATE.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current date in local time.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string. Longer timestamps are truncated to their date part.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String returns the date as YYYY-MM-DD, or an empty string for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", a full timestamp, an empty string or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	return d.scanString(s)
}

// DateRange is an inclusive range of dates. A zero bound leaves that side open.
type DateRange struct {
	Start Date `json:"startDate"`
	End   Date `json:"endDate"`
}

// Validate checks that Start is not after End.
func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End.Time) {
		return ValidationError("start date must not be after end date")
	}
	return nil
}

// String renders the range for report headers.
func (r DateRange) String() string {
	start, end := r.Start.String(), r.End.String()
	switch {
	case start == "" && end == "":
		return "all dates"
	case start == "":
		return "up to " + end
	case end == "":
		return start + " onwards"
	default:
		return start + " to " + end
	}
}
