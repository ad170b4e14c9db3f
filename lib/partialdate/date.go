// Package partialdate holds dates of variable precision: a year, a year and
// month, or a full calendar day.
package partialdate

import (
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/errs"
	"time"
)

// Date has a required year and optional month and day. A day is only present
// when the month is. Zero components mean "unspecified".
type Date struct {
	year  int
	month int
	day   int
}

// New validates year 1..9999, month 1..12 and day against the month's length.
func New(year int, month, day *int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, rangeError("year", year, "year must be between 1 and 9999")
	}
	d := Date{year: year}
	if month == nil {
		if day != nil {
			return Date{}, rangeError("day", *day, "day given without a month")
		}
		return d, nil
	}
	if *month < 1 || *month > 12 {
		return Date{}, rangeError("month", *month, "month must be between 1 and 12")
	}
	d.month = *month
	if day == nil {
		return d, nil
	}
	if *day < 1 || *day > daysIn(year, *month) {
		return Date{}, rangeError("day", *day, fmt.Sprintf(
			"day must be between 1 and %d for %04d-%02d", daysIn(year, *month), year, *month,
		))
	}
	d.day = *day
	return d, nil
}

func YearOnly(year int) (Date, error) {
	return New(year, nil, nil)
}

func YearMonth(year, month int) (Date, error) {
	return New(year, &month, nil)
}

func YearMonthDay(year, month, day int) (Date, error) {
	return New(year, &month, &day)
}

// Must panics on error, for fixtures.
func Must(d Date, err error) Date {
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime keeps year, month and day of t in its own location.
func FromTime(t time.Time) Date {
	return Date{year: t.Year(), month: int(t.Month()), day: t.Day()}
}

func rangeError(field string, value int, reason string) *errs.ParseError {
	return &errs.ParseError{
		Code:   errs.TemporalRange,
		Field:  field,
		Raw:    fmt.Sprint(value),
		Reason: reason,
	}
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) Year() int {
	return d.year
}

func (d Date) Month() (int, bool) {
	return d.month, d.month != 0
}

func (d Date) Day() (int, bool) {
	return d.day, d.day != 0
}

func (d Date) IsZero() bool {
	return d.year == 0
}

// Precision is 1 for year only, 2 with a month and 3 with a day.
func (d Date) Precision() int {
	switch {
	case d.day != 0:
		return 3
	case d.month != 0:
		return 2
	case d.year != 0:
		return 1
	}
	return 0
}

// Compare orders by year, then month, then day. An unspecified component
// sorts before any specified one, so 1815 < 1815-01 < 1815-01-01. Compare
// returns 0 only for identical dates; use Matches for wildcard equality.
func Compare(a, b Date) int {
	if c := cmpInt(a.year, b.year); c != 0 {
		return c
	}
	if c := cmpInt(a.month, b.month); c != 0 {
		return c
	}
	return cmpInt(a.day, b.day)
}

// Matches treats unspecified components as wildcards: 1815 matches 1815-12
// and 1815-12-10, while 1815-11 does not match 1815-12. It is not transitive.
func Matches(a, b Date) bool {
	if a.year != b.year {
		return false
	}
	if a.month == 0 || b.month == 0 {
		return true
	}
	if a.month != b.month {
		return false
	}
	return a.day == 0 || b.day == 0 || a.day == b.day
}

func (d Date) Before(o Date) bool {
	return Compare(d, o) < 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MonthsUntil counts whole calendar months from d to o, ignoring days. An
// unspecified month counts as January.
func (d Date) MonthsUntil(o Date) int {
	return (o.year-d.year)*12 + (max(o.month, 1) - max(d.month, 1))
}

func (d Date) String() string {
	switch d.Precision() {
	case 3:
		return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
	case 2:
		return fmt.Sprintf("%04d-%02d", d.year, d.month)
	case 1:
		return fmt.Sprintf("%04d", d.year)
	}
	return ""
}

type wire struct {
	Year  *int `json:"year,omitempty" yaml:"year,omitempty"`
	Month *int `json:"month,omitempty" yaml:"month,omitempty"`
	Day   *int `json:"day,omitempty" yaml:"day,omitempty"`
}

func (d Date) wire() wire {
	var w wire
	if d.year != 0 {
		w.Year = &d.year
	}
	if d.month != 0 {
		w.Month = &d.month
	}
	if d.day != 0 {
		w.Day = &d.day
	}
	return w
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.wire())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Year == nil {
		return &errs.ParseError{Code: errs.TemporalRange, Field: "year", Raw: string(data), Reason: "year is required"}
	}
	parsed, err := New(*w.Year, w.Month, w.Day)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.wire(), nil
}
