package partialdate

import (
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/errs"
)

// TimePeriod has a required start and an optional end. A missing end means
// the period is ongoing, which is different from not knowing the period at
// all (a nil *TimePeriod at the use site).
type TimePeriod struct {
	start Date
	end   Date
}

// NewTimePeriod accepts an end before the start; callers check Inverted and
// report it instead of rejecting the period. A nil end means ongoing. A
// non-nil zero end is rejected so it is never mistaken for ongoing.
func NewTimePeriod(start Date, end *Date) (TimePeriod, error) {
	if start.IsZero() {
		return TimePeriod{}, &errs.ParseError{Code: errs.TemporalRange, Field: "startDate", Reason: "start is required"}
	}
	p := TimePeriod{start: start}
	if end != nil {
		if end.IsZero() {
			return TimePeriod{}, &errs.ParseError{Code: errs.TemporalRange, Field: "endDate", Reason: "end has no year, omit it for an ongoing period"}
		}
		p.end = *end
	}
	return p, nil
}

func (p TimePeriod) Start() Date {
	return p.start
}

func (p TimePeriod) End() (Date, bool) {
	return p.end, !p.end.IsZero()
}

func (p TimePeriod) Ongoing() bool {
	return p.end.IsZero()
}

func (p TimePeriod) IsZero() bool {
	return p.start.IsZero()
}

// Inverted is true when the end is strictly before the start and the two do
// not match under wildcard comparison.
func (p TimePeriod) Inverted() bool {
	if p.Ongoing() {
		return false
	}
	return Compare(p.end, p.start) < 0 && !Matches(p.end, p.start)
}

// DurationMonths is the length in months, at least 1. Ongoing periods run
// until now.
func (p TimePeriod) DurationMonths(now Date) int {
	end := now
	if !p.Ongoing() {
		end = p.end
	}
	return max(p.start.MonthsUntil(end), 1)
}

func (p TimePeriod) DurationString(now Date) string {
	months := p.DurationMonths(now)
	if months < 12 {
		if months == 1 {
			return "1 month"
		}
		return fmt.Sprintf("%d months", months)
	}
	years := months / 12
	remaining := months % 12

	yearsText := fmt.Sprintf("%d years", years)
	if years == 1 {
		yearsText = "1 year"
	}
	switch remaining {
	case 0:
		return yearsText
	case 1:
		return yearsText + " 1 month"
	}
	return fmt.Sprintf("%s %d months", yearsText, remaining)
}

func (p TimePeriod) String() string {
	if p.Ongoing() {
		return p.start.String() + " - present"
	}
	return p.start.String() + " - " + p.end.String()
}

type periodWire struct {
	StartDate Date  `json:"startDate" yaml:"startDate"`
	EndDate   *Date `json:"endDate,omitempty" yaml:"endDate,omitempty"`
}

func (p TimePeriod) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	w := periodWire{StartDate: p.start}
	if !p.Ongoing() {
		w.EndDate = &p.end
	}
	return json.Marshal(w)
}

func (p *TimePeriod) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = TimePeriod{}
		return nil
	}
	var w periodWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed, err := NewTimePeriod(w.StartDate, w.EndDate)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p TimePeriod) MarshalYAML() (any, error) {
	w := periodWire{StartDate: p.start}
	if !p.Ongoing() {
		w.EndDate = &p.end
	}
	return w, nil
}
