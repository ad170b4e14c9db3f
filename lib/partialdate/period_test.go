package partialdate

import (
	"encoding/json"
	"linkedin-voyager/lib/errs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimePeriod(t *testing.T) {
	start := Must(YearMonth(2019, 3))
	end := Must(YearMonth(2021, 6))

	ongoing, err := NewTimePeriod(start, nil)
	require.NoError(t, err)
	require.True(t, ongoing.Ongoing())
	_, ok := ongoing.End()
	require.False(t, ok)

	closed, err := NewTimePeriod(start, &end)
	require.NoError(t, err)
	require.False(t, closed.Ongoing())
	require.False(t, closed.Inverted())

	_, err = NewTimePeriod(Date{}, &end)
	require.Error(t, err)

	_, err = NewTimePeriod(start, &Date{})
	require.True(t, errs.IsParseCode(err, errs.TemporalRange))
}

func TestInvertedIsAcceptedAndFlagged(t *testing.T) {
	start := Must(YearMonth(2021, 6))
	end := Must(YearMonth(2019, 3))
	p, err := NewTimePeriod(start, &end)
	require.NoError(t, err)
	require.True(t, p.Inverted())

	// the end is less precise than the start but matches it
	sameYear := Must(YearOnly(2021))
	p, err = NewTimePeriod(start, &sameYear)
	require.NoError(t, err)
	require.False(t, p.Inverted())
}

func TestDuration(t *testing.T) {
	now := Must(YearMonth(2024, 1))
	testCases := []struct {
		start    Date
		end      *Date
		months   int
		expected string
	}{
		{start: Must(YearMonth(2023, 12)), months: 1, expected: "1 month"},
		{start: Must(YearMonth(2024, 1)), months: 1, expected: "1 month"},
		{start: Must(YearMonth(2023, 7)), months: 6, expected: "6 months"},
		{start: Must(YearMonth(2023, 1)), months: 12, expected: "1 year"},
		{start: Must(YearMonth(2021, 1)), months: 36, expected: "3 years"},
		{start: Must(YearMonth(2022, 12)), months: 13, expected: "1 year 1 month"},
		{start: Must(YearMonth(2020, 3)), end: ptrDate(Must(YearMonth(2022, 8))), months: 29, expected: "2 years 5 months"},
	}
	for _, test := range testCases {
		p, err := NewTimePeriod(test.start, test.end)
		require.NoError(t, err)
		require.Equal(t, test.months, p.DurationMonths(now), p.String())
		require.Equal(t, test.expected, p.DurationString(now), p.String())
	}
}

func ptrDate(d Date) *Date {
	return &d
}

func TestTimePeriodJSON(t *testing.T) {
	raw := `{"startDate":{"year":2019,"month":3},"endDate":{"year":2021}}`
	var p TimePeriod
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	end, ok := p.End()
	require.True(t, ok)
	require.Equal(t, Must(YearOnly(2021)), end)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, raw, string(out))

	raw = `{"startDate":{"year":2019}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.True(t, p.Ongoing())
}
