package partialdate

import (
	"encoding/json"
	"linkedin-voyager/lib/errs"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v int) *int {
	return &v
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name  string
		year  int
		month *int
		day   *int
		valid bool
	}{
		{name: "year only", year: 1815, valid: true},
		{name: "year month", year: 1815, month: ptr(12), valid: true},
		{name: "full", year: 1815, month: ptr(12), day: ptr(10), valid: true},
		{name: "leap day", year: 2024, month: ptr(2), day: ptr(29), valid: true},
		{name: "non leap day", year: 2023, month: ptr(2), day: ptr(29)},
		{name: "day without month", year: 1815, day: ptr(10)},
		{name: "month zero", year: 1815, month: ptr(0)},
		{name: "month thirteen", year: 1815, month: ptr(13)},
		{name: "april 31", year: 2020, month: ptr(4), day: ptr(31)},
		{name: "year zero", year: 0},
		{name: "year too large", year: 10000},
	}

	for _, test := range testCases {
		_, err := New(test.year, test.month, test.day)
		if test.valid {
			require.NoError(t, err, test.name)
			continue
		}
		require.Error(t, err, test.name)
		require.True(t, errs.IsParseCode(err, errs.TemporalRange), test.name)
	}
}

func TestDayWithoutMonthAlwaysRejected(t *testing.T) {
	for year := 1; year <= 9999; year += 97 {
		for day := 1; day <= 31; day++ {
			_, err := New(year, nil, ptr(day))
			require.Error(t, err)
		}
	}
}

func TestCompare(t *testing.T) {
	year := Must(YearOnly(1815))
	dec := Must(YearMonth(1815, 12))
	nov := Must(YearMonth(1815, 11))
	dec10 := Must(YearMonthDay(1815, 12, 10))
	next := Must(YearOnly(1816))

	require.Equal(t, -1, Compare(year, dec))
	require.Equal(t, 1, Compare(dec, year))
	require.Equal(t, -1, Compare(dec, dec10))
	require.Equal(t, -1, Compare(nov, dec))
	require.Equal(t, -1, Compare(dec10, next))
	require.Equal(t, 0, Compare(dec, Must(YearMonth(1815, 12))))
	require.True(t, nov.Before(dec))
	require.False(t, dec.Before(nov))
	require.False(t, dec.Before(dec))

	for month := 1; month <= 12; month++ {
		require.Equal(t, 1, Compare(Must(YearMonth(1815, month)), year), "specified month orders after unspecified")
	}
}

// Compare and Matches disagree on purpose: 1815 sorts before 1815-12 but the
// two match as wildcards. Matches is not transitive either: 1815-11 and
// 1815-12 both match 1815 but not each other.
func TestPartialOrderTies(t *testing.T) {
	year := Must(YearOnly(1815))
	dec := Must(YearMonth(1815, 12))
	nov := Must(YearMonth(1815, 11))
	dec10 := Must(YearMonthDay(1815, 12, 10))

	require.True(t, Matches(year, dec))
	require.NotEqual(t, 0, Compare(year, dec))

	require.True(t, Matches(year, nov))
	require.False(t, Matches(nov, dec))

	require.True(t, Matches(dec, dec10))
	require.True(t, Matches(year, dec10))
	require.False(t, Matches(year, Must(YearOnly(1816))))
}

func TestJSON(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Date
	}{
		{raw: `{"year":1815}`, expected: Must(YearOnly(1815))},
		{raw: `{"year":1815,"month":12}`, expected: Must(YearMonth(1815, 12))},
		{raw: `{"year":1815,"month":12,"day":10}`, expected: Must(YearMonthDay(1815, 12, 10))},
	}
	for _, test := range testCases {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(test.raw), &d))
		require.Equal(t, test.expected, d)

		out, err := json.Marshal(d)
		require.NoError(t, err)
		require.JSONEq(t, test.raw, string(out))
	}

	var d Date
	require.Error(t, json.Unmarshal([]byte(`{"month":12,"day":10}`), &d))
	require.Error(t, json.Unmarshal([]byte(`{"year":1815,"day":10}`), &d))
}

func TestString(t *testing.T) {
	require.Equal(t, "1815", Must(YearOnly(1815)).String())
	require.Equal(t, "1815-12", Must(YearMonth(1815, 12)).String())
	require.Equal(t, "1815-12-10", Must(YearMonthDay(1815, 12, 10)).String())
	require.Equal(t, "", Date{}.String())
}
