package timeseries

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLowest(t *testing.T) {
	require.Equal(t, Monthly, Lowest(Daily, Monthly))
	require.Equal(t, Annual, Lowest(Annual, Quarterly, Daily))
	require.Equal(t, Quarterly, Lowest(Quarterly))
	require.Equal(t, Semiannual, Lowest(Semiannual, Monthly, Weekly))
	require.Equal(t, Frequency(""), Lowest())
}

func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency("q")
	require.NoError(t, err)
	require.Equal(t, Quarterly, f)

	f, err = ParseFrequency("6m")
	require.NoError(t, err)
	require.Equal(t, Semiannual, f)

	_, err = ParseFrequency("fortnightly")
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	testCases := []struct {
		freq     Frequency
		in       time.Time
		expected time.Time
	}{
		{Annual, date(2015, time.August, 17), date(2015, time.January, 1)},
		{Semiannual, date(2015, time.August, 17), date(2015, time.July, 1)},
		{Semiannual, date(2015, time.March, 2), date(2015, time.January, 1)},
		{Quarterly, date(2015, time.August, 17), date(2015, time.July, 1)},
		{Quarterly, date(2015, time.December, 31), date(2015, time.October, 1)},
		{Monthly, date(2015, time.August, 17), date(2015, time.August, 1)},
		// 2015-08-17 was a monday
		{Weekly, date(2015, time.August, 17), date(2015, time.August, 17)},
		{Weekly, date(2015, time.August, 20), date(2015, time.August, 17)},
		{Daily, date(2015, time.August, 17), date(2015, time.August, 17)},
	}
	for _, test := range testCases {
		got := test.freq.Truncate(test.in)
		if !got.Equal(test.expected) {
			t.Fatalf("%s.Truncate(%s) = %s, expected %s",
				test.freq, test.in, got, test.expected)
		}
	}
}

func TestRange(t *testing.T) {
	diff := cmp.Diff(
		[]time.Time{
			date(2014, time.November, 1),
			date(2014, time.December, 1),
			date(2015, time.January, 1),
		},
		Range(date(2014, time.November, 12), 3, Monthly),
	)
	if diff != "" {
		t.Fatal(diff)
	}

	diff = cmp.Diff(
		[]time.Time{
			date(2015, time.October, 1),
			date(2016, time.January, 1),
		},
		Range(date(2015, time.December, 31), 2, Quarterly),
	)
	if diff != "" {
		t.Fatal(diff)
	}

	// daily ranges cross Feb 29 only on leap years
	days := Range(date(2016, time.February, 28), 3, Daily)
	require.Equal(t, date(2016, time.February, 29), days[1])
	require.Equal(t, date(2016, time.March, 1), days[2])

	days = Range(date(2015, time.February, 28), 2, Daily)
	require.Equal(t, date(2015, time.March, 1), days[1])
}
