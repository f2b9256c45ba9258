// Package dateparam parses the loosely formatted date parameters the
// BCCR endpoints accept. A year, a year-month or a full date may be
// given, with components separated by any non-digit characters:
//
//	2015, "2015", "2017-03", "03/2017", "2017m3", "2017/8/12", "12/8/2017"
//
// A start-of-range parameter resolves to the first day of the period,
// an end-of-range parameter to the last day.
package dateparam

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

type Bound int

const (
	Start Bound = iota
	End
)

var digitRuns = regexp.MustCompile(`\d+`)

func Parse(value string, bound Bound) (time.Time, error) {
	parts := digitRuns.FindAllString(value, -1)

	switch len(parts) {
	case 1:
		year, err := parseYear(parts[0])
		if err != nil {
			return time.Time{}, err
		}
		if bound == Start {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
		}
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC), nil

	case 2:
		// the 4-digit component is the year, the other the month,
		// in either order
		year, month, err := yearAndMonth(parts[0], parts[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("date %q: %w", value, err)
		}
		if bound == Start {
			return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
		}
		// last day of month
		return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1), nil

	case 3:
		var y, m, d string
		if len(parts[0]) == 4 {
			y, m, d = parts[0], parts[1], parts[2]
		} else {
			d, m, y = parts[0], parts[1], parts[2]
		}
		year, err := parseYear(y)
		if err != nil {
			return time.Time{}, fmt.Errorf("date %q: %w", value, err)
		}
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			return time.Time{}, fmt.Errorf("date %q: bad month %q", value, m)
		}
		day, err := strconv.Atoi(d)
		if err != nil || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("date %q: bad day %q", value, d)
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("cannot interpret date parameter: %q", value)
}

func parseYear(s string) (int, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("bad year %q", s)
	}
	return strconv.Atoi(s)
}

func yearAndMonth(a, b string) (int, time.Month, error) {
	ys, ms := a, b
	if len(a) != 4 {
		ys, ms = b, a
	}
	year, err := parseYear(ys)
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(ms)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("bad month %q", ms)
	}
	return year, time.Month(month), nil
}

// YearFirst renders the yyyy/mm/dd form the chart-page query expects.
func YearFirst(t time.Time) string {
	return t.Format("2006/01/02")
}

// DayFirst renders the dd/mm/yyyy form the web-service query expects.
func DayFirst(t time.Time) string {
	return t.Format("02/01/2006")
}
