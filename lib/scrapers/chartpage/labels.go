package chartpage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bccrdata/lib/textutil"
)

// spanish month names and their 3-letter abbreviations as they appear
// on chart headers. setiembre is the costa rican spelling.
var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

func monthFromSpanish(word string) (time.Month, bool) {
	word = textutil.Fold(word)
	if m, ok := spanishMonths[word]; ok {
		return m, true
	}
	// abbreviated forms like Ene, Feb, Set
	if len(word) >= 3 {
		prefix := word[:3]
		for name, m := range spanishMonths {
			if strings.HasPrefix(name, prefix) {
				return m, true
			}
		}
	}
	return 0, false
}

var digitRuns = regexp.MustCompile(`\d+`)

// parseQuarterLabel interprets quarter headers such as "trim 1/2010"
// or "1er trimestre 2010": one digit run is the 4-digit year, another
// the quarter number.
func parseQuarterLabel(label string) (time.Time, error) {
	runs := digitRuns.FindAllString(label, -1)
	year, quarter := 0, 0
	for _, run := range runs {
		n, _ := strconv.Atoi(run)
		switch {
		case len(run) == 4:
			year = n
		case n >= 1 && n <= 4:
			quarter = n
		}
	}
	if year == 0 || quarter == 0 {
		return time.Time{}, fmt.Errorf("cannot read quarter label %q", label)
	}
	month := time.Month(3*(quarter-1) + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// parseMonthYearLabel interprets labels such as "Enero 2010" or
// "Ene/2010".
func parseMonthYearLabel(label string) (time.Time, error) {
	runs := digitRuns.FindAllString(label, -1)
	year := 0
	for _, run := range runs {
		if len(run) == 4 {
			year, _ = strconv.Atoi(run)
		}
	}
	if year == 0 {
		return time.Time{}, fmt.Errorf("cannot read month label %q: no year", label)
	}
	for _, word := range strings.Fields(strings.NewReplacer("/", " ", "-", " ").Replace(label)) {
		if m, ok := monthFromSpanish(word); ok {
			return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot read month label %q: no month", label)
}

// parseDayLabel interprets full-date row labels such as "17 Ene 2020".
func parseDayLabel(label string) (time.Time, error) {
	fields := strings.Fields(strings.NewReplacer("/", " ", "-", " ").Replace(label))
	if len(fields) < 3 {
		return time.Time{}, fmt.Errorf("cannot read date label %q", label)
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("cannot read date label %q: bad day", label)
	}
	month, ok := monthFromSpanish(fields[1])
	if !ok {
		return time.Time{}, fmt.Errorf("cannot read date label %q: bad month", label)
	}
	year, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || year < 1000 {
		return time.Time{}, fmt.Errorf("cannot read date label %q: bad year", label)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// labelYear pulls the trailing 4-digit year out of a row label.
func labelYear(label string) (int, bool) {
	runs := digitRuns.FindAllString(label, -1)
	for i := len(runs) - 1; i >= 0; i-- {
		if len(runs[i]) == 4 {
			year, _ := strconv.Atoi(runs[i])
			return year, true
		}
	}
	return 0, false
}

// isFeb29Label reports whether a day label names february 29, with or
// without a year ("29 Feb", "29 Feb 2012").
func isFeb29Label(label string) bool {
	fields := strings.Fields(label)
	if len(fields) < 2 || fields[0] != "29" {
		return false
	}
	m, ok := monthFromSpanish(fields[1])
	return ok && m == time.February
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
