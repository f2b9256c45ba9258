package timeseries

import (
	"fmt"
	"strings"
	"time"
)

// Frequency identifies how far apart consecutive observations are.
// The zero value is invalid.
type Frequency string

const (
	Annual     Frequency = "A"
	Semiannual Frequency = "6M"
	Quarterly  Frequency = "Q"
	Monthly    Frequency = "M"
	Weekly     Frequency = "W"
	Daily      Frequency = "D"
)

// ordered from coarsest to finest, the same ordering the BCCR web
// service catalog uses
var frequencyRank = map[Frequency]int{
	Annual:     0,
	Semiannual: 1,
	Quarterly:  2,
	Monthly:    3,
	Weekly:     4,
	Daily:      5,
}

func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return Annual, nil
	case "6M", "S":
		return Semiannual, nil
	case "Q":
		return Quarterly, nil
	case "M":
		return Monthly, nil
	case "W":
		return Weekly, nil
	case "D":
		return Daily, nil
	}
	return "", fmt.Errorf("unknown frequency: %q", s)
}

func (f Frequency) Valid() bool {
	_, ok := frequencyRank[f]
	return ok
}

// Rank orders frequencies coarsest first: Annual < Daily.
func (f Frequency) Rank() int {
	r, ok := frequencyRank[f]
	if !ok {
		return -1
	}
	return r
}

// Lowest returns the coarsest of the given frequencies.
func Lowest(freqs ...Frequency) Frequency {
	lowest := Frequency("")
	for _, f := range freqs {
		if !f.Valid() {
			continue
		}
		if lowest == "" || f.Rank() < lowest.Rank() {
			lowest = f
		}
	}
	return lowest
}

// Step advances t by one period.
func (f Frequency) Step(t time.Time) time.Time {
	switch f {
	case Annual:
		return t.AddDate(1, 0, 0)
	case Semiannual:
		return t.AddDate(0, 6, 0)
	case Quarterly:
		return t.AddDate(0, 3, 0)
	case Monthly:
		return t.AddDate(0, 1, 0)
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Daily:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// Truncate maps t to the start of the period that contains it.
func (f Frequency) Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	switch f {
	case Annual:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	case Semiannual:
		if m >= time.July {
			return time.Date(y, time.July, 1, 0, 0, 0, 0, t.Location())
		}
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	case Quarterly:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, t.Location())
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case Weekly:
		day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7 // monday-based week
		return day.AddDate(0, 0, -offset)
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
	return t
}

// Range builds n period-start timestamps beginning at start.
func Range(start time.Time, n int, f Frequency) []time.Time {
	out := make([]time.Time, n)
	t := f.Truncate(start)
	for i := 0; i < n; i++ {
		out[i] = t
		t = f.Step(t)
	}
	return out
}
