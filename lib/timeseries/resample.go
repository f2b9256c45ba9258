package timeseries

import (
	"fmt"
	"math"
	"strings"
)

// Aggregator folds the observations of one target period into a single
// value. Missing observations are excluded before the fold.
type Aggregator func(values []float64) float64

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func Sum(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

func First(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[0]
}

func Last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}

func ParseAggregator(name string) (Aggregator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mean", "avg", "average":
		return Mean, nil
	case "sum":
		return Sum, nil
	case "first":
		return First, nil
	case "last":
		return Last, nil
	}
	return nil, fmt.Errorf("unknown aggregator: %q", name)
}

// Resample converts a series to a coarser frequency. Each target
// period aggregates the source observations that fall inside it; NaN
// source values are skipped and periods with no observations are
// omitted.
func Resample(s Series, freq Frequency, agg Aggregator) (Series, error) {
	if !freq.Valid() {
		return Series{}, fmt.Errorf("invalid target frequency: %q", freq)
	}
	if s.Freq.Valid() && freq.Rank() > s.Freq.Rank() {
		return Series{}, fmt.Errorf(
			"cannot resample %q from %s to finer frequency %s", s.Name, s.Freq, freq)
	}
	if agg == nil {
		agg = Mean
	}
	if s.Freq == freq {
		return s, nil
	}

	out := Series{Name: s.Name, Freq: freq}
	var bucket []float64
	flush := func(start Point) {
		out.Points = append(out.Points, Point{
			Time:  freq.Truncate(start.Time),
			Value: agg(bucket),
		})
	}

	var open *Point
	for _, p := range s.Points {
		if open != nil && !freq.Truncate(p.Time).Equal(freq.Truncate(open.Time)) {
			flush(*open)
			open = nil
			bucket = nil
		}
		if open == nil {
			start := p
			open = &start
		}
		if !math.IsNaN(p.Value) {
			bucket = append(bucket, p.Value)
		}
	}
	if open != nil {
		flush(*open)
	}
	return out.DropNaN(), nil
}

// ResampleTable resamples every column, leaving columns already at the
// target frequency untouched.
func ResampleTable(t Table, freq Frequency, agg Aggregator) (Table, error) {
	out := Table{Columns: make([]Series, len(t.Columns))}
	for i, c := range t.Columns {
		if c.Freq == freq {
			out.Columns[i] = c
			continue
		}
		r, err := Resample(c, freq, agg)
		if err != nil {
			return Table{}, err
		}
		out.Columns[i] = r
	}
	return out, nil
}
