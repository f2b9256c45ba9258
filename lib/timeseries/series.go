package timeseries

import (
	"fmt"
	"math"
	"time"
)

// Point is a single observation. A missing observation is NaN rather
// than an absent point, so layout decoders can index positionally
// before dropping gaps.
type Point struct {
	Time  time.Time
	Value float64
}

type Series struct {
	Name   string
	Freq   Frequency
	Points []Point
}

// New builds a range-indexed series: values[i] is dated i periods
// after start.
func New(name string, freq Frequency, start time.Time, values []float64) Series {
	times := Range(start, len(values), freq)
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Time: times[i], Value: v}
	}
	return Series{Name: name, Freq: freq, Points: points}
}

func (s Series) Len() int { return len(s.Points) }

// DropNaN removes missing observations.
func (s Series) DropNaN() Series {
	out := Series{Name: s.Name, Freq: s.Freq}
	for _, p := range s.Points {
		if math.IsNaN(p.Value) {
			continue
		}
		out.Points = append(out.Points, p)
	}
	return out
}

// At returns the observation at t, or NaN.
func (s Series) At(t time.Time) float64 {
	for _, p := range s.Points {
		if p.Time.Equal(t) {
			return p.Value
		}
	}
	return math.NaN()
}

func (s Series) First() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[0], true
}

func (s Series) Last() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Validate checks the unique-ascending-timestamp invariant.
func (s Series) Validate() error {
	for i := 1; i < len(s.Points); i++ {
		if !s.Points[i-1].Time.Before(s.Points[i].Time) {
			return fmt.Errorf(
				"series %q: timestamps not strictly ascending at index %d (%s >= %s)",
				s.Name, i,
				s.Points[i-1].Time.Format(time.DateOnly),
				s.Points[i].Time.Format(time.DateOnly),
			)
		}
	}
	return nil
}

// Dedupe keeps the last value for each duplicated timestamp. The web
// service occasionally reports the same date twice (e.g. monex 3223
// around 2010).
func (s Series) Dedupe() Series {
	out := Series{Name: s.Name, Freq: s.Freq}
	for _, p := range s.Points {
		if n := len(out.Points); n > 0 && out.Points[n-1].Time.Equal(p.Time) {
			out.Points[n-1] = p
			continue
		}
		out.Points = append(out.Points, p)
	}
	return out
}
