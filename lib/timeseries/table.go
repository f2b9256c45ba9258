package timeseries

import (
	"math"
	"slices"
	"time"
)

// Table is an ordered collection of series sharing a time axis. Column
// order follows the order indicators were requested in.
type Table struct {
	Columns []Series
}

func (t Table) IsEmpty() bool {
	for _, c := range t.Columns {
		if len(c.Points) > 0 {
			return false
		}
	}
	return true
}

func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Merge appends the columns of other after the columns of t.
func (t Table) Merge(other Table) Table {
	out := Table{Columns: make([]Series, 0, len(t.Columns)+len(other.Columns))}
	out.Columns = append(out.Columns, t.Columns...)
	out.Columns = append(out.Columns, other.Columns...)
	return out
}

// Index returns the sorted union of all column timestamps.
func (t Table) Index() []time.Time {
	var index []time.Time
	for _, c := range t.Columns {
		for _, p := range c.Points {
			index = append(index, p.Time)
		}
	}
	slices.SortFunc(index, time.Time.Compare)
	return slices.CompactFunc(index, time.Time.Equal)
}

// Rows aligns all columns on the union index, filling gaps with NaN.
func (t Table) Rows() ([]time.Time, [][]float64) {
	index := t.Index()

	lookup := make([]map[int64]float64, len(t.Columns))
	for i, c := range t.Columns {
		lookup[i] = make(map[int64]float64, len(c.Points))
		for _, p := range c.Points {
			lookup[i][p.Time.Unix()] = p.Value
		}
	}

	rows := make([][]float64, len(index))
	for r, ts := range index {
		row := make([]float64, len(t.Columns))
		for c := range t.Columns {
			v, ok := lookup[c][ts.Unix()]
			if !ok {
				v = math.NaN()
			}
			row[c] = v
		}
		rows[r] = row
	}
	return index, rows
}

// DropEmpty removes observations that are NaN in every column, then
// columns with no observations left.
func (t Table) DropEmpty() Table {
	index, rows := t.Rows()

	keep := make(map[int64]bool, len(index))
	for r, ts := range index {
		for _, v := range rows[r] {
			if !math.IsNaN(v) {
				keep[ts.Unix()] = true
				break
			}
		}
	}

	out := Table{}
	for _, c := range t.Columns {
		filtered := Series{Name: c.Name, Freq: c.Freq}
		for _, p := range c.Points {
			if keep[p.Time.Unix()] && !math.IsNaN(p.Value) {
				filtered.Points = append(filtered.Points, p)
			}
		}
		if len(filtered.Points) > 0 {
			out.Columns = append(out.Columns, filtered)
		}
	}
	return out
}

// LowestFrequency returns the coarsest native frequency among columns.
func (t Table) LowestFrequency() Frequency {
	freqs := make([]Frequency, len(t.Columns))
	for i, c := range t.Columns {
		freqs[i] = c.Freq
	}
	return Lowest(freqs...)
}
