package chartpage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bccrdata/lib/textutil"
	"bccrdata/lib/timeseries"
)

// Layout names the grid convention a chart renders its data in. The
// first word is the meaning of the row axis, the second the meaning of
// the column axis: a YearMonth chart has one row per year and one
// column per month.
type Layout string

const (
	YearMonth        Layout = "YearMonth"
	MonthYear        Layout = "MonthYear"
	IndicatorYear    Layout = "IndicatorYear"
	IndicatorQuarter Layout = "IndicatorQuarter"
	QuarterIndicator Layout = "QuarterIndicator"
	MonthIndicator   Layout = "MonthIndicator"
	IndicatorMonth   Layout = "IndicatorMonth"
	DayYear          Layout = "DayYear"
	DayIndicator     Layout = "DayIndicator"
)

var decoders = map[Layout]func(RawChart) (timeseries.Table, error){
	YearMonth:        decodeYearMonth,
	MonthYear:        decodeMonthYear,
	IndicatorYear:    decodeIndicatorYear,
	IndicatorQuarter: decodeIndicatorQuarter,
	QuarterIndicator: decodeQuarterIndicator,
	MonthIndicator:   decodeMonthIndicator,
	IndicatorMonth:   decodeIndicatorMonth,
	DayYear:          decodeDayYear,
	DayIndicator:     decodeDayIndicator,
}

func ParseLayout(s string) (Layout, error) {
	l := Layout(strings.TrimSpace(s))
	if _, ok := decoders[l]; !ok {
		return "", fmt.Errorf("unknown chart layout: %q", s)
	}
	return l, nil
}

// Frequency returns the native observation frequency of the layout.
func (l Layout) Frequency() timeseries.Frequency {
	switch l {
	case YearMonth, MonthYear, MonthIndicator, IndicatorMonth:
		return timeseries.Monthly
	case IndicatorQuarter, QuarterIndicator:
		return timeseries.Quarterly
	case IndicatorYear:
		return timeseries.Annual
	case DayYear, DayIndicator:
		return timeseries.Daily
	}
	return ""
}

// Decode turns a raw grid into a table of series according to the
// layout convention. Single-series layouts produce one column named
// after the chart title; indicator layouts produce one column per
// indicator label. Missing observations are dropped.
func Decode(raw RawChart, layout Layout) (timeseries.Table, error) {
	decode, ok := decoders[layout]
	if !ok {
		return timeseries.Table{}, fmt.Errorf("chart %d: unknown layout %q", raw.Chart, layout)
	}
	table, err := decode(raw)
	if err != nil {
		return timeseries.Table{}, fmt.Errorf("chart %d: decode %s: %w", raw.Chart, layout, err)
	}
	return table, nil
}

// one row per year, january through december across the columns.
// observations run row-major from january of the first year.
func decodeYearMonth(raw RawChart) (timeseries.Table, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw.Index[0]))
	if err != nil {
		return timeseries.Table{}, fmt.Errorf("first row label %q is not a year", raw.Index[0])
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	var values []float64
	for _, row := range raw.Values {
		values = append(values, row...)
	}
	s := timeseries.New(raw.Title, timeseries.Monthly, start, values).DropNaN()
	return timeseries.Table{Columns: []timeseries.Series{s}}, nil
}

// one row per month, one column per year. some of these charts lead
// with an annual total row, which is dropped. observations run
// column-major from january of the first year.
func decodeMonthYear(raw RawChart) (timeseries.Table, error) {
	index, grid := raw.Index, raw.Values
	if strings.Contains(textutil.Fold(index[0]), "total") {
		index, grid = index[1:], grid[1:]
	}
	if len(grid) == 0 {
		return timeseries.Table{}, fmt.Errorf("no month rows")
	}

	year, err := strconv.Atoi(strings.TrimSpace(raw.Columns[0]))
	if err != nil {
		return timeseries.Table{}, fmt.Errorf("first column label %q is not a year", raw.Columns[0])
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	var values []float64
	for j := range raw.Columns {
		for i := range grid {
			values = append(values, grid[i][j])
		}
	}
	s := timeseries.New(raw.Title, timeseries.Monthly, start, values).DropNaN()
	return timeseries.Table{Columns: []timeseries.Series{s}}, nil
}

// one row per indicator, one column per year.
func decodeIndicatorYear(raw RawChart) (timeseries.Table, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw.Columns[0]))
	if err != nil {
		return timeseries.Table{}, fmt.Errorf("first column label %q is not a year", raw.Columns[0])
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return rowsAsSeries(raw, timeseries.Annual, start), nil
}

// one row per indicator, one column per quarter.
func decodeIndicatorQuarter(raw RawChart) (timeseries.Table, error) {
	start, err := parseQuarterLabel(raw.Columns[0])
	if err != nil {
		return timeseries.Table{}, err
	}
	return rowsAsSeries(raw, timeseries.Quarterly, start), nil
}

// one row per quarter, one column per indicator.
func decodeQuarterIndicator(raw RawChart) (timeseries.Table, error) {
	start, err := parseQuarterLabel(raw.Index[0])
	if err != nil {
		return timeseries.Table{}, err
	}
	return columnsAsSeries(raw, timeseries.Quarterly, start), nil
}

// one row per month, one column per indicator.
func decodeMonthIndicator(raw RawChart) (timeseries.Table, error) {
	start, err := parseMonthYearLabel(raw.Index[0])
	if err != nil {
		return timeseries.Table{}, err
	}
	return columnsAsSeries(raw, timeseries.Monthly, start), nil
}

// one row per indicator, one column per month.
func decodeIndicatorMonth(raw RawChart) (timeseries.Table, error) {
	start, err := parseMonthYearLabel(raw.Columns[0])
	if err != nil {
		return timeseries.Table{}, err
	}
	return rowsAsSeries(raw, timeseries.Monthly, start), nil
}

// one row per calendar day (366 of them), one column per year. the
// february 29 row only holds data in leap-year columns; in other
// columns it is padding and must be skipped so days keep consecutive.
func decodeDayYear(raw RawChart) (timeseries.Table, error) {
	feb29 := -1
	for i, label := range raw.Index {
		if isFeb29Label(label) {
			feb29 = i
			break
		}
	}

	firstYear, err := strconv.Atoi(strings.TrimSpace(raw.Columns[0]))
	if err != nil {
		return timeseries.Table{}, fmt.Errorf("first column label %q is not a year", raw.Columns[0])
	}
	start := time.Date(firstYear, time.January, 1, 0, 0, 0, 0, time.UTC)

	var values []float64
	for j, label := range raw.Columns {
		year, err := strconv.Atoi(strings.TrimSpace(label))
		if err != nil {
			return timeseries.Table{}, fmt.Errorf("column label %q is not a year", label)
		}
		for i := range raw.Values {
			if i == feb29 && !isLeapYear(year) {
				continue
			}
			values = append(values, raw.Values[i][j])
		}
	}
	s := timeseries.New(raw.Title, timeseries.Daily, start, values).DropNaN()
	return timeseries.Table{Columns: []timeseries.Series{s}}, nil
}

// one row per date ("17 Ene 2020"), one column per indicator. the grid
// still carries february 29 rows in non-leap years; those are padding.
func decodeDayIndicator(raw RawChart) (timeseries.Table, error) {
	keep := make([]int, 0, len(raw.Index))
	for i, label := range raw.Index {
		if isFeb29Label(label) {
			year, ok := labelYear(label)
			if ok && !isLeapYear(year) {
				continue
			}
		}
		keep = append(keep, i)
	}
	if len(keep) == 0 {
		return timeseries.Table{}, fmt.Errorf("no data rows")
	}

	start, err := parseDayLabel(raw.Index[keep[0]])
	if err != nil {
		return timeseries.Table{}, err
	}

	out := timeseries.Table{}
	for j, name := range raw.Columns {
		values := make([]float64, len(keep))
		for k, i := range keep {
			values[k] = raw.Values[i][j]
		}
		s := timeseries.New(name, timeseries.Daily, start, values).DropNaN()
		out.Columns = append(out.Columns, s)
	}
	return out, nil
}

// rowsAsSeries decodes grids whose rows are indicators and whose
// columns are consecutive periods.
func rowsAsSeries(raw RawChart, freq timeseries.Frequency, start time.Time) timeseries.Table {
	out := timeseries.Table{}
	for i, name := range raw.Index {
		s := timeseries.New(name, freq, start, raw.Values[i]).DropNaN()
		out.Columns = append(out.Columns, s)
	}
	return out
}

// columnsAsSeries decodes grids whose columns are indicators and whose
// rows are consecutive periods.
func columnsAsSeries(raw RawChart, freq timeseries.Frequency, start time.Time) timeseries.Table {
	out := timeseries.Table{}
	for j, name := range raw.Columns {
		values := make([]float64, len(raw.Values))
		for i := range raw.Values {
			values[i] = raw.Values[i][j]
		}
		s := timeseries.New(name, freq, start, values).DropNaN()
		out.Columns = append(out.Columns, s)
	}
	return out
}
