package chartpage

import (
	"fmt"
	"math"
	"testing"
	"time"

	"bccrdata/lib/timeseries"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseNumber(t *testing.T) {
	require.Equal(t, 1.5, parseNumber("1,5"))
	require.Equal(t, -0.25, parseNumber(" -0,25 "))
	require.Equal(t, 531.01, parseNumber("531,01"))
	require.True(t, math.IsNaN(parseNumber("")))
	require.True(t, math.IsNaN(parseNumber("n.d.")))
}

func TestParseGrid(t *testing.T) {
	grid := [][]string{
		{"Índice de precios al consumidor", "", "", ""},
		{"Nivel general", "", "", ""},
		{"Junio 2015 = 100", "", "", ""},
		{"", "2020", "2021", ""},
		{"Enero", "100,1", "102,5", ""},
		{"Febrero", "100,4", "", ""},
		{"", "", "", ""},
	}

	raw, err := ParseGrid(9, grid)
	require.NoError(t, err)
	require.Equal(t, "Índice de precios al consumidor", raw.Title)
	require.Equal(t, "Nivel general --- Junio 2015 = 100", raw.Subtitle)
	require.Equal(t, []string{"2020", "2021"}, raw.Columns)
	require.Equal(t, []string{"Enero", "Febrero"}, raw.Index)
	require.Equal(t, 100.1, raw.Values[0][0])
	require.Equal(t, 102.5, raw.Values[0][1])
	require.True(t, math.IsNaN(raw.Values[1][1]))
}

func TestParseGridNoHeader(t *testing.T) {
	_, err := ParseGrid(9, [][]string{{"solo un título", ""}})
	require.Error(t, err)
}

func TestDecodeYearMonth(t *testing.T) {
	raw := RawChart{
		Chart:   125,
		Title:   "Medio circulante",
		Columns: []string{"Enero", "Febrero", "Marzo"},
		Index:   []string{"2020", "2021"},
		Values: [][]float64{
			{1, 2, 3},
			{4, math.NaN(), 6},
		},
	}

	table, err := Decode(raw, YearMonth)
	require.NoError(t, err)
	require.Len(t, table.Columns, 1)

	s := table.Columns[0]
	require.Equal(t, "Medio circulante", s.Name)
	require.Equal(t, timeseries.Monthly, s.Freq)
	require.Equal(t, 5, s.Len())
	require.Equal(t, 1.0, s.At(date(2020, time.January, 1)))
	require.Equal(t, 3.0, s.At(date(2020, time.March, 1)))
	require.Equal(t, 4.0, s.At(date(2020, time.April, 1)))
	require.Equal(t, 6.0, s.At(date(2020, time.June, 1)))
	require.True(t, math.IsNaN(s.At(date(2020, time.May, 1))))
}

func TestDecodeMonthYear(t *testing.T) {
	months := []string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Setiembre", "Octubre", "Noviembre", "Diciembre",
	}
	raw := RawChart{
		Chart:   9,
		Title:   "Índice de precios al consumidor",
		Columns: []string{"2020", "2021"},
		Index:   append([]string{"Total anual"}, months...),
	}
	raw.Values = append(raw.Values, []float64{9999, 9999})
	for i := 0; i < 12; i++ {
		raw.Values = append(raw.Values, []float64{float64(i + 1), float64(101 + i)})
	}

	table, err := Decode(raw, MonthYear)
	require.NoError(t, err)
	require.Len(t, table.Columns, 1)

	s := table.Columns[0]
	require.Equal(t, 24, s.Len())
	require.Equal(t, 1.0, s.At(date(2020, time.January, 1)))
	require.Equal(t, 12.0, s.At(date(2020, time.December, 1)))
	require.Equal(t, 103.0, s.At(date(2021, time.March, 1)))
	// the leading total row is metadata, not an observation
	first, ok := s.First()
	require.True(t, ok)
	require.Equal(t, date(2020, time.January, 1), first.Time)
}

func TestDecodeIndicatorYear(t *testing.T) {
	raw := RawChart{
		Chart:   230,
		Columns: []string{"2018", "2019", "2020"},
		Index:   []string{"Producto interno bruto", "Consumo final"},
		Values: [][]float64{
			{10, 11, 12},
			{20, 21, math.NaN()},
		},
	}

	table, err := Decode(raw, IndicatorYear)
	require.NoError(t, err)
	require.Equal(t, []string{"Producto interno bruto", "Consumo final"}, table.ColumnNames())

	pib := table.Columns[0]
	require.Equal(t, timeseries.Annual, pib.Freq)
	require.Equal(t, 12.0, pib.At(date(2020, time.January, 1)))
	require.Equal(t, 2, table.Columns[1].Len())
}

func TestDecodeIndicatorQuarter(t *testing.T) {
	raw := RawChart{
		Chart:   68,
		Columns: []string{"trim 1/2010", "trim 2/2010", "trim 3/2010"},
		Index:   []string{"Agricultura", "Manufactura"},
		Values: [][]float64{
			{1, 2, 3},
			{4, 5, 6},
		},
	}

	table, err := Decode(raw, IndicatorQuarter)
	require.NoError(t, err)
	require.Len(t, table.Columns, 2)

	agro := table.Columns[0]
	require.Equal(t, timeseries.Quarterly, agro.Freq)
	require.Equal(t, 1.0, agro.At(date(2010, time.January, 1)))
	require.Equal(t, 3.0, agro.At(date(2010, time.July, 1)))
}

func TestDecodeQuarterIndicator(t *testing.T) {
	raw := RawChart{
		Chart:   74,
		Columns: []string{"Agricultura", "Manufactura"},
		Index:   []string{"1/2010", "2/2010"},
		Values: [][]float64{
			{1, 4},
			{2, 5},
		},
	}

	table, err := Decode(raw, QuarterIndicator)
	require.NoError(t, err)
	require.Equal(t, []string{"Agricultura", "Manufactura"}, table.ColumnNames())
	require.Equal(t, 5.0, table.Columns[1].At(date(2010, time.April, 1)))
}

func TestDecodeMonthIndicator(t *testing.T) {
	raw := RawChart{
		Chart:   22,
		Columns: []string{"Compra", "Venta"},
		Index:   []string{"Enero 2015", "Febrero 2015"},
		Values: [][]float64{
			{530, 540},
			{531, 541},
		},
	}

	table, err := Decode(raw, MonthIndicator)
	require.NoError(t, err)
	require.Equal(t, 541.0, table.Columns[1].At(date(2015, time.February, 1)))
}

func TestDecodeIndicatorMonth(t *testing.T) {
	raw := RawChart{
		Chart:   21,
		Columns: []string{"Ene 2015", "Feb 2015"},
		Index:   []string{"Compra", "Venta"},
		Values: [][]float64{
			{530, 531},
			{540, 541},
		},
	}

	table, err := Decode(raw, IndicatorMonth)
	require.NoError(t, err)
	require.Equal(t, 531.0, table.Columns[0].At(date(2015, time.February, 1)))
}

// builds the "1 Ene" .. "29 Feb" day labels a daily chart leads with.
func dayLabels() []string {
	var labels []string
	for d := 1; d <= 31; d++ {
		labels = append(labels, fmt.Sprintf("%d Ene", d))
	}
	for d := 1; d <= 29; d++ {
		labels = append(labels, fmt.Sprintf("%d Feb", d))
	}
	return labels
}

func TestDecodeDayYear(t *testing.T) {
	labels := dayLabels()
	raw := RawChart{
		Chart:   17,
		Title:   "Tasa básica pasiva",
		Columns: []string{"2019"},
		Index:   labels,
	}
	for i := range labels {
		raw.Values = append(raw.Values, []float64{float64(i + 1)})
	}

	table, err := Decode(raw, DayYear)
	require.NoError(t, err)
	require.Len(t, table.Columns, 1)

	s := table.Columns[0]
	// 2019 is not a leap year: the 29 Feb row is padding
	require.Equal(t, 59, s.Len())
	last, ok := s.Last()
	require.True(t, ok)
	require.Equal(t, date(2019, time.February, 28), last.Time)
	require.Equal(t, 59.0, last.Value)
	require.True(t, math.IsNaN(s.At(date(2019, time.March, 1))))
}

func TestDecodeDayYearLeap(t *testing.T) {
	labels := dayLabels()
	raw := RawChart{
		Chart:   17,
		Title:   "Tasa básica pasiva",
		Columns: []string{"2020"},
		Index:   labels,
	}
	for i := range labels {
		raw.Values = append(raw.Values, []float64{float64(i + 1)})
	}

	table, err := Decode(raw, DayYear)
	require.NoError(t, err)

	s := table.Columns[0]
	require.Equal(t, 60, s.Len())
	require.Equal(t, 60.0, s.At(date(2020, time.February, 29)))
}

func TestDecodeDayIndicator(t *testing.T) {
	raw := RawChart{
		Chart:   572,
		Columns: []string{"Compra", "Venta"},
		Index:   []string{"28 Feb 2019", "29 Feb 2019", "1 Mar 2019"},
		Values: [][]float64{
			{530, 540},
			{math.NaN(), math.NaN()},
			{531, 541},
		},
	}

	table, err := Decode(raw, DayIndicator)
	require.NoError(t, err)
	require.Equal(t, []string{"Compra", "Venta"}, table.ColumnNames())

	venta := table.Columns[1]
	require.Equal(t, 2, venta.Len())
	require.Equal(t, 540.0, venta.At(date(2019, time.February, 28)))
	require.Equal(t, 541.0, venta.At(date(2019, time.March, 1)))
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("DayIndicator")
	require.NoError(t, err)
	require.Equal(t, DayIndicator, l)
	require.Equal(t, timeseries.Daily, l.Frequency())

	_, err = ParseLayout("Sideways")
	require.Error(t, err)
}

func TestQuarterLabels(t *testing.T) {
	for _, label := range []string{"trim 1/2010", "1er trimestre 2010", "2010 trim 1"} {
		got, err := parseQuarterLabel(label)
		require.NoError(t, err, label)
		require.Equal(t, date(2010, time.January, 1), got, label)
	}
	_, err := parseQuarterLabel("2010")
	require.Error(t, err)
}
