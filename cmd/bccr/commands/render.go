package commands

import (
	"math"
	"os"
	"strconv"
	"time"

	"bccrdata/lib/timeseries"

	"github.com/jedib0t/go-pretty/v6/table"
)

// renderTable prints a data table with one row per date. Missing
// observations render as blanks.
func renderTable(data timeseries.Table) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	header := table.Row{"Date"}
	for _, name := range data.ColumnNames() {
		header = append(header, name)
	}
	t.AppendHeader(header)

	index, rows := data.Rows()
	for i, ts := range index {
		row := table.Row{ts.Format(time.DateOnly)}
		for _, v := range rows[i] {
			if math.IsNaN(v) {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
