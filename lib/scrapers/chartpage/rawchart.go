package chartpage

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"bccrdata/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// RawChart is the undecoded grid of a chart page: the header labels,
// the first-column labels and the numeric body. What the axes mean is
// up to the chart's layout.
type RawChart struct {
	Chart    int
	Title    string
	Subtitle string
	// Columns holds the header labels, the index cell excluded.
	Columns []string
	// Index holds the first-column label of every body row.
	Index []string
	// Values holds the parsed body, Values[row][column]. Blank and
	// unparseable cells are NaN.
	Values [][]float64
}

// parseNumber reads a decimal-comma number. Anything unreadable comes
// back as NaN, matching the blanks the charts pad their grids with.
func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseGrid interprets a rectangular cell grid as a chart page. The
// rows above the header carry the title and subtitle in their first
// cell; the header is the first row with a non-empty second cell.
func ParseGrid(chart int, grid [][]string) (RawChart, error) {
	header := -1
	for i, row := range grid {
		if len(row) > 1 && row[1] != "" {
			header = i
			break
		}
	}
	if header < 0 {
		return RawChart{}, fmt.Errorf("chart %d: no header row found", chart)
	}

	raw := RawChart{Chart: chart}

	var captions []string
	for _, row := range grid[:header] {
		if len(row) > 0 && row[0] != "" {
			captions = append(captions, row[0])
		}
	}
	if len(captions) > 0 {
		raw.Title = captions[0]
	}
	if len(captions) > 1 {
		raw.Subtitle = strings.Join(captions[1:], " --- ")
	}

	// trailing padding columns would shift positional decoding
	columns := grid[header][1:]
	for len(columns) > 0 && columns[len(columns)-1] == "" {
		columns = columns[:len(columns)-1]
	}
	if len(columns) == 0 {
		return RawChart{}, fmt.Errorf("chart %d: header row has no column labels", chart)
	}
	raw.Columns = columns

	for _, row := range grid[header+1:] {
		if empty(row) {
			continue
		}
		values := make([]float64, len(columns))
		for j := range columns {
			cell := ""
			if j+1 < len(row) {
				cell = row[j+1]
			}
			values[j] = parseNumber(cell)
		}
		raw.Index = append(raw.Index, row[0])
		raw.Values = append(raw.Values, values)
	}
	if len(raw.Index) == 0 {
		return RawChart{}, fmt.Errorf("chart %d: no data rows", chart)
	}
	return raw, nil
}

func empty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// ParseDocument extracts the chart grid from a fetched page. The data
// always lives in the first table of the document.
func ParseDocument(chart int, doc *goquery.Document) (RawChart, error) {
	table, err := htmlutil.FirstTable(doc)
	if err != nil {
		return RawChart{}, fmt.Errorf("chart %d: %w", chart, err)
	}
	return ParseGrid(chart, htmlutil.TableGrid(table))
}
