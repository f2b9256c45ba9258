package htmlutil

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanCell normalizes the text of a table cell: nbsp to space, strip
// non-printable runes, collapse runs of whitespace.
func CleanCell(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	var b strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) {
			b.WriteRune(c)
		}
	}
	s = strings.Trim(b.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// FirstTable returns the first <table> of the document.
func FirstTable(doc *goquery.Document) (*goquery.Selection, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("document contains no <table>")
	}
	return table, nil
}

// TableGrid flattens a <table> selection into a rectangular grid of
// cleaned cell texts, one row per <tr>, one cell per <th>/<td>. Short
// rows are padded on the right so every row has the same width.
func TableGrid(table *goquery.Selection) [][]string {
	var grid [][]string
	width := 0

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, CleanCell(cell.Text()))
		})
		if len(row) > width {
			width = len(row)
		}
		grid = append(grid, row)
	})

	for i, row := range grid {
		for len(row) < width {
			row = append(row, "")
		}
		grid[i] = row
	}
	return grid
}
