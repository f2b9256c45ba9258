package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bccrdata/lib/timeseries"

	"github.com/xuri/excelize/v2"
)

// column headers of the Indicadores sheet in the catalog workbook the
// BCCR distributes to web-service subscribers
const (
	colCode        = "INGC011_COD_INDICADORECONOMIC"
	colAccount     = "INGC011_COD_INDICADORINTERNO"
	colName        = "INGC011_NOM_INDICECONOMICOESP"
	colDescription = "INGC011_DES_TITULOESPANOL"
	colMeasure     = "INGC012_COD_MEDIDA"
	colUnit        = "INGC025_COD_UNIDAD"
	colPeriod      = "Periodicidad"
)

var periodFrequencies = map[string]timeseries.Frequency{
	"Anual":         timeseries.Annual,
	"Semestral":     timeseries.Semiannual,
	"Trimestral":    timeseries.Quarterly,
	"Mensual":       timeseries.Monthly,
	"Semanal":       timeseries.Weekly,
	"Nueva semanal": timeseries.Weekly,
	"Diaria":        timeseries.Daily,
}

// RefreshFromWorkbook replaces the web-service indicator catalog with
// the contents of the Indicadores workbook.
func (s Store) RefreshFromWorkbook(ctx context.Context, path string) (int, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog workbook: %w", err)
	}
	defer book.Close()

	units, err := lookupSheet(book, "INGC012_COD_MEDIDA", "CodUnidad", "NomUnidadespanol")
	if err != nil {
		return 0, err
	}
	measures, err := lookupSheet(book, "INGC025_COD_UNIDAD", "Codigo", "NombreEspannol")
	if err != nil {
		return 0, err
	}

	rows, err := book.GetRows("Indicadores")
	if err != nil {
		return 0, fmt.Errorf("read Indicadores sheet: %w", err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("Indicadores sheet is empty")
	}

	columns := map[string]int{}
	for i, header := range rows[0] {
		columns[strings.TrimSpace(header)] = i
	}
	for _, required := range []string{colCode, colAccount, colName, colDescription, colPeriod} {
		if _, ok := columns[required]; !ok {
			return 0, fmt.Errorf("Indicadores sheet is missing column %q", required)
		}
	}

	cell := func(row []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	count := 0
	for _, row := range rows[1:] {
		code := cell(row, colCode)
		if code == "" {
			continue
		}

		period := cell(row, colPeriod)
		freq, ok := periodFrequencies[period]
		if !ok {
			slog.WarnContext(ctx, "skipping indicator with unknown periodicity",
				"code", code, "periodicity", period)
			continue
		}

		err := s.PutIndicator(ctx, IndicatorInfo{
			Code:        code,
			Account:     cell(row, colAccount),
			Name:        cell(row, colName),
			Description: cell(row, colDescription),
			Unit:        units[cell(row, colUnit)],
			Measure:     measures[cell(row, colMeasure)],
			Frequency:   freq,
		})
		if err != nil {
			return count, fmt.Errorf("upsert indicator %s: %w", code, err)
		}
		count++
	}
	return count, nil
}

// lookupSheet reads a two-column code -> label mapping off a sheet.
func lookupSheet(book *excelize.File, sheet, keyHeader, valueHeader string) (map[string]string, error) {
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", sheet, err)
	}
	if len(rows) == 0 {
		return map[string]string{}, nil
	}

	keyCol, valueCol := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case keyHeader:
			keyCol = i
		case valueHeader:
			valueCol = i
		}
	}
	if keyCol < 0 || valueCol < 0 {
		return nil, fmt.Errorf("sheet %s is missing %q or %q", sheet, keyHeader, valueHeader)
	}

	out := map[string]string{}
	for _, row := range rows[1:] {
		if keyCol >= len(row) || valueCol >= len(row) {
			continue
		}
		key := strings.TrimSpace(row[keyCol])
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(row[valueCol])
	}
	return out, nil
}
