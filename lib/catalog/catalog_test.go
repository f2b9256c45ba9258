package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"bccrdata/lib/telemetry"
	"bccrdata/lib/timeseries"

	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setup(t testing.TB) (Store, context.Context) {
	cleanup := telemetry.SetupForTesting("test:lib/catalog")
	t.Cleanup(cleanup)

	ctx := context.Background()
	store, err := Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	return store, ctx
}

func TestChartLookup(t *testing.T) {
	store, ctx := setup(t)

	info, err := store.Chart(ctx, 125)
	require.NoError(t, err)
	require.Equal(t, "Medio circulante (M1) medido a nivel del sistema bancario", info.Title)
	require.Equal(t, "YearMonth", info.Layout)
	require.Equal(t, timeseries.Monthly, info.Frequency)

	_, err = store.Chart(ctx, 999999)
	require.True(t, errors.Is(err, ErrNotFound))

	require.True(t, store.Supports(ctx, 17))
	require.False(t, store.Supports(ctx, 999999))
}

func TestIndicatorUpsert(t *testing.T) {
	store, ctx := setup(t)

	code, err := random.String(8)
	require.NoError(t, err)

	info := IndicatorInfo{
		Code:      code,
		Name:      "serie de prueba",
		Frequency: timeseries.Monthly,
	}
	require.NoError(t, store.PutIndicator(ctx, info))

	got, err := store.Indicator(ctx, code)
	require.NoError(t, err)
	require.Equal(t, "serie de prueba", got.Name)

	info.Name = "serie de prueba renombrada"
	require.NoError(t, store.PutIndicator(ctx, info))
	got, err = store.Indicator(ctx, code)
	require.NoError(t, err)
	require.Equal(t, "serie de prueba renombrada", got.Name)
}

func TestSearch(t *testing.T) {
	store, ctx := setup(t)

	// accent-insensitive phrase match
	results, err := store.Search(ctx, SearchRequest{Phrase: "indice de precios"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		require.Contains(t, r.Title, "ndice de precios")
	}

	// all terms, any order
	results, err = store.Search(ctx, SearchRequest{All: "consumidor precios"})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// any term
	anyResults, err := store.Search(ctx, SearchRequest{Any: "exportaciones importaciones cambio"})
	require.NoError(t, err)
	require.NotEmpty(t, anyResults)

	// frequency filter
	daily, err := store.Search(ctx, SearchRequest{Any: "tipo de cambio", Frequency: timeseries.Daily})
	require.NoError(t, err)
	require.NotEmpty(t, daily)
	for _, r := range daily {
		require.Equal(t, timeseries.Daily, r.Frequency)
	}

	// ranking: scores are descending
	for i := 1; i < len(anyResults); i++ {
		require.GreaterOrEqual(t, anyResults[i-1].Score, anyResults[i].Score)
	}

	_, err = store.Search(ctx, SearchRequest{})
	require.True(t, errors.Is(err, ErrNoSelector))
}

func TestSubaccounts(t *testing.T) {
	store, ctx := setup(t)

	require.NoError(t, store.PutIndicator(ctx, IndicatorInfo{
		Code:      "7000",
		Account:   "E05.01.00.00.00.00.00.00.00",
		Name:      "Agregado",
		Frequency: timeseries.Monthly,
	}))
	require.NoError(t, store.PutIndicator(ctx, IndicatorInfo{
		Code:      "7001",
		Account:   "E05.01.01.00.00.00.00.00.00",
		Name:      "Componente A",
		Frequency: timeseries.Monthly,
	}))
	require.NoError(t, store.PutIndicator(ctx, IndicatorInfo{
		Code:      "7002",
		Account:   "E05.01.02.00.00.00.00.00.00",
		Name:      "Componente B",
		Frequency: timeseries.Monthly,
	}))
	require.NoError(t, store.PutIndicator(ctx, IndicatorInfo{
		Code:      "8000",
		Account:   "E05.02.00.00.00.00.00.00.00",
		Name:      "Otro agregado",
		Frequency: timeseries.Monthly,
	}))

	subs, err := store.Subaccounts(ctx, "7000")
	require.NoError(t, err)
	codes := make([]string, len(subs))
	for i, s := range subs {
		codes[i] = s.Code
	}
	require.ElementsMatch(t, []string{"7001", "7002"}, codes)

	_, err = store.Subaccounts(ctx, "nope")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestRefreshFromWorkbook(t *testing.T) {
	store, ctx := setup(t)

	book := excelize.NewFile()
	writeSheet := func(sheet string, rows [][]interface{}) {
		_, err := book.NewSheet(sheet)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, book.SetSheetRow(sheet, cell, &row))
		}
	}

	writeSheet("INGC012_COD_MEDIDA", [][]interface{}{
		{"CodUnidad", "NomUnidadespanol"},
		{"1", "Colones"},
	})
	writeSheet("INGC025_COD_UNIDAD", [][]interface{}{
		{"Codigo", "NombreEspannol"},
		{"2", "Nivel"},
	})
	writeSheet("Indicadores", [][]interface{}{
		{colCode, colAccount, colName, colDescription, colMeasure, colUnit, colPeriod},
		{"4711", "E03.09.00.00.00.00.00.00.00", "Serie importada", "Serie importada del workbook", "2", "1", "Mensual"},
		{"4712", "E03.10.00.00.00.00.00.00.00", "Serie rara", "Periodicidad desconocida", "2", "1", "Cada luna llena"},
	})

	path := filepath.Join(t.TempDir(), "Indicadores.xlsx")
	require.NoError(t, book.SaveAs(path))

	count, err := store.RefreshFromWorkbook(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	got, err := store.Indicator(ctx, "4711")
	require.NoError(t, err)
	require.Equal(t, "Serie importada", got.Name)
	require.Equal(t, "Colones", got.Unit)
	require.Equal(t, "Nivel", got.Measure)
	require.Equal(t, timeseries.Monthly, got.Frequency)
}
