package chartpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bccrdata/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const chartFixture = `<html>
<head><title>BCCR - Indicadores Economicos</title></head>
<body>
<div id="theme">decoración que no es parte del cuadro</div>
<table border="0">
<tr><td colspan="4">Depósitos en cuenta corriente</td></tr>
<tr><td colspan="4">Saldos en millones de colones</td></tr>
<tr><td>&nbsp;</td><td>Enero</td><td>Febrero</td><td>Marzo</td></tr>
<tr><td>2020</td><td>1,5</td><td>2,5</td><td>3,5</td></tr>
<tr><td>2021</td><td>4,5</td><td>&nbsp;</td><td>6,5</td></tr>
</table>
</body>
</html>`

func TestBuildURL(t *testing.T) {
	got, err := BuildURL(DefaultBaseUrl, 125, DateRange{First: "2007", Last: "2014"}, true)
	require.NoError(t, err)
	require.Equal(t,
		"https://gee.bccr.fi.cr/indicadoreseconomicos/Cuadros/frmVerCatCuadro.aspx"+
			"?CodCuadro=125&FecInicial=2007/01/01&FecFinal=2014/12/31&Exportar=True&Excel=True",
		got)

	got, err = BuildURL(DefaultBaseUrl, 125, DateRange{First: "2017-03", Last: "12/8/2017"}, false)
	require.NoError(t, err)
	require.Equal(t,
		"https://gee.bccr.fi.cr/indicadoreseconomicos/Cuadros/frmVerCatCuadro.aspx"+
			"?CodCuadro=125&FecInicial=2017/03/01&FecFinal=2017/08/12",
		got)

	got, err = BuildURL(DefaultBaseUrl, 367, DateRange{}, true)
	require.NoError(t, err)
	require.Equal(t,
		"https://gee.bccr.fi.cr/indicadoreseconomicos/Cuadros/frmVerCatCuadro.aspx"+
			"?CodCuadro=367&Exportar=True&Excel=True",
		got)

	_, err = BuildURL(DefaultBaseUrl, 125, DateRange{First: "not a date"}, true)
	require.Error(t, err)
}

func TestFetchChart(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:lib/scrapers/chartpage")
	t.Cleanup(cleanup)

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Cuadros/frmVerCatCuadro.aspx", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(chartFixture))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	raw, err := client.FetchChart(context.Background(), 138, DateRange{First: "2020", Last: "2021"})
	require.NoError(t, err)
	require.Equal(t, "CodCuadro=138&FecInicial=2020/01/01&FecFinal=2021/12/31&Exportar=True&Excel=True", gotQuery)

	require.Equal(t, "Depósitos en cuenta corriente", raw.Title)
	require.Equal(t, "Saldos en millones de colones", raw.Subtitle)
	require.Equal(t, []string{"Enero", "Febrero", "Marzo"}, raw.Columns)
	require.Equal(t, []string{"2020", "2021"}, raw.Index)

	table, err := Decode(raw, YearMonth)
	require.NoError(t, err)
	require.Len(t, table.Columns, 1)

	s := table.Columns[0]
	require.Equal(t, 5, s.Len())
	require.Equal(t, 1.5, s.At(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 6.5, s.At(time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

func TestChartTitle(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:lib/scrapers/chartpage")
	t.Cleanup(cleanup)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(chartFixture))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	title, subtitle, err := client.ChartTitle(context.Background(), 138)
	require.NoError(t, err)
	require.Equal(t, "Depósitos en cuenta corriente", title)
	require.Equal(t, "Saldos en millones de colones", subtitle)
}

func TestFetchChartStatusError(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:lib/scrapers/chartpage")
	t.Cleanup(cleanup)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such chart", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	_, err = client.FetchChart(context.Background(), 999999, DateRange{})
	require.Error(t, err)
}
