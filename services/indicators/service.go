// Package indicators ties the catalog and the two data paths together
// behind one service: search the catalog, then read the hits either
// off the chart pages or through the subscriber web service.
package indicators

import (
	"context"

	"bccrdata/lib/catalog"
	"bccrdata/lib/scrapers/chartpage"
	"bccrdata/lib/scrapers/webservice"
	"bccrdata/lib/timeseries"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/indicators")

type Service struct {
	catalog catalog.Store
	charts  *chartpage.Client
	web     *webservice.Client
}

// NewService wires the service. web may be nil when no subscriber
// credentials are configured; Query then fails with a clear error.
func NewService(cat catalog.Store, charts *chartpage.Client, web *webservice.Client) Service {
	return Service{
		catalog: cat,
		charts:  charts,
		web:     web,
	}
}

// Search looks the query up in the chart and indicator catalogs.
func (s Service) Search(ctx context.Context, req catalog.SearchRequest) ([]catalog.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	results, err := s.catalog.Search(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("results", len(results)))
	return results, nil
}

// ReadCharts downloads chart-page data. No credentials needed.
func (s Service) ReadCharts(ctx context.Context, req chartpage.ReadRequest) (timeseries.Table, error) {
	ctx, span := tracer.Start(ctx, "ReadCharts")
	defer span.End()

	table, err := s.charts.Read(ctx, s.catalog, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return timeseries.Table{}, err
	}
	span.SetAttributes(attribute.Int("columns", len(table.Columns)))
	return table, nil
}

// ChartTitle probes a chart's caption without downloading its history.
func (s Service) ChartTitle(ctx context.Context, chart int) (title, subtitle string, err error) {
	ctx, span := tracer.Start(ctx, "ChartTitle")
	defer span.End()

	span.SetAttributes(attribute.Int("chart", chart))
	title, subtitle, err = s.charts.ChartTitle(ctx, chart)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return title, subtitle, err
}

// Query downloads web-service data. Requires subscriber credentials.
func (s Service) Query(ctx context.Context, req webservice.QueryRequest) (timeseries.Table, error) {
	ctx, span := tracer.Start(ctx, "Query")
	defer span.End()

	if s.web == nil {
		err := webservice.Credentials{}.Validate()
		span.SetStatus(codes.Error, err.Error())
		return timeseries.Table{}, err
	}
	table, err := s.web.Query(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return timeseries.Table{}, err
	}
	span.SetAttributes(attribute.Int("columns", len(table.Columns)))
	return table, nil
}

// Subaccounts lists the indicators nested under an indicator's
// account.
func (s Service) Subaccounts(ctx context.Context, code string) ([]catalog.IndicatorInfo, error) {
	ctx, span := tracer.Start(ctx, "Subaccounts")
	defer span.End()

	span.SetAttributes(attribute.String("indicator", code))
	out, err := s.catalog.Subaccounts(ctx, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}

// RefreshCatalog ingests the Indicadores workbook the BCCR mails to
// subscribers, replacing the indicator catalog.
func (s Service) RefreshCatalog(ctx context.Context, workbookPath string) (int, error) {
	ctx, span := tracer.Start(ctx, "RefreshCatalog")
	defer span.End()

	count, err := s.catalog.RefreshFromWorkbook(ctx, workbookPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return count, err
	}
	span.SetAttributes(attribute.Int("indicators", count))
	return count, nil
}
