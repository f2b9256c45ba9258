package chartpage

import (
	"context"
	"log/slog"

	"bccrdata/lib/catalog"
	"bccrdata/lib/timeseries"

	"go.opentelemetry.io/otel/codes"
)

// ChartRequest names one chart of a read. Name, when set, replaces the
// chart title on single-series charts. Agg folds observations when the
// chart has to be downsampled to a coarser shared frequency; it
// defaults to the mean.
type ChartRequest struct {
	Chart int
	Name  string
	Agg   timeseries.Aggregator
}

// ReadRequest fetches several charts into one table. When the charts
// disagree on native frequency the result is harmonized: Freq forces a
// target, otherwise the coarsest native frequency wins.
type ReadRequest struct {
	Charts []ChartRequest
	Dates  DateRange
	Freq   timeseries.Frequency
}

// Read downloads, decodes and harmonizes the requested charts. Column
// order follows the request order.
func (c *Client) Read(ctx context.Context, cat catalog.Store, req ReadRequest) (timeseries.Table, error) {
	ctx, span := tracer.Start(ctx, "client:Read")
	defer span.End()

	out := timeseries.Table{}
	aggs := map[string]timeseries.Aggregator{}

	for _, chart := range req.Charts {
		info, err := cat.Chart(ctx, chart.Chart)
		if err != nil {
			span.SetStatus(codes.Error, "chart not in catalog")
			return timeseries.Table{}, err
		}
		layout, err := ParseLayout(info.Layout)
		if err != nil {
			span.SetStatus(codes.Error, "bad catalog layout")
			return timeseries.Table{}, err
		}

		raw, err := c.FetchChart(ctx, chart.Chart, req.Dates)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch chart")
			return timeseries.Table{}, err
		}
		table, err := Decode(raw, layout)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to decode chart")
			return timeseries.Table{}, err
		}

		if chart.Name != "" && len(table.Columns) == 1 {
			table.Columns[0].Name = chart.Name
		}
		for _, col := range table.Columns {
			aggs[col.Name] = chart.Agg
		}

		slog.DebugContext(ctx, "decoded chart",
			"chart", chart.Chart,
			"layout", string(layout),
			"columns", len(table.Columns))
		out = out.Merge(table)
	}

	target := req.Freq
	if target == "" {
		target = out.LowestFrequency()
	}
	for i, col := range out.Columns {
		if col.Freq == target {
			continue
		}
		agg := aggs[col.Name]
		if agg == nil {
			agg = timeseries.Mean
		}
		resampled, err := timeseries.Resample(col, target, agg)
		if err != nil {
			span.SetStatus(codes.Error, "failed to harmonize frequencies")
			return timeseries.Table{}, err
		}
		out.Columns[i] = resampled
	}

	return out.DropEmpty(), nil
}
