package webservice

import (
	"context"

	"bccrdata/lib/catalog"
	"bccrdata/lib/timeseries"

	"go.opentelemetry.io/otel/codes"
)

// IndicatorRequest names one indicator of a query. Name, when set,
// replaces the catalog name on the requested indicator's own column;
// subaccount columns always carry their catalog names. Agg folds
// observations when the column has to be downsampled; it defaults to
// the sum.
type IndicatorRequest struct {
	Indicator string
	Name      string
	Agg       timeseries.Aggregator
	SubLevels bool
}

// QueryRequest fetches several indicators into one table. When the
// indicators disagree on native frequency the result is harmonized:
// Freq forces a target, otherwise the coarsest native frequency wins.
type QueryRequest struct {
	Indicators []IndicatorRequest
	First      string
	Last       string
	Freq       timeseries.Frequency
}

// Query downloads and harmonizes the requested indicators. Column
// order follows the request order, subaccounts after their parent.
func (c *Client) Query(ctx context.Context, req QueryRequest) (timeseries.Table, error) {
	ctx, span := tracer.Start(ctx, "client:Query")
	defer span.End()

	out := timeseries.Table{}
	aggs := map[string]timeseries.Aggregator{}

	for _, ind := range req.Indicators {
		table, err := c.Fetch(ctx, FetchRequest{
			Indicator: ind.Indicator,
			First:     req.First,
			Last:      req.Last,
			SubLevels: ind.SubLevels,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch indicator")
			return timeseries.Table{}, err
		}

		for i, col := range table.Columns {
			name := c.displayName(ctx, col.Name)
			if col.Name == ind.Indicator && ind.Name != "" {
				name = ind.Name
			}
			table.Columns[i].Name = name
			aggs[name] = ind.Agg
		}
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
			agg = timeseries.Sum
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

// displayName swaps an indicator code for its catalog name when known.
func (c *Client) displayName(ctx context.Context, code string) string {
	info, err := c.Catalog.Indicator(ctx, code)
	if err != nil || info.Name == "" {
		return code
	}
	return info.Name
}

// Subaccounts lists the catalogued indicators nested under the account
// of the given indicator, without touching the network.
func (c *Client) Subaccounts(ctx context.Context, code string) ([]catalog.IndicatorInfo, error) {
	return c.Catalog.Subaccounts(ctx, code)
}
