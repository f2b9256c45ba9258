package webservice

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"bccrdata/lib/dateparam"
	"bccrdata/lib/timeseries"
	"bccrdata/lib/timezone"

	"go.opentelemetry.io/otel/codes"
)

// ErrNoObservations means the service answered but the response held
// no data points, which is what it does for unknown indicator codes
// and for ranges before the series starts.
var ErrNoObservations = errors.New("the service returned no observations")

// FetchRequest asks for the raw observations of one indicator.
// First/Last take the loose formats of dateparam; an empty First means
// the start of recorded history and an empty Last means today.
// SubLevels additionally requests every subaccount of the indicator.
type FetchRequest struct {
	Indicator string
	First     string
	Last      string
	SubLevels bool
}

// an INGC011_CAT_INDICADORECONOMIC element of the response. NUM_VALOR
// is omitted for dates without an observation.
type observation struct {
	Code  string   `xml:"COD_INDICADORINTERNO"`
	Date  string   `xml:"DES_FECHA"`
	Value *float64 `xml:"NUM_VALOR"`
}

// Fetch downloads an indicator and pivots the response into a table
// with one column per indicator code, in the order the service first
// mentions each code. Timestamps are normalized to period starts at
// the indicator's catalog frequency; duplicated dates keep the last
// reported value.
func (c *Client) Fetch(ctx context.Context, req FetchRequest) (timeseries.Table, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	first := "01/01/1900"
	if req.First != "" {
		t, err := dateparam.Parse(req.First, dateparam.Start)
		if err != nil {
			return timeseries.Table{}, fmt.Errorf("indicator %s: %w", req.Indicator, err)
		}
		first = dateparam.DayFirst(t)
	}
	last := dateparam.DayFirst(timezone.Now())
	if req.Last != "" {
		t, err := dateparam.Parse(req.Last, dateparam.End)
		if err != nil {
			return timeseries.Table{}, fmt.Errorf("indicator %s: %w", req.Indicator, err)
		}
		last = dateparam.DayFirst(t)
	}
	subLevels := "N"
	if req.SubLevels {
		subLevels = "S"
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"Indicador":         req.Indicator,
			"FechaInicio":       first,
			"FechaFinal":        last,
			"Nombre":            c.Credentials.Name,
			"SubNiveles":        subLevels,
			"CorreoElectronico": c.Credentials.Email,
			"Token":             c.Credentials.Token,
		}).
		Get(c.BaseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to call web service")
		return timeseries.Table{}, err
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "non-200 response")
		return timeseries.Table{}, fmt.Errorf(
			"indicator %s: status %d (check your credentials)", req.Indicator, res.StatusCode())
	}

	observations, err := parseResponse(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse xml response")
		return timeseries.Table{}, fmt.Errorf("indicator %s: %w", req.Indicator, err)
	}
	if len(observations) == 0 {
		span.SetStatus(codes.Error, "empty response")
		return timeseries.Table{}, fmt.Errorf("indicator %s: %w", req.Indicator, ErrNoObservations)
	}

	parentFreq := c.frequencyOf(ctx, req.Indicator, timeseries.Daily)

	var order []string
	points := map[string][]timeseries.Point{}
	for _, obs := range observations {
		code := strings.TrimSpace(obs.Code)
		date, err := parseDate(obs.Date)
		if err != nil {
			return timeseries.Table{}, fmt.Errorf("indicator %s: %w", req.Indicator, err)
		}
		value := math.NaN()
		if obs.Value != nil {
			value = *obs.Value
		}
		if _, seen := points[code]; !seen {
			order = append(order, code)
		}
		points[code] = append(points[code], timeseries.Point{Time: date, Value: value})
	}

	out := timeseries.Table{}
	for _, code := range order {
		freq := parentFreq
		if code != req.Indicator {
			freq = c.frequencyOf(ctx, code, parentFreq)
		}

		series := timeseries.Series{Name: code, Freq: freq, Points: points[code]}
		for i, p := range series.Points {
			series.Points[i].Time = freq.Truncate(p.Time)
		}
		slices.SortStableFunc(series.Points, func(a, b timeseries.Point) int {
			return a.Time.Compare(b.Time)
		})
		out.Columns = append(out.Columns, series.Dedupe().DropNaN())
	}
	return out, nil
}

// frequencyOf resolves an indicator's native frequency off the
// catalog, falling back when the code is not catalogued yet.
func (c *Client) frequencyOf(ctx context.Context, code string, fallback timeseries.Frequency) timeseries.Frequency {
	info, err := c.Catalog.Indicator(ctx, code)
	if err != nil {
		slog.WarnContext(ctx, "indicator not in catalog, assuming fallback frequency",
			"indicator", code, "fallback", string(fallback))
		return fallback
	}
	return info.Frequency
}

func parseResponse(body []byte) ([]observation, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))

	var out []observation
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "INGC011_CAT_INDICADORECONOMIC" {
			continue
		}
		var obs observation
		if err := decoder.DecodeElement(&obs, &start); err != nil {
			return nil, fmt.Errorf("decode observation: %w", err)
		}
		out = append(out, obs)
	}
}

// DES_FECHA looks like "2020-01-17T00:00:00-06:00"; only the date part
// matters.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return time.Time{}, fmt.Errorf("bad observation date %q", s)
	}
	t, err := time.Parse(time.DateOnly, s[:10])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad observation date %q", s)
	}
	return t, nil
}
