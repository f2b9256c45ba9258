// Package chartpage reads economic indicators off the BCCR "indicadores
// económicos" chart pages. Every chart renders its data as an html
// table in one of a handful of grid layouts; the catalog says which
// layout a given chart uses and Decode turns the grid into series.
package chartpage

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bccrdata/lib/dateparam"
	"bccrdata/lib/telemetry"
	"bccrdata/lib/timezone"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html/charset"
)

var tracer = otel.Tracer("scrapers/chartpage")

const DefaultBaseUrl = "https://gee.bccr.fi.cr/indicadoreseconomicos/"

// DateRange bounds a query. Either side takes the loose formats of
// dateparam and may be empty, in which case the chart's full history
// is requested.
type DateRange struct {
	First string
	Last  string
}

// BuildURL renders the frmVerCatCuadro query for a chart. The site is
// picky about parameter order, so the query string is built by hand.
func BuildURL(baseUrl string, chart int, dates DateRange, excel bool) (string, error) {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseUrl, "/"))
	b.WriteString("/Cuadros/frmVerCatCuadro.aspx?CodCuadro=")
	b.WriteString(strconv.Itoa(chart))

	if dates.First != "" {
		t, err := dateparam.Parse(dates.First, dateparam.Start)
		if err != nil {
			return "", fmt.Errorf("chart %d: %w", chart, err)
		}
		b.WriteString("&FecInicial=")
		b.WriteString(dateparam.YearFirst(t))
	}
	if dates.Last != "" {
		t, err := dateparam.Parse(dates.Last, dateparam.End)
		if err != nil {
			return "", fmt.Errorf("chart %d: %w", chart, err)
		}
		b.WriteString("&FecFinal=")
		b.WriteString(dateparam.YearFirst(t))
	}
	if excel {
		b.WriteString("&Exportar=True&Excel=True")
	}
	return b.String(), nil
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 60)

	telemetry.InstrumentResty(client, "scrapers/chartpage/http")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// ChartURL renders the query url against this client's base.
func (c *Client) ChartURL(chart int, dates DateRange, excel bool) (string, error) {
	return BuildURL(c.BaseUrl.String(), chart, dates, excel)
}

// FetchChart downloads a chart page and parses its grid. The pages
// declare a legacy charset, so the body goes through a charset-aware
// reader before html parsing.
func (c *Client) FetchChart(ctx context.Context, chart int, dates DateRange) (RawChart, error) {
	ctx, span := tracer.Start(ctx, "client:FetchChart")
	defer span.End()

	u, err := c.ChartURL(chart, dates, true)
	if err != nil {
		span.SetStatus(codes.Error, "failed to build url")
		return RawChart{}, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(u)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch chart page")
		return RawChart{}, err
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "non-200 response")
		return RawChart{}, fmt.Errorf("chart %d: status %d", chart, res.StatusCode())
	}

	reader, err := charset.NewReader(
		bytes.NewReader(res.Body()),
		res.Header().Get("Content-Type"),
	)
	if err != nil {
		span.SetStatus(codes.Error, "failed to decode charset")
		return RawChart{}, fmt.Errorf("chart %d: decode charset: %w", chart, err)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return RawChart{}, fmt.Errorf("chart %d: parse html: %w", chart, err)
	}

	raw, err := ParseDocument(chart, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse chart grid")
		return RawChart{}, err
	}
	return raw, nil
}

// ChartTitle probes the title and subtitle of a chart. It first asks
// for the current year only, which is a much smaller page; some charts
// reject narrow ranges, so on failure it falls back to the full query.
func (c *Client) ChartTitle(ctx context.Context, chart int) (title, subtitle string, err error) {
	ctx, span := tracer.Start(ctx, "client:ChartTitle")
	defer span.End()

	year := strconv.Itoa(timezone.Now().Year())

	var raw RawChart
	err = retry.Do(
		func() error {
			var err error
			raw, err = c.FetchChart(ctx, chart, DateRange{First: year, Last: year})
			return err
		},
		retry.Attempts(2),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		raw, err = c.FetchChart(ctx, chart, DateRange{})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch chart title")
			return "", "", err
		}
	}
	return raw.Title, raw.Subtitle, nil
}
