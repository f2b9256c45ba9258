// Package webservice reads economic indicators from the BCCR
// suscripciones web service, the supported alternative to scraping the
// chart pages. The service speaks a single GET endpoint returning the
// observations of one indicator (optionally with its subaccounts) as
// an xml fragment.
package webservice

import (
	"time"

	"bccrdata/lib/catalog"
	"bccrdata/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/webservice")

const DefaultBaseUrl = "https://gee.bccr.fi.cr/Indicadores/Suscripciones/WS/wsindicadoreseconomicos.asmx/ObtenerIndicadoresEconomicos"

type Client struct {
	Http        *resty.Client
	BaseUrl     string
	Credentials Credentials
	Catalog     catalog.Store
}

type ClientOptions struct {
	BaseUrl     string
	Credentials Credentials
	Catalog     catalog.Store
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if err := opts.Credentials.Validate(); err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 60)

	telemetry.InstrumentResty(client, "scrapers/webservice/http")

	return &Client{
		Http:        client,
		BaseUrl:     opts.BaseUrl,
		Credentials: opts.Credentials,
		Catalog:     opts.Catalog,
	}, nil
}
