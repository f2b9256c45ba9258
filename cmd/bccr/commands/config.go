package commands

import (
	"os"

	"bccrdata/lib/catalog"
	"bccrdata/lib/configutil"
	"bccrdata/lib/scrapers/chartpage"
	"bccrdata/lib/scrapers/webservice"
	"bccrdata/services/indicators"

	"github.com/spf13/cobra"
)

type CatalogConfig struct {
	// Driver is "sqlite" or "libsql".
	Driver string `json:"driver"`
	Dsn    string `json:"dsn"`
}

type ChartPageConfig struct {
	BaseUrl string `json:"base_url"`
}

type WebServiceConfig struct {
	BaseUrl     string                 `json:"base_url"`
	Credentials webservice.Credentials `json:"credentials"`
}

type Config struct {
	Catalog    CatalogConfig    `json:"catalog"`
	ChartPage  ChartPageConfig  `json:"chart_page"`
	WebService WebServiceConfig `json:"web_service"`
}

// loadConfig reads bccr.json5 from the cwd upwards. No file at all is
// fine, everything has a default except the web-service credentials.
func loadConfig() (Config, error) {
	config, err := configutil.ReadRecursively[Config]("bccr.json5")
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	return config, err
}

// service wires the indicators service for a command invocation. The
// web-service client is only wired when credentials resolve, from the
// config file or from BCCR_WS_* environment variables.
func service(cmd *cobra.Command) (indicators.Service, error) {
	config, err := loadConfig()
	if err != nil {
		return indicators.Service{}, err
	}

	cat, err := catalog.Open(cmd.Context(), config.Catalog.Driver, config.Catalog.Dsn)
	if err != nil {
		return indicators.Service{}, err
	}

	charts, err := chartpage.NewClient(chartpage.ClientOptions{
		BaseUrl: config.ChartPage.BaseUrl,
	})
	if err != nil {
		return indicators.Service{}, err
	}

	var web *webservice.Client
	credentials, err := config.WebService.Credentials.FromEnv()
	if err != nil {
		return indicators.Service{}, err
	}
	if credentials.Validate() == nil {
		web, err = webservice.NewClient(webservice.ClientOptions{
			BaseUrl:     config.WebService.BaseUrl,
			Credentials: credentials,
			Catalog:     cat,
		})
		if err != nil {
			return indicators.Service{}, err
		}
	}

	return indicators.NewService(cat, charts, web), nil
}
