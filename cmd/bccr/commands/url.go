package commands

import (
	"fmt"
	"strconv"

	"bccrdata/lib/scrapers/chartpage"

	"github.com/spf13/cobra"
)

var (
	urlFirst string
	urlLast  string
	urlHtml  bool
)

func init() {
	urlCmd.Flags().StringVar(&urlFirst, "first", "", "start of the range")
	urlCmd.Flags().StringVar(&urlLast, "last", "", "end of the range")
	urlCmd.Flags().BoolVar(&urlHtml, "html", false, "render the browser view instead of the export view")
	rootCmd.AddCommand(urlCmd)
}

var urlCmd = &cobra.Command{
	Use:   "url <chart code>",
	Short: "Prints the query url of a chart, for inspecting it in a browser.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		code, err := strconv.Atoi(args[0])
		if err != nil {
			fatal(err)
		}

		config, err := loadConfig()
		if err != nil {
			fatal(err)
		}
		base := config.ChartPage.BaseUrl
		if base == "" {
			base = chartpage.DefaultBaseUrl
		}

		u, err := chartpage.BuildURL(base, code, chartpage.DateRange{
			First: urlFirst,
			Last:  urlLast,
		}, !urlHtml)
		if err != nil {
			fatal(err)
		}
		fmt.Println(u)
	},
}
