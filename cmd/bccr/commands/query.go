package commands

import (
	"bccrdata/lib/scrapers/webservice"
	"bccrdata/lib/timeseries"

	"github.com/spf13/cobra"
)

var (
	queryFirst     string
	queryLast      string
	queryFreq      string
	queryAgg       string
	querySubLevels bool
)

func init() {
	queryCmd.Flags().StringVar(&queryFirst, "first", "", "start of the range (2015, 2017-03, 12/8/2017, ...)")
	queryCmd.Flags().StringVar(&queryLast, "last", "", "end of the range")
	queryCmd.Flags().StringVar(&queryFreq, "freq", "", "harmonize to this frequency instead of the coarsest native one")
	queryCmd.Flags().StringVar(&queryAgg, "agg", "sum", "aggregator used when downsampling (mean, sum, first, last)")
	queryCmd.Flags().BoolVar(&querySubLevels, "sublevels", false, "also fetch every subaccount of each indicator")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <indicator codes...>",
	Short: "Downloads indicators through the subscriber web service.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := service(cmd)
		if err != nil {
			fatal(err)
		}

		agg, err := timeseries.ParseAggregator(queryAgg)
		if err != nil {
			fatal(err)
		}

		req := webservice.QueryRequest{
			First: queryFirst,
			Last:  queryLast,
		}
		if queryFreq != "" {
			freq, err := timeseries.ParseFrequency(queryFreq)
			if err != nil {
				fatal(err)
			}
			req.Freq = freq
		}
		for _, code := range args {
			req.Indicators = append(req.Indicators, webservice.IndicatorRequest{
				Indicator: code,
				Agg:       agg,
				SubLevels: querySubLevels,
			})
		}

		data, err := svc.Query(cmd.Context(), req)
		if err != nil {
			fatal(err)
		}
		renderTable(data)
	},
}
