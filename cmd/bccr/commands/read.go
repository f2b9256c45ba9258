package commands

import (
	"strconv"

	"bccrdata/lib/scrapers/chartpage"
	"bccrdata/lib/timeseries"

	"github.com/spf13/cobra"
)

var (
	readFirst string
	readLast  string
	readFreq  string
	readAgg   string
)

func init() {
	readCmd.Flags().StringVar(&readFirst, "first", "", "start of the range (2015, 2017-03, 12/8/2017, ...)")
	readCmd.Flags().StringVar(&readLast, "last", "", "end of the range")
	readCmd.Flags().StringVar(&readFreq, "freq", "", "harmonize to this frequency instead of the coarsest native one")
	readCmd.Flags().StringVar(&readAgg, "agg", "mean", "aggregator used when downsampling (mean, sum, first, last)")
	rootCmd.AddCommand(readCmd)
}

var readCmd = &cobra.Command{
	Use:   "read <chart codes...>",
	Short: "Downloads charts from the indicadores económicos pages, no credentials needed.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := service(cmd)
		if err != nil {
			fatal(err)
		}

		agg, err := timeseries.ParseAggregator(readAgg)
		if err != nil {
			fatal(err)
		}

		req := chartpage.ReadRequest{
			Dates: chartpage.DateRange{First: readFirst, Last: readLast},
		}
		if readFreq != "" {
			freq, err := timeseries.ParseFrequency(readFreq)
			if err != nil {
				fatal(err)
			}
			req.Freq = freq
		}
		for _, arg := range args {
			code, err := strconv.Atoi(arg)
			if err != nil {
				fatal(err)
			}
			req.Charts = append(req.Charts, chartpage.ChartRequest{Chart: code, Agg: agg})
		}

		data, err := svc.ReadCharts(cmd.Context(), req)
		if err != nil {
			fatal(err)
		}
		renderTable(data)
	},
}
