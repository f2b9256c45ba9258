package commands

import (
	"os"
	"strings"

	"bccrdata/lib/catalog"
	"bccrdata/lib/timeseries"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	searchPhrase bool
	searchAll    bool
	searchFreq   string
)

func init() {
	searchCmd.Flags().BoolVar(&searchPhrase, "phrase", false, "match the terms as one exact phrase")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "match entries containing every term")
	searchCmd.Flags().StringVar(&searchFreq, "freq", "", "only entries with this native frequency (A, 6M, Q, M, W, D)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <terms...>",
	Short: "Searches the chart and indicator catalogs.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := service(cmd)
		if err != nil {
			fatal(err)
		}

		req := catalog.SearchRequest{}
		terms := strings.Join(args, " ")
		switch {
		case searchPhrase:
			req.Phrase = terms
		case searchAll:
			req.All = terms
		default:
			req.Any = terms
		}
		if searchFreq != "" {
			freq, err := timeseries.ParseFrequency(searchFreq)
			if err != nil {
				fatal(err)
			}
			req.Frequency = freq
		}

		results, err := svc.Search(cmd.Context(), req)
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Kind", "Code", "Title", "Description", "Freq"})

		for _, r := range results {
			t.AppendRow(table.Row{string(r.Kind), r.Code, r.Title, r.Description, string(r.Frequency)})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
