package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh <Indicadores.xlsx>",
	Short: "Rebuilds the indicator catalog from the workbook the BCCR mails to subscribers.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := service(cmd)
		if err != nil {
			fatal(err)
		}

		count, err := svc.RefreshCatalog(cmd.Context(), args[0])
		if err != nil {
			fatal(err)
		}
		fmt.Printf("catalog refreshed, %d indicators\n", count)
	},
}
