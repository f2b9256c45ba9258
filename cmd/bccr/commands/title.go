package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(titleCmd)
}

var titleCmd = &cobra.Command{
	Use:   "title <chart code>",
	Short: "Prints the title and subtitle of a chart.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		code, err := strconv.Atoi(args[0])
		if err != nil {
			fatal(err)
		}

		svc, err := service(cmd)
		if err != nil {
			fatal(err)
		}

		title, subtitle, err := svc.ChartTitle(cmd.Context(), code)
		if err != nil {
			fatal(err)
		}
		fmt.Println(title)
		if subtitle != "" {
			fmt.Println(subtitle)
		}
	},
}
