package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(subaccountsCmd)
}

var subaccountsCmd = &cobra.Command{
	Use:   "subaccounts <indicator code>",
	Short: "Lists the indicators nested under an indicator's account.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := service(cmd)
		if err != nil {
			fatal(err)
		}

		subs, err := svc.Subaccounts(cmd.Context(), args[0])
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Code", "Account", "Name", "Freq"})

		for _, s := range subs {
			t.AppendRow(table.Row{s.Code, s.Account, s.Name, string(s.Frequency)})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
