package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zovs/ironclaw/internal/output"
)

func newSoulCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "soul [NAME]",
		Short: "Set the active soul profile (prints the current one when no name is given)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			gw, err := newGateway()
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			if len(args) == 0 {
				if name, ok := gw.ActiveSoul(); ok {
					fmt.Println(name)
				} else {
					output.PrintInfo("No active soul set")
				}
				return
			}
			if err := gw.SaveActiveSoul(args[0]); err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Active soul set to %s", args[0]))
		},
	}
}
