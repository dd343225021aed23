package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zovs/ironclaw/internal/output"
)

func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists [FILENAME]",
		Short: "Check whether a model artifact is present locally",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			gw, err := newGateway()
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			// Never fails: unsafe or missing names both print false.
			fmt.Println(gw.CheckModelExists(args[0]))
		},
	}
}
